package ui

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is matched by every IndexOutOfRangeError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexOutOfRangeError reports a child index outside [0, Len).
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("screen container: index %d out of range [0, %d)", e.Index, e.Len)
}

// Is lets errors.Is(err, ErrIndexOutOfRange) match.
func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
