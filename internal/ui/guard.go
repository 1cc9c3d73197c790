package ui

import (
	"fmt"
	"sync/atomic"
)

// ownerGuard enforces the container's single-owner, non-reentrant contract.
// Entering while another operation holds the guard panics: either a screen
// callback re-entered the container mid-pass, or two goroutines share it.
type ownerGuard struct {
	busy atomic.Bool
}

// enter claims the guard for op and returns the release func.
//
//	defer c.guard.enter("AddScreen")()
func (g *ownerGuard) enter(op string) func() {
	if !g.busy.CompareAndSwap(false, true) {
		panic(fmt.Sprintf("ui: ScreenContainer.%s called while another container operation is in flight", op))
	}
	return g.release
}

func (g *ownerGuard) release() {
	g.busy.Store(false)
}
