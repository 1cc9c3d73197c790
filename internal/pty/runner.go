// Package pty spawns commands attached to a pseudo-terminal for shell screens.
package pty

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Size is a terminal size in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// Clamp returns s with both dimensions raised to at least min.
func (s Size) Clamp(minRows, minCols uint16) Size {
	return Size{Rows: max(s.Rows, minRows), Cols: max(s.Cols, minCols)}
}

// Runner spawns and resizes PTYs. Tests swap in a fake.
type Runner interface {
	Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size Size) error
}

// CreackPTY implements Runner using github.com/creack/pty.
type CreackPTY struct{}

// Ensure CreackPTY implements Runner.
var _ Runner = (*CreackPTY)(nil)

// Start implements Runner. The PTY is closed when ctx is done; build cmd
// with exec.CommandContext on the same ctx to also stop the process.
func (c *CreackPTY) Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
	if err != nil {
		return nil, fmt.Errorf("start %s in pty: %w", cmd.Path, err)
	}
	if ctx != nil {
		go func() {
			<-ctx.Done()
			f.Close()
		}()
	}
	return f, nil
}

// Resize implements Runner. Only the *os.File returned by Start can be
// resized; anything else is a no-op.
func (c *CreackPTY) Resize(rwc io.ReadWriteCloser, size Size) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}
