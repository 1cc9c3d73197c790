package ui

// AppMode is derived from the screen currently presented by the container.
// Key bindings can be restricted to a mode.
type AppMode int

const (
	// ModeStack: a regular panel screen is presented; keys drive the stack.
	ModeStack AppMode = iota
	// ModeShell: a shell screen is presented; keys go to the shell.
	ModeShell
	// ModeConfirm: a confirmation overlay is open.
	ModeConfirm
)

func (m AppMode) String() string {
	switch m {
	case ModeStack:
		return "Stack"
	case ModeShell:
		return "Shell"
	case ModeConfirm:
		return "Confirm"
	default:
		return "Unknown"
	}
}
