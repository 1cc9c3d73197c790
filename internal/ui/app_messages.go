package ui

// PushScreenMsg pushes a new panel screen on top of the stack.
// An empty Name gets a generated one.
type PushScreenMsg struct {
	Name string
	Body string
}

// PopScreenMsg marks the top screen inactive and presents the one below it.
type PopScreenMsg struct{}

// OpenShellMsg pushes a PTY-backed shell screen.
type OpenShellMsg struct{}

// ShowClearConfirmMsg opens the "remove all screens" confirmation.
type ShowClearConfirmMsg struct{}

// ClearScreensMsg removes every screen from the container.
type ClearScreensMsg struct{}

// DismissModalMsg closes the confirmation overlay without acting.
type DismissModalMsg struct{}
