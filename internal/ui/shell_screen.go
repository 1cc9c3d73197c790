package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"screenstack/internal/pty"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ShellOutputMsg carries bytes read from a shell screen's PTY.
// It is addressed to Screen directly since the shell may not be Content.
type ShellOutputMsg struct {
	Screen *ShellScreen
	Data   []byte
}

// ShellExitedMsg is sent once when a shell screen's PTY reaches EOF.
type ShellExitedMsg struct {
	Screen *ShellScreen
}

const (
	defaultShellWidth  = 70
	defaultShellHeight = 18
)

// ShellScreen is a PTY-backed screen. Keys are passed through to the shell
// except Esc, which pops the screen.
type ShellScreen struct {
	ScreenBase
	runner   pty.Runner
	command  string
	workDir  string
	ptmx     io.ReadWriteCloser
	cancel   context.CancelFunc
	content  *bytes.Buffer
	viewport viewport.Model
	outputCh chan []byte
}

// Ensure ShellScreen implements View and MutableScreen.
var (
	_ View          = (*ShellScreen)(nil)
	_ MutableScreen = (*ShellScreen)(nil)
)

// NewShellScreen creates a shell screen that runs command (a login shell
// when empty) in workDir once initialized.
func NewShellScreen(runner pty.Runner, command, workDir string, state ActivityState) *ShellScreen {
	vp := viewport.New(defaultShellWidth, defaultShellHeight)
	s := &ShellScreen{
		runner:   runner,
		command:  command,
		workDir:  workDir,
		content:  &bytes.Buffer{},
		viewport: vp,
		outputCh: make(chan []byte, 64),
	}
	s.SetActivityState(state)
	return s
}

// Title returns the name shown in the status bar.
func (s *ShellScreen) Title() string {
	return "Shell"
}

// Init implements View. Spawns the shell and starts reading from the PTY.
func (s *ShellScreen) Init() tea.Cmd {
	if s.ptmx != nil {
		return nil
	}
	shell := s.command
	if shell == "" {
		shell = "sh"
		if path, err := exec.LookPath("bash"); err == nil {
			shell = path
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, shell)
	cmd.Dir = s.workDir
	if cmd.Dir == "" {
		cmd.Dir = "."
	}

	size := pty.Size{Rows: uint16(s.viewport.Height), Cols: uint16(s.viewport.Width)}
	ptmx, err := s.runner.Start(ctx, cmd, size)
	if err != nil {
		cancel()
		s.content.WriteString("Failed to spawn shell: " + err.Error() + "\r\n")
		s.refreshViewport()
		return nil
	}
	s.ptmx = ptmx
	s.cancel = cancel

	go s.pump(ptmx)
	return s.waitForOutput()
}

// pump copies PTY output into outputCh until EOF, then closes it.
func (s *ShellScreen) pump(r io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			select {
			case s.outputCh <- cp:
			default:
				// Channel full; drop rather than stall the PTY.
			}
		}
		if err != nil {
			close(s.outputCh)
			return
		}
	}
}

// waitForOutput is the single outstanding reader of outputCh; each output
// message schedules the next one.
func (s *ShellScreen) waitForOutput() tea.Cmd {
	ch := s.outputCh
	return func() tea.Msg {
		data, ok := <-ch
		if !ok {
			return ShellExitedMsg{Screen: s}
		}
		return ShellOutputMsg{Screen: s, Data: data}
	}
}

// Update implements View.
func (s *ShellScreen) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ShellOutputMsg:
		if msg.Screen != s {
			return s, nil
		}
		s.content.Write(msg.Data)
		s.refreshViewport()
		s.viewport.GotoBottom()
		return s, s.waitForOutput()
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return PopScreenMsg{} }
		}
		if s.ptmx != nil {
			if b := keyToPTYBytes(msg); len(b) > 0 {
				_, _ = s.ptmx.Write(b)
			}
		}
		return s, nil
	case tea.WindowSizeMsg:
		size := pty.Size{Rows: uint16(max(msg.Height-4, 0)), Cols: uint16(max(msg.Width-2, 0))}.Clamp(12, 40)
		s.viewport.Width = int(size.Cols)
		s.viewport.Height = int(size.Rows)
		if s.ptmx != nil {
			_ = s.runner.Resize(s.ptmx, size)
		}
		s.refreshViewport()
		return s, nil
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

// View implements View.
func (s *ShellScreen) View() string {
	header := Styles.Title.Render("Shell") + Styles.Muted.Render("  Esc: close")
	return header + "\n" + Styles.Screen.Padding(0, 1).Render(s.viewport.View())
}

func (s *ShellScreen) refreshViewport() {
	s.viewport.SetContent(s.content.String())
}

// Output returns everything the shell has printed so far.
func (s *ShellScreen) Output() string {
	return s.content.String()
}

// Close stops the shell and releases the PTY. Safe to call more than once.
func (s *ShellScreen) Close() error {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.ptmx == nil {
		return nil
	}
	err := s.ptmx.Close()
	s.ptmx = nil
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}

// keyToPTYBytes converts a Bubble Tea KeyMsg to the bytes a terminal sends.
func keyToPTYBytes(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyUp:
		return []byte{0x1b, '[', 'A'}
	case tea.KeyDown:
		return []byte{0x1b, '[', 'B'}
	case tea.KeyRight:
		return []byte{0x1b, '[', 'C'}
	case tea.KeyLeft:
		return []byte{0x1b, '[', 'D'}
	case tea.KeyCtrlC:
		return []byte{0x03}
	case tea.KeyCtrlD:
		return []byte{0x04}
	case tea.KeyRunes:
		return []byte(string(msg.Runes))
	}
	if len(msg.Runes) > 0 {
		return []byte(string(msg.Runes))
	}
	return nil
}
