package ui

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"screenstack/internal/pty"
	"screenstack/internal/ui/textutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppModel is the root model. It plays the orchestrator for a single
// ScreenContainer: key bindings decide which screen is on top, the container
// decides what is shown and what gets evicted.
type AppModel struct {
	Container    *ScreenContainer
	KeyHandler   *KeyHandler
	Confirm      *ConfirmModal
	ShellRunner  pty.Runner
	ShellCommand string
	ShellDir     string
	Logger       *slog.Logger

	width   int
	height  int
	created int // panels pushed so far, for generated names
}

// AppOptions configures NewAppModel. Zero values get defaults.
type AppOptions struct {
	Container      *ScreenContainer
	ShellRunner    pty.Runner
	ShellCommand   string
	ShellDir       string
	Logger         *slog.Logger
	InitialScreens int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root model with its key bindings and pushes
// opts.InitialScreens panel screens.
func NewAppModel(opts AppOptions) *AppModel {
	a := &AppModel{
		Container:    opts.Container,
		ShellRunner:  opts.ShellRunner,
		ShellCommand: opts.ShellCommand,
		ShellDir:     opts.ShellDir,
		Logger:       opts.Logger,
	}
	if a.Logger == nil {
		a.Logger = slog.New(slog.DiscardHandler)
	}
	if a.Container == nil {
		a.Container = NewScreenContainer(WithLogger(a.Logger))
	}
	if a.ShellRunner == nil {
		a.ShellRunner = &pty.CreackPTY{}
	}

	stack := []AppMode{ModeStack}
	push := func() tea.Msg { return PushScreenMsg{} }
	pop := func() tea.Msg { return PopScreenMsg{} }

	reg := NewKeybindRegistry()
	reg.BindWithDescForMode("q", tea.Quit, "Quit", stack)
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDescForMode("n", push, "Push screen", stack)
	reg.BindWithDescForMode("x", pop, "Pop screen", stack)
	reg.BindWithDesc("SPC s n", push, "Push screen")
	reg.BindWithDesc("SPC s x", pop, "Pop screen")
	reg.BindWithDesc("SPC s t", func() tea.Msg { return OpenShellMsg{} }, "Shell")
	reg.BindWithDesc("SPC s c", func() tea.Msg { return ShowClearConfirmMsg{} }, "Clear all")
	a.KeyHandler = NewKeyHandler(reg)

	for range opts.InitialScreens {
		a.pushScreen(a.newPanel(PushScreenMsg{}))
	}
	return a
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// Mode reports the current AppMode.
func (a *AppModel) Mode() AppMode {
	if a.Confirm != nil {
		return ModeConfirm
	}
	if _, ok := a.Container.Content().(*ShellScreen); ok {
		return ModeShell
	}
	return ModeStack
}

// Close releases every screen that holds resources.
func (a *AppModel) Close() {
	for _, v := range a.Container.Children() {
		closeScreen(v, a.Logger)
	}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Container.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		_, cmd := a.Container.Update(a.screenSize())
		return a, cmd
	case PushScreenMsg:
		return a, a.pushScreen(a.newPanel(msg))
	case OpenShellMsg:
		return a, a.pushScreen(NewShellScreen(a.ShellRunner, a.ShellCommand, a.ShellDir, StateOnTop))
	case PopScreenMsg:
		return a, a.popScreen()
	case ShowClearConfirmMsg:
		a.Confirm = NewConfirmModal(
			"Remove all screens?",
			fmt.Sprintf("%d screen(s) will be detached", a.Container.ScreenCount()),
			func() tea.Msg { return ClearScreensMsg{} },
		)
		return a, nil
	case ClearScreensMsg:
		a.Confirm = nil
		a.clearScreens()
		return a, nil
	case DismissModalMsg:
		a.Confirm = nil
		return a, nil
	case ShellOutputMsg:
		// Routed directly: the shell keeps reading even when covered.
		_, cmd := msg.Screen.Update(msg)
		return a, cmd
	case ShellExitedMsg:
		return a, a.shellExited(msg.Screen)
	case tea.KeyMsg:
		if a.Confirm != nil {
			_, cmd := a.Confirm.Update(msg)
			return a, cmd
		}
		if mode := a.Mode(); mode != ModeShell {
			if consumed, cmd := a.KeyHandler.Handle(msg, mode); consumed {
				return a, cmd
			}
		}
	}

	_, cmd := a.Container.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	body := a.Container.View()
	if body == "" {
		body = Styles.Empty.Render("No screens. Press n to push one, SPC for commands.")
	}
	if a.Confirm != nil {
		body = a.Confirm.View()
		if a.width > 0 && a.height > 1 {
			body = lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, body)
		}
	}
	out := body + "\n" + a.statusLine()
	if help := RenderKeybindHelp(a.KeyHandler, a.Mode()); help != "" {
		out += "\n" + help
	}
	return out
}

const maxStatusTitle = 32

func (a *AppModel) statusLine() string {
	title := "-"
	state := ""
	if c := a.Container.Content(); c != nil {
		title = textutil.Truncate(titleOf(c), maxStatusTitle)
		if s, ok := asScreen(c); ok {
			st := s.ActivityState()
			state = " " + Styles.StateTag[st].Render("["+st.String()+"]")
		}
	}
	return Styles.Status.Render(fmt.Sprintf("screens %d", a.Container.ScreenCount())) +
		Styles.Muted.Render(" · showing ") + Styles.Normal.Render(title) + state +
		Styles.Muted.Render(" · "+a.Mode().String())
}

// screenSize is the window size minus the status line.
func (a *AppModel) screenSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: a.width, Height: max(a.height-1, 0)}
}

func (a *AppModel) newPanel(msg PushScreenMsg) *PanelScreen {
	a.created++
	name := msg.Name
	if name == "" {
		name = fmt.Sprintf("Screen %d", a.created)
	}
	body := msg.Body
	if body == "" {
		body = fmt.Sprintf("Pushed as #%d. n pushes another, x pops this one.", a.created)
	}
	return NewPanelScreen(name, body, StateOnTop)
}

// pushScreen demotes the current top and adds s as the new top.
func (a *AppModel) pushScreen(s MutableScreen) tea.Cmd {
	if top, ok := a.Container.TopScreen().(MutableScreen); ok {
		top.SetActivityState(StateTransitioningOrActive)
	}
	s.SetActivityState(StateOnTop)
	a.Container.AddScreen(s, a.Container.Len())
	a.Logger.Debug("pushed screen", "title", titleOf(s), "children", a.Container.Len())

	v, ok := asView(s)
	if !ok {
		return nil
	}
	cmds := []tea.Cmd{v.Init()}
	if a.width > 0 {
		_, cmd := v.Update(a.screenSize())
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// popScreen marks the top screen inactive and promotes the most recently
// added live screen beneath it; the returned command asks the container to
// evict it. With nothing left to promote the container is cleared, since a
// pass without a top screen keeps stale Content.
func (a *AppModel) popScreen() tea.Cmd {
	top, ok := a.Container.TopScreen().(MutableScreen)
	if !ok {
		return nil
	}
	top.SetActivityState(StateInactive)
	closeScreen(top, a.Logger)

	next := a.promoteBelow()
	if next == nil {
		a.Container.RemoveAllChildren()
		a.Logger.Debug("popped last screen", "title", titleOf(top))
		return nil
	}
	next.SetActivityState(StateOnTop)
	a.Logger.Debug("popped screen", "title", titleOf(top), "next", titleOf(next))
	return activityChanged(top)
}

func activityChanged(s Screen) tea.Cmd {
	return func() tea.Msg { return ActivityChangedMsg{Screen: s} }
}

// promoteBelow returns the most recently added screen that is still live.
func (a *AppModel) promoteBelow() MutableScreen {
	for _, v := range slices.Backward(a.Container.Children()) {
		if s, ok := v.(MutableScreen); ok && s.ActivityState() != StateInactive {
			return s
		}
	}
	return nil
}

func (a *AppModel) clearScreens() {
	children := a.Container.Children()
	a.Container.RemoveAllChildren()
	for _, v := range children {
		closeScreen(v, a.Logger)
	}
	a.Logger.Debug("cleared screens", "count", len(children))
}

// shellExited marks a shell whose process ended inactive so the next pass
// evicts it.
func (a *AppModel) shellExited(s *ShellScreen) tea.Cmd {
	if !a.Container.HasScreen(s) {
		closeScreen(s, a.Logger)
		return nil
	}
	if a.Container.TopScreen() == Screen(s) {
		return a.popScreen()
	}
	s.SetActivityState(StateInactive)
	closeScreen(s, a.Logger)
	return activityChanged(s)
}

func titleOf(v any) string {
	if t, ok := v.(interface{ Title() string }); ok {
		return t.Title()
	}
	return fmt.Sprintf("%T", v)
}

func closeScreen(v any, logger *slog.Logger) {
	c, ok := v.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		logger.Warn("close screen", "title", titleOf(v), "err", err)
	}
}
