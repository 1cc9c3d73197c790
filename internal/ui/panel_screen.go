package ui

import (
	"fmt"

	"screenstack/internal/ui/textutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// PanelScreen is a static full-bleed screen with a title and body.
type PanelScreen struct {
	ScreenBase
	ID     string
	Name   string
	Body   string
	width  int
	height int
}

// Ensure PanelScreen implements View and MutableScreen.
var (
	_ View          = (*PanelScreen)(nil)
	_ MutableScreen = (*PanelScreen)(nil)
)

// NewPanelScreen creates a panel screen in the given state.
func NewPanelScreen(name, body string, state ActivityState) *PanelScreen {
	p := &PanelScreen{
		ID:   uuid.NewString(),
		Name: name,
		Body: body,
	}
	p.SetActivityState(state)
	return p
}

// Title returns the screen name shown in the status bar.
func (p *PanelScreen) Title() string {
	return p.Name
}

// Init implements View.
func (p *PanelScreen) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (p *PanelScreen) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		p.width = msg.Width
		p.height = msg.Height
	}
	return p, nil
}

// View implements View.
func (p *PanelScreen) View() string {
	body := p.Body
	if body == "" {
		body = Styles.Empty.Render("(empty)")
	}
	name := p.Name
	if p.width > 0 {
		name = textutil.Truncate(name, max(p.width-6, 1))
	}
	content := Styles.Title.Render(name) + "\n" +
		Styles.Muted.Render(fmt.Sprintf("id %s", p.ID[:8])) + "\n\n" +
		Styles.Normal.Render(body)

	style := Styles.Screen
	if p.width > 0 && p.height > 0 {
		// Leave room for the border and the status line.
		style = style.Width(max(p.width-2, 0)).Height(max(p.height-4, 0))
	}
	return style.Render(content)
}
