package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	reg.Bind("SPC q", tea.Quit)
	reg.Bind("j", nil)

	if reg.Lookup("q") == nil {
		t.Error("expected q to be bound")
	}
	if reg.Lookup("SPC q") == nil {
		t.Error("expected SPC q to be bound")
	}
	if reg.Lookup("unknown") != nil {
		t.Error("expected unknown to be unbound")
	}
}

func TestKeyHandler_LeaderKey(t *testing.T) {
	reg := NewKeybindRegistry()
	var executed bool
	reg.Bind("SPC x", func() tea.Msg {
		executed = true
		return nil
	})
	h := NewKeyHandler(reg)

	// Press space -> leader waiting (Bubble Tea reports space as " ")
	consumed, cmd := h.Handle(keyMsg(" "), ModeStack)
	if !consumed || cmd != nil {
		t.Errorf("space: consumed=%v cmd=%v", consumed, cmd)
	}
	if !h.LeaderWaiting {
		t.Error("expected leader waiting after space")
	}

	// Press x -> execute SPC x
	consumed, cmd = h.Handle(keyMsg("x"), ModeStack)
	if !consumed {
		t.Errorf("x: expected consumed")
	}
	if h.LeaderWaiting {
		t.Error("leader should not be waiting after completing sequence")
	}
	if cmd != nil {
		cmd()
		if !executed {
			t.Error("expected command to execute")
		}
	}
}

func TestKeyHandler_EscCancelsLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC x", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "), ModeStack)
	if !h.LeaderWaiting {
		t.Fatal("expected leader waiting")
	}

	consumed, cmd := h.Handle(keyMsg("esc"), ModeStack)
	if !consumed || cmd != nil {
		t.Errorf("esc: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("esc should cancel leader mode")
	}
}

func TestKeyHandler_SingleKey(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg("q"), ModeStack)
	if !consumed || cmd == nil {
		t.Errorf("q: consumed=%v cmd=%v", consumed, cmd)
	}
}

func TestKeyHandler_UnboundFallsThrough(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, _ := h.Handle(keyMsg("j"), ModeStack)
	if consumed {
		t.Error("unbound j should not be consumed")
	}
}

func TestKeyHandler_ModeFilter(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDescForMode("n", tea.Quit, "Push", []AppMode{ModeStack})
	h := NewKeyHandler(reg)

	if consumed, cmd := h.Handle(keyMsg("n"), ModeStack); !consumed || cmd == nil {
		t.Errorf("n in stack mode: consumed=%v cmd=%v", consumed, cmd)
	}
	if consumed, _ := h.Handle(keyMsg("n"), ModeConfirm); consumed {
		t.Error("n should not fire outside stack mode")
	}
}

func TestKeyHandler_UnknownLeaderSequenceResets(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC s n", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "), ModeStack)
	if consumed, cmd := h.Handle(keyMsg("s"), ModeStack); !consumed || cmd != nil {
		t.Errorf("s: consumed=%v cmd=%v", consumed, cmd)
	}
	if !h.LeaderWaiting || h.CurrentSeq() != "SPC s" {
		t.Fatalf("expected pending SPC s, got waiting=%v seq=%q", h.LeaderWaiting, h.CurrentSeq())
	}
	if consumed, cmd := h.Handle(keyMsg("z"), ModeStack); !consumed || cmd != nil {
		t.Errorf("z: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("unknown sequence should leave leader mode")
	}
}

func TestKeybindRegistry_LeaderHints(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC s n", tea.Quit, "Push screen")
	reg.BindWithDescForMode("SPC s t", tea.Quit, "Shell", []AppMode{ModeShell})

	top := reg.LeaderHints("", ModeStack)
	if top["q"] != "Quit" || top["s"] != "Screen" {
		t.Errorf("first level: got %v", top)
	}

	sub := reg.LeaderHints("SPC s", ModeStack)
	if sub["n"] != "Push screen" {
		t.Errorf("SPC s: got %v", sub)
	}
	if _, ok := sub["t"]; ok {
		t.Error("t is filtered to shell mode")
	}
}

func TestRenderKeybindHelp(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	h := NewKeyHandler(reg)

	if got := RenderKeybindHelp(h, ModeStack); got != "" {
		t.Errorf("expected no help outside leader mode, got %q", got)
	}
	h.Handle(keyMsg(" "), ModeStack)
	got := RenderKeybindHelp(h, ModeStack)
	if !strings.Contains(got, "Quit") || !strings.Contains(got, "cancel") {
		t.Errorf("expected hints in help, got %q", got)
	}
}

// keyMsg creates a tea.KeyMsg for testing. Bubble Tea uses KeyType and Runes.
// KeySpace.String() returns " ", KeyEsc returns "esc", etc.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "q":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	case "x":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}
	case "j":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
