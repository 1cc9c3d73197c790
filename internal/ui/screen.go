package ui

import (
	"fmt"
	"strings"
)

// ActivityState is the lifecycle state a screen reports to its container.
// The container only distinguishes StateOnTop and StateInactive from the rest.
type ActivityState uint8

const (
	StateInactive ActivityState = iota
	StateTransitioningOrActive
	StateOnTop
)

func (s ActivityState) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateTransitioningOrActive:
		return "transitioning"
	case StateOnTop:
		return "on-top"
	default:
		return fmt.Sprintf("ActivityState(%d)", uint8(s))
	}
}

// ParseActivityState parses the String form of an ActivityState.
// "active" is accepted as an alias for "transitioning".
func ParseActivityState(s string) (ActivityState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inactive":
		return StateInactive, nil
	case "transitioning", "active":
		return StateTransitioningOrActive, nil
	case "on-top", "ontop", "top":
		return StateOnTop, nil
	}
	return 0, fmt.Errorf("unknown activity state %q", s)
}

// Screen is a full-bleed panel managed by a ScreenContainer.
// A Screen that is also a View can be presented; one that is not is ignored
// by the container.
type Screen interface {
	ActivityState() ActivityState
	// SetContainer sets the owning container back-reference. nil detaches.
	SetContainer(c *ScreenContainer)
}

// MutableScreen is a Screen whose state can be driven by the orchestrator.
type MutableScreen interface {
	Screen
	SetActivityState(ActivityState)
}

// ScreenBase implements MutableScreen; embed it in concrete screens.
type ScreenBase struct {
	state     ActivityState
	container *ScreenContainer
}

// ActivityState implements Screen.
func (b *ScreenBase) ActivityState() ActivityState {
	return b.state
}

// SetActivityState records a new state. It does not notify the container;
// call ScreenContainer.NotifyChildUpdate once all states for a transition are set.
func (b *ScreenBase) SetActivityState(s ActivityState) {
	b.state = s
}

// SetContainer implements Screen.
func (b *ScreenBase) SetContainer(c *ScreenContainer) {
	b.container = c
}

// Container returns the owning container, or nil when detached.
func (b *ScreenBase) Container() *ScreenContainer {
	return b.container
}

// asView projects a screen to its visual node.
func asView(s Screen) (View, bool) {
	v, ok := s.(View)
	return v, ok
}

// asScreen projects a visual node to a screen.
func asScreen(v View) (Screen, bool) {
	s, ok := v.(Screen)
	return s, ok
}
