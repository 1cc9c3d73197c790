package ui

import (
	"context"
	"log/slog"
	"reflect"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ActivityChangedMsg asks the container holding Screen to re-run its
// visibility pass. The orchestrator returns it from a tea.Cmd after changing
// states. A message for a screen the container no longer holds is dropped.
type ActivityChangedMsg struct {
	Screen Screen
}

// ScreenContainer presents exactly one of its screens as Content and prunes
// screens reporting StateInactive.
//
// Children are kept in insertion order; that order is also the search order
// for the top screen. The container does not own its screens: removal only
// detaches them (back-reference cleared), it never closes them.
//
// All methods must be called from the Bubble Tea update goroutine. Mutations
// are guarded and panic when re-entered or called concurrently.
type ScreenContainer struct {
	children []View
	content  View

	tracer oteltrace.Tracer
	logger *slog.Logger
	guard  ownerGuard
}

// Ensure ScreenContainer implements View.
var _ View = (*ScreenContainer)(nil)

// ContainerOption configures a ScreenContainer.
type ContainerOption func(*ScreenContainer)

// WithTracer records a span for every visibility pass.
func WithTracer(t oteltrace.Tracer) ContainerOption {
	return func(c *ScreenContainer) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithLogger sets the logger used for eviction and removal diagnostics.
func WithLogger(l *slog.Logger) ContainerOption {
	return func(c *ScreenContainer) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewScreenContainer creates an empty container.
func NewScreenContainer(opts ...ContainerOption) *ScreenContainer {
	c := &ScreenContainer{
		tracer: noop.NewTracerProvider().Tracer(""),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddScreen appends s and runs the visibility pass.
// index is accepted for API compatibility with index-based hosts; insertion
// is always at the end. A screen that is not a View gets its back-reference
// set and is otherwise ignored.
func (c *ScreenContainer) AddScreen(s Screen, index int) {
	defer c.guard.enter("AddScreen")()

	s.SetContainer(c)
	v, ok := asView(s)
	if !ok {
		c.logger.Debug("screen is not a view, not added", "type", reflect.TypeOf(s).String(), "index", index)
		return
	}
	c.children = append(c.children, v)
	c.content = v
	c.updateVisualTree()
}

// RemoveAllChildren clears Content and every child, detaching each screen.
func (c *ScreenContainer) RemoveAllChildren() {
	defer c.guard.enter("RemoveAllChildren")()

	c.content = nil
	for _, v := range c.children {
		detach(v)
	}
	c.children = nil
}

// RemoveChildAt removes the child at index, shifting later children down.
// Content is not updated even when it was the removed node; the next
// visibility pass fixes it.
func (c *ScreenContainer) RemoveChildAt(index int) error {
	defer c.guard.enter("RemoveChildAt")()
	return c.removeChildAt(index)
}

func (c *ScreenContainer) removeChildAt(index int) error {
	if index < 0 || index >= len(c.children) {
		c.logger.Debug("remove child out of range", "index", index, "len", len(c.children))
		return &IndexOutOfRangeError{Index: index, Len: len(c.children)}
	}
	removed := c.children[index]
	c.children = slices.Delete(c.children, index, index+1)
	c.detachIfGone(removed)
	return nil
}

// ReplaceChild swaps oldChild for newChild in place, matched by identity.
// No visibility pass runs and Content is left alone. Unknown oldChild is a no-op.
func (c *ScreenContainer) ReplaceChild(oldChild, newChild View) {
	defer c.guard.enter("ReplaceChild")()
	c.replaceChild(oldChild, newChild)
}

func (c *ScreenContainer) replaceChild(oldChild, newChild View) bool {
	i := c.indexOf(oldChild)
	if i < 0 {
		return false
	}
	c.children[i] = newChild
	if s, ok := asScreen(newChild); ok {
		s.SetContainer(c)
	}
	c.detachIfGone(oldChild)
	return true
}

// TopScreen returns the first child, in insertion order, reporting
// StateOnTop, or nil if there is none.
func (c *ScreenContainer) TopScreen() Screen {
	for _, v := range c.children {
		if s, ok := asScreen(v); ok && s.ActivityState() == StateOnTop {
			return s
		}
	}
	return nil
}

// UpdateVisualTree presents the top screen as Content and evicts every
// StateInactive child. Without a top screen nothing changes, including a
// now stale Content.
func (c *ScreenContainer) UpdateVisualTree() {
	defer c.guard.enter("UpdateVisualTree")()
	c.updateVisualTree()
}

// NotifyChildUpdate is called by a screen, or on its behalf, after its
// activity state changed.
func (c *ScreenContainer) NotifyChildUpdate() {
	defer c.guard.enter("NotifyChildUpdate")()
	c.updateVisualTree()
}

func (c *ScreenContainer) updateVisualTree() {
	_, span := c.tracer.Start(context.Background(), "screen_container.update_visual_tree")
	defer span.End()
	span.SetAttributes(attribute.Int("screens.children.before", len(c.children)))

	v, ok := asView(c.TopScreen())
	if !ok {
		span.SetAttributes(
			attribute.Bool("screens.top_found", false),
			attribute.Int("screens.evicted", 0),
			attribute.Int("screens.children.after", len(c.children)),
		)
		return
	}
	c.content = v

	evicted := c.evictInactive()
	span.SetAttributes(
		attribute.Bool("screens.top_found", true),
		attribute.Int("screens.evicted", evicted),
		attribute.Int("screens.children.after", len(c.children)),
	)
}

// evictInactive removes inactive children highest index first so collected
// indices stay valid.
func (c *ScreenContainer) evictInactive() int {
	var doomed []int
	for i, v := range c.children {
		if s, ok := asScreen(v); ok && s.ActivityState() == StateInactive {
			doomed = append(doomed, i)
		}
	}
	for _, i := range slices.Backward(doomed) {
		c.logger.Debug("evicting inactive screen", "index", i, "type", reflect.TypeOf(c.children[i]).String())
		// cannot fail: i was collected from the current slice
		_ = c.removeChildAt(i)
	}
	return len(doomed)
}

// Content returns the node currently presented, or nil.
func (c *ScreenContainer) Content() View {
	return c.content
}

// Children returns a copy of the children in insertion order.
func (c *ScreenContainer) Children() []View {
	return slices.Clone(c.children)
}

// Len returns the number of children.
func (c *ScreenContainer) Len() int {
	return len(c.children)
}

// ScreenCount returns the number of children that are screens.
func (c *ScreenContainer) ScreenCount() int {
	n := 0
	for _, v := range c.children {
		if _, ok := asScreen(v); ok {
			n++
		}
	}
	return n
}

// ScreenAt returns the screen at child index i. The second result is false
// when i is in range but the child is not a screen.
func (c *ScreenContainer) ScreenAt(i int) (Screen, bool, error) {
	if i < 0 || i >= len(c.children) {
		return nil, false, &IndexOutOfRangeError{Index: i, Len: len(c.children)}
	}
	s, ok := asScreen(c.children[i])
	return s, ok, nil
}

// HasScreen reports whether s is one of the children.
func (c *ScreenContainer) HasScreen(s Screen) bool {
	v, ok := asView(s)
	return ok && c.indexOf(v) >= 0
}

func (c *ScreenContainer) indexOf(v View) int {
	for i, child := range c.children {
		if sameNode(child, v) {
			return i
		}
	}
	return -1
}

// Init implements View.
func (c *ScreenContainer) Init() tea.Cmd {
	if c.content == nil {
		return nil
	}
	return c.content.Init()
}

// Update implements View.
// ActivityChangedMsg runs the visibility pass. Window size changes reach every
// child so hidden screens are sized before they are shown. Anything else goes
// to Content; a replacement node returned by Content takes its place.
func (c *ScreenContainer) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ActivityChangedMsg:
		if msg.Screen != nil && !c.HasScreen(msg.Screen) {
			c.logger.Debug("activity change for detached screen dropped", "type", reflect.TypeOf(msg.Screen).String())
			return c, nil
		}
		c.NotifyChildUpdate()
		return c, nil
	case tea.WindowSizeMsg:
		var cmds []tea.Cmd
		for _, child := range c.Children() {
			next, cmd := child.Update(msg)
			c.swap(child, next)
			cmds = append(cmds, cmd)
		}
		return c, tea.Batch(cmds...)
	}

	if c.content == nil {
		return c, nil
	}
	current := c.content
	next, cmd := current.Update(msg)
	c.swap(current, next)
	return c, cmd
}

// swap installs next in place of current when Update returned a new node.
func (c *ScreenContainer) swap(current, next View) {
	if next == nil || sameNode(current, next) {
		return
	}
	defer c.guard.enter("Update")()
	c.replaceChild(current, next)
	if sameNode(c.content, current) {
		c.content = next
	}
}

// View implements View.
func (c *ScreenContainer) View() string {
	if c.content == nil {
		return ""
	}
	return c.content.View()
}

// detach clears the back-reference of a removed child.
func detach(v View) {
	if s, ok := asScreen(v); ok {
		s.SetContainer(nil)
	}
}

// detachIfGone clears v's back-reference unless v is still held at another
// index, which happens when the same screen was added twice.
func (c *ScreenContainer) detachIfGone(v View) {
	if c.indexOf(v) < 0 {
		detach(v)
	}
}

// sameNode compares visual nodes by identity. Values of non-comparable
// dynamic types never match.
func sameNode(a, b View) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
