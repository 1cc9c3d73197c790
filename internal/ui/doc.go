// Package ui implements a stack of Bubble Tea screens presented through a
// single ScreenContainer.
//
// Core abstractions:
//   - View: a visual node with its own Init/Update/View (Elm-style)
//   - Screen: a node that carries an ActivityState and a back-reference to
//     the container that holds it
//   - ScreenContainer: keeps children in insertion order, presents the
//     last on-top screen as Content, and evicts inactive screens each time
//     the visual tree is refreshed
//   - AppModel: the orchestrator that sets activity states from key
//     bindings and asks the container to refresh
//
// A container is owned by one goroutine. Re-entrant or concurrent mutation
// panics rather than corrupting the child list.
package ui
