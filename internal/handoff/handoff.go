// Package handoff moves pipeline output from one screen to the next. A payload
// travels only with the navigation that carries it and is readable once.
package handoff

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Route names a screen.
type Route string

// Transition is handed to the destination screen on entry.
type Transition struct {
	From Route
	To   Route

	direct bool

	mu      sync.Mutex
	payload any
	present bool
}

// Direct reports whether the screen was entered with Enter rather than by a
// navigation from another screen.
func (t *Transition) Direct() bool {
	return t == nil || t.direct
}

// Take returns the payload when it is present and of type T, and consumes it.
// Later calls report false.
func Take[T any](t *Transition) (T, bool) {
	var zero T
	if t == nil {
		return zero, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.present {
		return zero, false
	}

	v, ok := t.payload.(T)
	if !ok {
		return zero, false
	}

	t.payload = nil
	t.present = false
	return v, true
}

// Screen is a navigation destination.
type Screen interface {
	Enter(ctx context.Context, nav *Navigator, tr *Transition) error
}

// ScreenFunc adapts a function to Screen.
type ScreenFunc func(ctx context.Context, nav *Navigator, tr *Transition) error

func (f ScreenFunc) Enter(ctx context.Context, nav *Navigator, tr *Transition) error {
	return f(ctx, nav, tr)
}

// Navigator tracks the mounted screen and performs transitions.
type Navigator struct {
	logger *zap.Logger

	mu      sync.Mutex
	screens map[Route]Screen
	current Route
}

func NewNavigator(logger *zap.Logger) *Navigator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Navigator{logger: logger, screens: make(map[Route]Screen)}
}

func (n *Navigator) Register(route Route, screen Screen) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.screens[route] = screen
}

// Routes returns the registered routes.
func (n *Navigator) Routes() []Route {
	n.mu.Lock()
	defer n.mu.Unlock()

	routes := make([]Route, 0, len(n.screens))
	for r := range n.screens {
		routes = append(routes, r)
	}
	return routes
}

// Current returns the mounted route.
func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigate moves from the screen at from to the screen at to, attaching payload.
// When from is no longer mounted the transition is a lost update and is dropped.
func (n *Navigator) Navigate(ctx context.Context, from, to Route, payload any) error {
	n.mu.Lock()
	if n.current != from {
		mounted := n.current
		n.mu.Unlock()
		n.logger.Debug("dropping navigation from unmounted screen",
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.String("mounted", string(mounted)),
		)
		return nil
	}

	screen, err := n.mount(to)
	n.mu.Unlock()
	if err != nil {
		return err
	}

	n.logger.Debug("navigate", zap.String("from", string(from)), zap.String("to", string(to)), zap.Bool("payload", payload != nil))

	tr := &Transition{From: from, To: to, payload: payload, present: payload != nil}
	return screen.Enter(ctx, n, tr)
}

// Enter mounts a screen directly. The transition carries no payload.
func (n *Navigator) Enter(ctx context.Context, to Route) error {
	n.mu.Lock()
	screen, err := n.mount(to)
	n.mu.Unlock()
	if err != nil {
		return err
	}

	n.logger.Debug("enter", zap.String("to", string(to)))

	return screen.Enter(ctx, n, &Transition{To: to, direct: true})
}

// mount must be called with the lock held.
func (n *Navigator) mount(to Route) (Screen, error) {
	screen, ok := n.screens[to]
	if !ok {
		return nil, fmt.Errorf("unknown screen %q", to)
	}
	n.current = to
	return screen, nil
}
