package handoff

import (
	"context"
	"testing"
)

type recorder struct {
	entered []*Transition
	next    func(ctx context.Context, nav *Navigator, tr *Transition) error
}

func (r *recorder) Enter(ctx context.Context, nav *Navigator, tr *Transition) error {
	r.entered = append(r.entered, tr)
	if r.next != nil {
		return r.next(ctx, nav, tr)
	}
	return nil
}

func TestNavigateCarriesPayloadOnce(t *testing.T) {
	ctx := context.Background()
	nav := NewNavigator(nil)

	dest := &recorder{}
	nav.Register("intake", &recorder{})
	nav.Register("answers", dest)

	if err := nav.Enter(ctx, "intake"); err != nil {
		t.Fatalf("enter: %v", err)
	}

	if err := nav.Navigate(ctx, "intake", "answers", []string{"Q1", "Q2"}); err != nil {
		t.Fatalf("navigate: %v", err)
	}

	if nav.Current() != "answers" {
		t.Fatalf("expected answers to be mounted, got %q", nav.Current())
	}

	tr := dest.entered[0]
	if tr.Direct() {
		t.Fatalf("expected transition from intake")
	}

	if _, ok := Take[int](tr); ok {
		t.Fatalf("expected type mismatch to report absent")
	}

	questions, ok := Take[[]string](tr)
	if !ok || len(questions) != 2 {
		t.Fatalf("expected payload, got %v, %v", questions, ok)
	}

	if _, ok := Take[[]string](tr); ok {
		t.Fatalf("expected payload to be consumed")
	}
}

func TestDirectEntryHasNoPayload(t *testing.T) {
	ctx := context.Background()
	nav := NewNavigator(nil)

	dest := &recorder{}
	nav.Register("evaluation", dest)

	if err := nav.Enter(ctx, "evaluation"); err != nil {
		t.Fatalf("enter: %v", err)
	}

	tr := dest.entered[0]
	if !tr.Direct() {
		t.Fatalf("expected direct entry")
	}
	if _, ok := Take[string](tr); ok {
		t.Fatalf("direct entry must not carry a payload")
	}

	var nilTr *Transition
	if _, ok := Take[string](nilTr); ok {
		t.Fatalf("nil transition must not carry a payload")
	}
}

func TestNavigationFromUnmountedScreenIsDropped(t *testing.T) {
	ctx := context.Background()
	nav := NewNavigator(nil)

	results := &recorder{}
	nav.Register("post", &recorder{})
	nav.Register("dashboard", &recorder{})
	nav.Register("results", results)

	if err := nav.Enter(ctx, "post"); err != nil {
		t.Fatalf("enter: %v", err)
	}
	// The user navigates away before the pipeline finishes.
	if err := nav.Enter(ctx, "dashboard"); err != nil {
		t.Fatalf("enter: %v", err)
	}

	if err := nav.Navigate(ctx, "post", "results", "late result"); err != nil {
		t.Fatalf("dropped navigation must not be an error: %v", err)
	}

	if len(results.entered) != 0 {
		t.Fatalf("results screen must not be entered")
	}
	if nav.Current() != "dashboard" {
		t.Fatalf("expected dashboard to stay mounted, got %q", nav.Current())
	}
}

func TestChainedNavigation(t *testing.T) {
	ctx := context.Background()
	nav := NewNavigator(nil)

	final := &recorder{}
	nav.Register("a", ScreenFunc(func(ctx context.Context, nav *Navigator, tr *Transition) error {
		return nav.Navigate(ctx, "a", "b", 42)
	}))
	nav.Register("b", final)

	if err := nav.Enter(ctx, "a"); err != nil {
		t.Fatalf("enter: %v", err)
	}

	if v, ok := Take[int](final.entered[0]); !ok || v != 42 {
		t.Fatalf("expected 42, got %v, %v", v, ok)
	}
}

func TestUnknownRoute(t *testing.T) {
	nav := NewNavigator(nil)
	if err := nav.Enter(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for unknown route")
	}
}
