package pager

import (
	"testing"
	"time"
)

func nums(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestResetShowsFirstPage(t *testing.T) {
	p := New(nums(25), 10, 0)
	visible := p.Reset(nums(25))

	if len(visible) != 10 {
		t.Fatalf("expected 10 visible, got %d", len(visible))
	}
	if !p.HasMore() {
		t.Fatal("expected more pages")
	}
}

func TestExtendRevealsEverythingInOrder(t *testing.T) {
	items := nums(25)
	p := New(items, 10, 0)
	p.Reset(items)

	for p.HasMore() {
		ch := p.Extend()
		if ch == nil {
			t.Fatal("Extend returned nil while pages remain")
		}
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for extend completion")
		}
	}

	visible := p.Visible()
	if len(visible) != len(items) {
		t.Fatalf("expected %d items visible, got %d", len(items), len(visible))
	}
	for i, v := range visible {
		if v != i {
			t.Fatalf("position %d holds %d: order or duplication broken", i, v)
		}
	}
}

func TestExtendIsNoopWhenExhausted(t *testing.T) {
	p := New(nums(5), 10, 0)
	p.Reset(nums(5))

	if p.HasMore() {
		t.Fatal("five items fit one page")
	}
	if ch := p.Extend(); ch != nil {
		t.Fatal("expected nil channel once exhausted")
	}
}

func TestOnlyOneExtendInFlight(t *testing.T) {
	p := New(nums(30), 10, 50*time.Millisecond)
	p.Reset(nums(30))

	first := p.Extend()
	if first == nil {
		t.Fatal("first extend refused")
	}
	if second := p.Extend(); second != nil {
		t.Fatal("second extend accepted while first pending")
	}

	select {
	case got := <-first:
		if len(got) != 20 {
			t.Fatalf("expected 20 visible after extend, got %d", len(got))
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for completion")
	}

	// completion cleared the guard
	if ch := p.Extend(); ch == nil {
		t.Fatal("extend refused after previous one completed")
	}
}

func TestResetReplacesWindow(t *testing.T) {
	p := New(nums(30), 10, 0)
	p.Reset(nums(30))
	<-p.Extend()

	visible := p.Reset(nums(12))
	if len(visible) != 10 {
		t.Fatalf("reset should show first page only, got %d", len(visible))
	}
	if !p.HasMore() {
		t.Fatal("12 items leave a second page")
	}
}

func TestPage(t *testing.T) {
	items := nums(25)

	got, hasMore := Page(items, 1, 10)
	if len(got) != 10 || !hasMore {
		t.Fatalf("page 1: got %d items, hasMore=%v", len(got), hasMore)
	}

	got, hasMore = Page(items, 3, 10)
	if len(got) != 5 || hasMore {
		t.Fatalf("page 3: got %d items, hasMore=%v", len(got), hasMore)
	}

	got, hasMore = Page(items, 4, 10)
	if len(got) != 0 || hasMore {
		t.Fatalf("page past the end: got %d items, hasMore=%v", len(got), hasMore)
	}
}
