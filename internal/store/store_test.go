package store

import (
	"testing"

	"github.com/sagararora86/ember/pkg/kvserrors"
	"github.com/sagararora86/ember/pkg/logging"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), logging.Noop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetThenGet(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("foo", "bar"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found, err := s.Get("foo")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatalf("Get(foo) found = false, want true")
	}
	if got != "bar" {
		t.Errorf("Get = %q, want %q", got, "bar")
	}
}

func TestOverwriteReturnsLatestValue(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("foo", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("foo", "v2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found, err := s.Get("foo")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatalf("Get(foo) found = false, want true")
	}
	if got != "v2" {
		t.Errorf("Get = %q, want %q", got, "v2")
	}
}

func TestGetAbsentKey(t *testing.T) {
	s := openTestStore(t)

	_, found, err := s.Get("missing")
	if err != nil {
		t.Errorf("Get(missing) err = %v, want nil", err)
	}
	if found {
		t.Errorf("Get(missing) found = true, want false")
	}
}

func TestRemove(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("foo", "bar"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Remove("foo"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, found, err := s.Get("foo"); err != nil || found {
		t.Errorf("Get after Remove = (found=%v, err=%v), want (false, nil)", found, err)
	}
}

func TestRemoveAbsentKey(t *testing.T) {
	s := openTestStore(t)

	err := s.Remove("missing")
	if !kvserrors.IsKeyNotFound(err) {
		t.Errorf("Remove(missing) err = %v, want KindKeyNotFound", err)
	}
}

func TestReopenPreservesState(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir, logging.Noop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s1.Set("foo", "bar"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s1.Set("baz", "qux"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s1.Remove("baz"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(dir, logging.Noop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, found, err := s2.Get("foo")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if !found {
		t.Fatalf("Get(foo) after reopen found = false, want true")
	}
	if got != "bar" {
		t.Errorf("Get after reopen = %q, want %q", got, "bar")
	}

	if _, found, err := s2.Get("baz"); err != nil || found {
		t.Errorf("Get(baz) after reopen = (found=%v, err=%v), want (false, nil)", found, err)
	}
}

func TestReopenStartsFreshActiveSegment(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir, logging.Noop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s1.Set("a", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	firstActive := s1.active.index
	if err := s1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(dir, logging.Noop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	if s2.active.index <= firstActive {
		t.Errorf("reopen active segment index = %d, want > %d", s2.active.index, firstActive)
	}

	got, found, err := s2.Get("a")
	if err != nil || !found || got != "1" {
		t.Errorf("Get(a) after reopen = (%q, found=%v, err=%v), want (1, true, nil)", got, found, err)
	}
}
