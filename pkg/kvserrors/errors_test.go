package kvserrors

import "testing"

// TestWithKeyDoesNotMutateSentinel guards against a regression where
// WithKey mutated its receiver in place: since KeyNotFound is a shared
// package-level value, two unrelated calls attaching different keys would
// otherwise stomp on each other.
func TestWithKeyDoesNotMutateSentinel(t *testing.T) {
	e1 := KeyNotFound.WithKey("a")
	e2 := KeyNotFound.WithKey("b")

	if e1.Key != "a" {
		t.Errorf("e1.Key = %q, want %q", e1.Key, "a")
	}
	if e2.Key != "b" {
		t.Errorf("e2.Key = %q, want %q", e2.Key, "b")
	}
	if KeyNotFound.Key != "" {
		t.Errorf("KeyNotFound.Key = %q, want empty (sentinel must stay unmutated)", KeyNotFound.Key)
	}
}

func TestIsKeyNotFound(t *testing.T) {
	err := KeyNotFound.WithKey("foo")
	if !IsKeyNotFound(err) {
		t.Error("IsKeyNotFound = false, want true")
	}
	if IsKeyNotFound(IO(nil, "boom")) {
		t.Error("IsKeyNotFound on IO error = true, want false")
	}
}

func TestKindOfUnknownErrorDefaultsToIO(t *testing.T) {
	if got := KindOf(errUnrecognized{}); got != KindIO {
		t.Errorf("KindOf(unrecognized) = %q, want %q", got, KindIO)
	}
}

type errUnrecognized struct{}

func (errUnrecognized) Error() string { return "unrecognized" }
