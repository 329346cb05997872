package game

import (
	"errors"
	"testing"
)

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()

	build := func() (*Session, error) {
		return newTestSession("crane"), nil
	}

	if _, err := r.Create("player-1", build); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := r.Create("player-1", build); !errors.Is(err, ErrAlreadyActive) {
		t.Errorf("second Create() error = %v, want ErrAlreadyActive", err)
	}

	if _, err := r.Create("player-2", build); err != nil {
		t.Errorf("Create() for second player error = %v", err)
	}

	if n := r.Len(); n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}
}

func TestRegistryCreateBuilderFailure(t *testing.T) {
	r := NewRegistry()
	buildErr := errors.New("no word available")

	if _, err := r.Create("player-1", func() (*Session, error) {
		return nil, buildErr
	}); !errors.Is(err, buildErr) {
		t.Fatalf("Create() error = %v, want builder error", err)
	}

	// A failed build must not reserve the slot
	if _, err := r.Create("player-1", func() (*Session, error) {
		return newTestSession("crane"), nil
	}); err != nil {
		t.Errorf("Create() after failed build error = %v", err)
	}
}

func TestRegistryGetAndRemove(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Get("player-1"); ok {
		t.Error("Get() on empty registry returned a session")
	}

	session, err := r.Create("player-1", func() (*Session, error) {
		return newTestSession("crane"), nil
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, ok := r.Get("player-1")
	if !ok || got != session {
		t.Errorf("Get() = %v, %v; want the created session", got, ok)
	}

	r.Remove("player-1")
	if _, ok := r.Get("player-1"); ok {
		t.Error("Get() after Remove() returned a session")
	}

	if _, err := r.Create("player-1", func() (*Session, error) {
		return newTestSession("slate"), nil
	}); err != nil {
		t.Errorf("Create() after Remove() error = %v", err)
	}
}
