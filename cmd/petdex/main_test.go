package main

import (
	"path/filepath"
	"testing"

	"petdex/pkg/session"
)

func TestRunLogout(t *testing.T) {
	t.Setenv("PETDEX_TOKEN", "")
	store := session.NewStoreAt(filepath.Join(t.TempDir(), "token"))

	msg, err := runLogout(store)
	if err != nil {
		t.Fatalf("logout with nothing stored: %v", err)
	}
	if msg != "Already logged out." {
		t.Errorf("expected already-logged-out message, got %q", msg)
	}

	if err := store.Save("some-token"); err != nil {
		t.Fatal(err)
	}
	msg, err = runLogout(store)
	if err != nil {
		t.Fatalf("logout with a stored credential: %v", err)
	}
	if msg != "Logged out." {
		t.Errorf("expected logged-out message, got %q", msg)
	}
	if store.Token() != "" {
		t.Error("expected credential discarded")
	}
}
