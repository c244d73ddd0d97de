package store

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rehearsehq/rehearse/pkg/domain"
)

func TestCookieRoundTrip(t *testing.T) {
	s := At(t.TempDir())

	if got := s.Cookie(); got != "" {
		t.Errorf("Cookie() on fresh store = %q, want empty", got)
	}

	if err := s.SaveCookie("abc123"); err != nil {
		t.Fatalf("SaveCookie() error: %v", err)
	}
	if got := s.Cookie(); got != "abc123" {
		t.Errorf("Cookie() = %q, want %q", got, "abc123")
	}

	if err := s.ClearCookie(); err != nil {
		t.Fatalf("ClearCookie() error: %v", err)
	}
	if got := s.Cookie(); got != "" {
		t.Errorf("Cookie() after clear = %q, want empty", got)
	}
}

func TestClearCookie_MissingFileIsFine(t *testing.T) {
	s := At(t.TempDir())
	if err := s.ClearCookie(); err != nil {
		t.Errorf("ClearCookie() on empty store error: %v", err)
	}
}

func TestCookieFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := t.TempDir()
	s := At(dir)
	if err := s.SaveCookie("secret"); err != nil {
		t.Fatalf("SaveCookie() error: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "cookie"))
	if err != nil {
		t.Fatalf("stat cookie file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("cookie file perm = %o, want 0600", perm)
	}
}

func TestHintsRoundTrip(t *testing.T) {
	s := At(t.TempDir())

	if got := s.Hints(); got != (domain.Hints{}) {
		t.Errorf("Hints() on fresh store = %+v, want zero", got)
	}

	want := domain.Hints{Role: "backend engineer", Experience: "5 years", TechStack: "go, postgres"}
	if err := s.SaveHints(want); err != nil {
		t.Fatalf("SaveHints() error: %v", err)
	}
	if got := s.Hints(); got != want {
		t.Errorf("Hints() = %+v, want %+v", got, want)
	}
}

func TestHints_CorruptFileYieldsZero(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hints.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	s := At(dir)
	if got := s.Hints(); got != (domain.Hints{}) {
		t.Errorf("Hints() on corrupt file = %+v, want zero", got)
	}
}
