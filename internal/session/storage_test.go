package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNewStorage - Root creation
// ---------------------------------------------------------------------------

func TestNewStorage(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	uploads := filepath.Join(root, "nested", "uploads")
	outputs := filepath.Join(root, "outputs")

	s, err := NewStorage(uploads, outputs)
	if err != nil {
		t.Fatalf("NewStorage() error = %v", err)
	}

	for _, dir := range []string{uploads, outputs} {
		if !dirExists(dir) {
			t.Errorf("root %s not created", dir)
		}
	}

	gotUp, gotOut := s.Roots()
	if gotUp != uploads || gotOut != outputs {
		t.Errorf("Roots() = %q, %q", gotUp, gotOut)
	}
}

func TestNewStorage_Errors(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name    string
		uploads string
		outputs string
	}{
		{name: "empty upload root", uploads: "", outputs: t.TempDir()},
		{name: "empty output root", uploads: t.TempDir(), outputs: ""},
		{name: "root below a file", uploads: filepath.Join(blocker, "uploads"), outputs: t.TempDir()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewStorage(tt.uploads, tt.outputs)
			if !errors.Is(err, ErrStorage) {
				t.Errorf("NewStorage() error = %v, want ErrStorage", err)
			}
		})
	}
}

func TestStorage_CreateRemove(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	id := newSessionID()

	if err := s.create(id); err != nil {
		t.Fatalf("create() error = %v", err)
	}
	if !dirExists(s.UploadDir(id)) || !dirExists(s.OutputDir(id)) {
		t.Fatal("session directories not created")
	}

	if err := s.remove(id); err != nil {
		t.Fatalf("remove() error = %v", err)
	}
	if dirExists(s.UploadDir(id)) || dirExists(s.OutputDir(id)) {
		t.Error("session directories not removed")
	}

	if err := s.remove(id); err != nil {
		t.Errorf("second remove() error = %v, want nil", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidID - Session id validation
// ---------------------------------------------------------------------------

func TestValidID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "generated", id: newSessionID(), want: true},
		{name: "canonical", id: "123e4567-e89b-42d3-a456-426614174000", want: true},
		{name: "empty", id: "", want: false},
		{name: "traversal", id: "../../etc", want: false},
		{name: "uppercase", id: "123E4567-E89B-42D3-A456-426614174000", want: false},
		{name: "braced", id: "{123e4567-e89b-42d3-a456-426614174000}", want: false},
		{name: "urn", id: "urn:uuid:123e4567-e89b-42d3-a456-426614174000", want: false},
		{name: "no dashes", id: "123e4567e89b42d3a456426614174000", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ValidID(tt.id); got != tt.want {
				t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestFallbackToken(t *testing.T) {
	t.Parallel()

	tok := fallbackToken()
	if len(tok) != 8 || strings.Trim(tok, "0123456789abcdef") != "" {
		t.Errorf("fallbackToken() = %q, want 8 hex chars", tok)
	}
}
