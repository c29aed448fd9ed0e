package storage

import (
	"path/filepath"
	"testing"
)

func TestLoad_MissingKey(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}

	got, err := s.Load(KeyNotes)
	if err != nil {
		t.Errorf("error: %v\n", err)
	}

	if got != "" {
		t.Errorf("got = %q, expected an empty string for a missing key\n", got)
	}
}

func TestSaveLoad(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}

	tests := []struct {
		description string
		key         string
		value       string
	}{
		{description: "api key", key: KeyAPIKey, value: "sk-test"},
		{description: "notes markup", key: KeyNotes, value: "<mark>hello</mark> world"},
		{description: "empty value", key: KeyNotes, value: ""},
	}

	for _, tc := range tests {
		if err := s.Save(tc.key, tc.value); err != nil {
			t.Errorf("(%s) error: %v\n", tc.description, err)
			continue
		}

		got, err := s.Load(tc.key)
		if err != nil {
			t.Errorf("(%s) error: %v\n", tc.description, err)
			continue
		}

		if got != tc.value {
			t.Errorf("(%s) got = %q, expected = %q\n", tc.description, got, tc.value)
		}
	}
}

func TestSave_Overwrites(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}

	if err := s.Save(KeyNotes, "first"); err != nil {
		t.Fatalf("error: %v\n", err)
	}
	if err := s.Save(KeyNotes, "second"); err != nil {
		t.Fatalf("error: %v\n", err)
	}

	got, err := s.Load(KeyNotes)
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}

	want := "second"
	if got != want {
		t.Errorf("got = %q, expected = %q\n", got, want)
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")

	s, err := New(dir)
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}

	if s.Dir() != dir {
		t.Errorf("got = %q, expected = %q\n", s.Dir(), dir)
	}

	// A second open of the same directory must succeed.
	if _, err := New(dir); err != nil {
		t.Errorf("error: %v\n", err)
	}
}
