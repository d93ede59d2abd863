package filesys

import (
	"path/filepath"
	"testing"
)

func TestCreateDirAndExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "child")

	exists, err := Exists(dir)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("Exists = true before CreateDir")
	}

	if err := CreateDir(dir, 0755, true); err != nil {
		t.Fatalf("CreateDir: %v", err)
	}

	exists, err = Exists(dir)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Error("Exists = false after CreateDir")
	}
}

func TestWriteFileThenReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	want := []byte("hello")

	if err := WriteFile(path, 0644, want); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("ReadFile = %q, want %q", got, want)
	}
}

func TestReadDirGlobsByPrefix(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"segment-00000.ember", "segment-00001.ember", "other.txt"} {
		if err := WriteFile(filepath.Join(dir, name), 0644, []byte("x")); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
	}

	paths, err := ReadDir(filepath.Join(dir, "segment-*.ember"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("ReadDir matched %d paths, want 2", len(paths))
	}
}
