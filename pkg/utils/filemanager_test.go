package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverInputFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.txt"))
	touch(t, filepath.Join(dir, "a.csv"))
	touch(t, filepath.Join(dir, "notes.md"))
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := DiscoverInputFiles(dir)
	if err != nil {
		t.Fatalf("DiscoverInputFiles: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("files = %v, want a.csv and b.txt", files)
	}
	if filepath.Base(files[0]) != "a.csv" || filepath.Base(files[1]) != "b.txt" {
		t.Errorf("files = %v, want sorted by name", files)
	}
}

func TestArchiveInputFile(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "done")
	input := filepath.Join(dir, "contracts.txt")
	touch(t, input)

	fm := NewFileManager(archive)

	target, err := fm.ArchiveInputFile(input, "batch-1")
	if err != nil {
		t.Fatalf("ArchiveInputFile: %v", err)
	}
	if target != filepath.Join(archive, "contracts.txt") {
		t.Errorf("target = %q", target)
	}
	if _, err := os.Stat(input); !os.IsNotExist(err) {
		t.Error("input file should have been moved")
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("archived file missing: %v", err)
	}
}

func TestArchiveInputFileAvoidsCollisions(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "done")

	first := filepath.Join(dir, "contracts.txt")
	touch(t, first)
	fm := NewFileManager(archive)
	if _, err := fm.ArchiveInputFile(first, "batch-1"); err != nil {
		t.Fatal(err)
	}

	second := filepath.Join(dir, "contracts.txt")
	touch(t, second)
	target, err := fm.ArchiveInputFile(second, "batch-2")
	if err != nil {
		t.Fatalf("ArchiveInputFile: %v", err)
	}

	want := filepath.Join(archive, "contracts_batch-2.txt")
	if target != want {
		t.Errorf("target = %q, want %q", target, want)
	}
}

func TestArchiveDisabledIsNoOp(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "contracts.txt")
	touch(t, input)

	fm := NewFileManager("")
	target, err := fm.ArchiveInputFile(input, "batch-1")
	if err != nil {
		t.Fatalf("ArchiveInputFile: %v", err)
	}
	if target != "" {
		t.Errorf("target = %q, want empty", target)
	}
	if _, err := os.Stat(input); err != nil {
		t.Error("input file must stay in place when archival is disabled")
	}
}
