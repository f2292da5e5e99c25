package core

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("a,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, info, err := ReadFile(path, 0)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "a,b\n" {
		t.Errorf("data = %q", data)
	}
	if info.Name != "data.csv" || info.Size != 4 || info.Path != path {
		t.Errorf("info = %+v", info)
	}
	if info.ModTime.IsZero() {
		t.Error("ModTime not set")
	}
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "big.csv")
	if err := os.WriteFile(big, []byte(strings.Repeat("x", 100)), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("too large", func(t *testing.T) {
		_, _, err := ReadFile(big, 10)
		if !errors.Is(err, ErrIO) || !strings.Contains(err.Error(), "file too large") {
			t.Errorf("ReadFile() error = %v, want file too large", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := ReadFile(filepath.Join(dir, "nope.csv"), 0)
		if !errors.Is(err, ErrIO) || !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("ReadFile() error = %v, want ErrIO wrapping fs.ErrNotExist", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		if _, _, err := ReadFile(dir, 0); !errors.Is(err, ErrIO) {
			t.Errorf("ReadFile() error = %v, want ErrIO", err)
		}
	})
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	if err := WriteFileAtomic(path, []byte("new\n"), false); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new\n" {
		t.Errorf("content = %q", got)
	}

	assertOnlyFiles(t, dir, "out.csv")
}

func TestWriteFileAtomic_OverwriteKeepsModeAndBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("old\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := WriteFileAtomic(path, []byte("new\n"), true); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "new\n" {
		t.Errorf("content = %q, want %q", got, "new\n")
	}
	bak, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(bak) != "old\n" {
		t.Errorf("backup = %q, want %q", bak, "old\n")
	}

	st, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", st.Mode().Perm())
	}

	assertOnlyFiles(t, dir, "data.csv", "data.csv.bak")
}

func TestWriteFileAtomic_Errors(t *testing.T) {
	dir := t.TempDir()

	err := WriteFileAtomic(filepath.Join(dir, "missing", "out.csv"), []byte("x"), false)
	if !errors.Is(err, ErrIO) {
		t.Errorf("write into missing dir error = %v, want ErrIO", err)
	}

	if err := WriteFileAtomic(dir, []byte("x"), false); !errors.Is(err, ErrIO) {
		t.Errorf("write over directory error = %v, want ErrIO", err)
	}

	assertOnlyFiles(t, dir)
}

func assertOnlyFiles(t *testing.T, dir string, names ...string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	if strings.Join(got, ",") != strings.Join(names, ",") {
		t.Errorf("directory holds %v, want %v", got, names)
	}
}
