package core

// files.go is the file layer under Session: one bounded blocking read and one
// atomic blocking write, each closing its handle on every path.

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxFileSize caps how much ReadFile will load (100MB).
const DefaultMaxFileSize int64 = 100 << 20

// FileInfo is the metadata captured when a file is opened.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
}

// ReadFile reads the whole file at path. Files larger than maxSize are
// rejected before any data is read; maxSize <= 0 uses DefaultMaxFileSize.
func ReadFile(path string, maxSize int64) ([]byte, FileInfo, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, FileInfo{}, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, FileInfo{}, &IOError{Op: "stat", Path: path, Err: err}
	}
	if st.IsDir() {
		return nil, FileInfo{}, &IOError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	if st.Size() > maxSize {
		return nil, FileInfo{}, &IOError{Op: "read", Path: path, Err: fileTooLarge(st.Size(), maxSize)}
	}

	// The size can change between Stat and Read; the limit still holds.
	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, FileInfo{}, &IOError{Op: "read", Path: path, Err: err}
	}
	if int64(len(data)) > maxSize {
		return nil, FileInfo{}, &IOError{Op: "read", Path: path, Err: fileTooLarge(int64(len(data)), maxSize)}
	}

	return data, fileInfo(path, st), nil
}

// Stat returns metadata for path.
func Stat(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, &IOError{Op: "stat", Path: path, Err: err}
	}
	return fileInfo(path, st), nil
}

// WriteFileAtomic replaces path with data. The bytes go to a temporary file
// in the same directory, are synced, then renamed over path, so readers see
// either the old or the new content. With backup set, an existing file is
// first copied to path + ".bak". An existing file's permissions are kept.
func WriteFileAtomic(path string, data []byte, backup bool) (err error) {
	perm := fs.FileMode(0o644)

	st, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if st.IsDir() {
			return &IOError{Op: "write", Path: path, Err: errors.New("is a directory")}
		}
		perm = st.Mode().Perm()
		if backup {
			if err := copyFile(path, path+".bak", perm); err != nil {
				return err
			}
		}
	case !errors.Is(statErr, fs.ErrNotExist):
		return &IOError{Op: "stat", Path: path, Err: statErr}
	}

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return &IOError{Op: "create", Path: tmp, Err: err}
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return &IOError{Op: "write", Path: tmp, Err: err}
	}
	if err = f.Sync(); err != nil {
		return &IOError{Op: "sync", Path: tmp, Err: err}
	}
	if err = f.Close(); err != nil {
		return &IOError{Op: "close", Path: tmp, Err: err}
	}
	if err = os.Rename(tmp, path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}

	return nil
}

func copyFile(src, dst string, perm fs.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return &IOError{Op: "backup", Path: src, Err: err}
	}
	if err := os.WriteFile(dst, data, perm); err != nil {
		return &IOError{Op: "backup", Path: dst, Err: err}
	}
	return nil
}

func fileInfo(path string, st fs.FileInfo) FileInfo {
	return FileInfo{
		Path:    path,
		Name:    st.Name(),
		Size:    st.Size(),
		Mode:    st.Mode(),
		ModTime: st.ModTime(),
	}
}

func fileTooLarge(size, limit int64) error {
	return fmt.Errorf("file too large: %d bytes exceeds limit of %d", size, limit)
}
