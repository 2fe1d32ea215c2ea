package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WritableFileSystem is a FileSystemProvider that can also create files.
type WritableFileSystem interface {
	FileSystemProvider

	// Create creates or truncates the file at path, creating parent
	// directories as needed. Content is visible once the writer is closed.
	Create(path string) (io.WriteCloser, error)
}

// Create implements WritableFileSystem.Create
func (p *OSFileSystem) Create(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return os.Create(path)
}

type memoryWriter struct {
	bytes.Buffer
	path string
	fs   *MemoryFileSystem
}

func (w *memoryWriter) Close() error {
	w.fs.AddFileBytes(w.path, append([]byte(nil), w.Bytes()...))
	return nil
}

// Create implements WritableFileSystem.Create
func (mfs *MemoryFileSystem) Create(path string) (io.WriteCloser, error) {
	if entry, ok := mfs.lookup(mfs.resolve(path)); ok && entry.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	return &memoryWriter{path: path, fs: mfs}, nil
}
