package filesystem

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/pgzip"
)

// StdinPath names standard input as a source.
const StdinPath = "-"

// IsGzip reports whether path names a gzip-compressed source.
func IsGzip(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// IsDictionaryFile reports whether path looks like an XML data dictionary
// (*.xml or *.xml.gz).
func IsDictionaryFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".xml") || strings.HasSuffix(lower, ".xml.gz")
}

type gzipSource struct {
	*pgzip.Reader
	underlying io.Closer
}

func (s *gzipSource) Close() error {
	zerr := s.Reader.Close()
	if err := s.underlying.Close(); err != nil {
		return err
	}
	return zerr
}

// OpenSource opens a data dictionary source. "-" reads standard input and
// paths ending in .gz are transparently decompressed.
func OpenSource(p FileSystemProvider, path string) (io.ReadCloser, error) {
	var rc io.ReadCloser
	if path == StdinPath {
		rc = io.NopCloser(os.Stdin)
	} else {
		f, err := p.OpenFile(path)
		if err != nil {
			return nil, err
		}
		rc = f
	}

	if !IsGzip(path) {
		return rc, nil
	}

	zr, err := pgzip.NewReader(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
	}
	return &gzipSource{Reader: zr, underlying: rc}, nil
}

// ReadSource reads a whole source through OpenSource.
func ReadSource(p FileSystemProvider, path string) ([]byte, error) {
	src, err := OpenSource(p, path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}

// FindDictionaries walks dir and returns the paths of all data dictionary
// files below it, sorted.
func FindDictionaries(p FileSystemProvider, dir string) ([]string, error) {
	d, err := p.Open(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	err = d.Walk(func(f File, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !f.Info().IsDir() && IsDictionaryFile(f.Path()) {
			paths = append(paths, f.Path())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Strings(paths)
	return paths, nil
}
