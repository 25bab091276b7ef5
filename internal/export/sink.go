// =============================================================================
// Vertragswert Tool - Output Sinks
// =============================================================================
//
// The exporter never touches the filesystem directly. The caller hands it a
// Sink, an abstract writable destination, and the exporter creates named
// entries in it (the results table, the workbook, one letter per contract).
// This keeps the pipeline a pure function of (input, config) and lets tests
// and the letter preview run entirely in memory.
//
// =============================================================================

package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Sink is an abstract writable destination for export artifacts. Entry names
// use forward slashes; a name may contain directory components
// (e.g. "letters/brief_1.txt").
type Sink interface {
	// Create opens a new named entry for writing. An existing entry of the
	// same name is replaced.
	Create(name string) (io.WriteCloser, error)
}

// =============================================================================
// DIRECTORY SINK
// =============================================================================

// DirSink writes entries as files below a root directory, creating
// intermediate directories as needed.
type DirSink struct {
	Root string
}

// NewDirSink returns a sink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Root: dir}
}

// Create implements Sink.
func (s *DirSink) Create(name string) (io.WriteCloser, error) {
	path := filepath.Join(s.Root, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", name, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}
	return f, nil
}

// =============================================================================
// MEMORY SINK
// =============================================================================

// MemorySink collects entries in memory. It backs the tests and the letter
// preview command.
type MemorySink struct {
	// FailOn lists entry names whose creation should fail. Used in tests to
	// exercise the partial-failure path of the exporter.
	FailOn map[string]bool

	entries map[string]*bytes.Buffer
}

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{entries: make(map[string]*bytes.Buffer)}
}

// Create implements Sink.
func (s *MemorySink) Create(name string) (io.WriteCloser, error) {
	if s.FailOn[name] {
		return nil, fmt.Errorf("sink refused entry %s", name)
	}
	if s.entries == nil {
		s.entries = make(map[string]*bytes.Buffer)
	}
	buf := &bytes.Buffer{}
	s.entries[name] = buf
	return nopCloser{buf}, nil
}

// Entry returns the content written under name, and whether it exists.
func (s *MemorySink) Entry(name string) (string, bool) {
	buf, ok := s.entries[name]
	if !ok {
		return "", false
	}
	return buf.String(), true
}

// Names returns the names of all written entries, sorted.
func (s *MemorySink) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
