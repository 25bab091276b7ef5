// =============================================================================
// Vertragswert Tool - File Manager Utility
// =============================================================================
//
// File management around a pipeline run:
//   - discovery of contract files when the operator points at a directory
//   - archival of processed input files
//
// ARCHIVAL STRATEGY:
//   Input files are moved into the archive directory after a fully successful
//   run (no export errors). A file that would collide with an existing archive
//   entry gets the batch ID woven into its name, so repeated imports of
//   equally named files never overwrite each other. Failed files stay where
//   they are.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// FileManager handles file operations around pipeline runs.
type FileManager struct {
	// ArchiveDir is the directory processed input files are moved to.
	// Empty disables archival.
	ArchiveDir string
}

// NewFileManager creates a FileManager.
func NewFileManager(archiveDir string) *FileManager {
	return &FileManager{ArchiveDir: archiveDir}
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// contract files come out of the legacy system as .txt, occasionally as .csv.
var inputExtensions = []string{".txt", ".csv"}

// DiscoverInputFiles returns all contract files directly inside dir, sorted by
// name so runs are reproducible.
func DiscoverInputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range inputExtensions {
			if ext == want {
				files = append(files, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a processed input file into the archive directory.
// batchID disambiguates the archive name when a file of the same name was
// archived before. Archival is a no-op when no archive directory is set.
func (fm *FileManager) ArchiveInputFile(inputPath, batchID string) (string, error) {
	if fm.ArchiveDir == "" {
		return "", nil
	}

	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	name := filepath.Base(inputPath)
	target := filepath.Join(fm.ArchiveDir, name)

	if _, err := os.Stat(target); err == nil {
		if batchID == "" {
			batchID = uuid.New().String()
		}
		ext := filepath.Ext(name)
		target = filepath.Join(fm.ArchiveDir, strings.TrimSuffix(name, ext)+"_"+batchID+ext)
	}

	if err := moveFile(inputPath, target); err != nil {
		return "", fmt.Errorf("failed to archive input file: %w", err)
	}

	return target, nil
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// archive lives on a different filesystem.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}
