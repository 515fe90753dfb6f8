// =============================================================================
// XML to CSV Converter - File Manager Utility
// =============================================================================
//
// This module provides the file management utilities the conversion
// pipeline relies on:
//   - Directory bootstrap
//   - Output archival (copying generated files to long-term storage)
//   - Error log generation for failed runs
//
// ARCHIVAL STRATEGY:
//   - Generated outputs are copied (not moved) into the archive directory,
//     so the path the feed consumer polls always holds the latest file.
//   - Failed feeds produce an error log in the output directory; nothing
//     is archived for them.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the given directories if they don't exist.
// Empty entries are skipped so optional directories (like a disabled
// archive) can be passed straight from the configuration.
func EnsureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveFile copies the file at path into archiveDir, keeping the base
// name. The original stays in place.
//
// RETURNS:
//   - An error if the copy fails. The caller decides whether that is
//     fatal; for the converter it is not.
func ArchiveFile(path, archiveDir string) error {
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer src.Close()

	dstPath := filepath.Join(archiveDir, filepath.Base(path))
	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dstPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to copy to archive: %w", err)
	}

	return dst.Close()
}

// =============================================================================
// ERROR LOGGING
// =============================================================================

// WriteErrorLog writes the collected per-feed error messages to a uniquely
// named log file in dir and returns its path.
//
// The uuid suffix keeps repeated failing runs from clobbering each other's
// logs.
func WriteErrorLog(dir string, errors []string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	name := fmt.Sprintf("errors_%s_%s.log",
		time.Now().Format("20060102_150405"),
		uuid.New().String()[:8])
	path := filepath.Join(dir, name)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Conversion errors (%s)\n\n", time.Now().Format(time.RFC3339)))
	for _, msg := range errors {
		b.WriteString(msg)
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write error log: %w", err)
	}

	return path, nil
}
