// Package relocate flattens per-job tool output directories into one directory of input descriptors.
package relocate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/jonathan/af-prep/internal/logger"
	"go.uber.org/zap"
)

// DataFileSuffix is appended to the job name to form the nested data file name.
const DataFileSuffix = "_data.json"

// Options configures a relocation run.
type Options struct {
	SourceDir string
	DestDir   string
	// Strict aborts on the first job directory without a data file.
	Strict bool
}

// Result lists the job names handled by a run, in sorted order.
type Result struct {
	Copied  []string
	Skipped []string
}

// MissingSourceError is returned in strict mode when a job directory lacks its data file.
type MissingSourceError struct {
	Name string
	Path string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("data file for %s not found at %s", e.Name, e.Path)
}

// CopyError represents a failed copy of one data file.
type CopyError struct {
	Source  string
	Dest    string
	Message string
	Cause   error
}

func (e *CopyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("copy %s -> %s: %s: %v", e.Source, e.Dest, e.Message, e.Cause)
	}
	return fmt.Sprintf("copy %s -> %s: %s", e.Source, e.Dest, e.Message)
}

func (e *CopyError) Unwrap() error {
	return e.Cause
}

// SourcePath returns {src}/{name}/{name}_data.json.
func SourcePath(src, name string) string {
	return filepath.Join(src, name, name+DataFileSuffix)
}

// DestPath returns {dest}/{name}.json.
func DestPath(dest, name string) string {
	return filepath.Join(dest, name+".json")
}

// Relocate copies {src}/{name}/{name}_data.json to {dest}/{name}.json for every
// subdirectory name of src. Files already copied stay in place if a later item fails.
func Relocate(opts Options) (*Result, error) {
	entries, err := os.ReadDir(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory %s: %w", opts.SourceDir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	if err := os.MkdirAll(opts.DestDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory %s: %w", opts.DestDir, err)
	}

	result := &Result{}
	for _, entry := range entries {
		if info, err := os.Stat(filepath.Join(opts.SourceDir, entry.Name())); err != nil || !info.IsDir() {
			logger.Debug("Ignoring non-directory entry", zap.String("name", entry.Name()))
			continue
		}

		name := entry.Name()
		src := SourcePath(opts.SourceDir, name)
		dst := DestPath(opts.DestDir, name)

		err := copyFile(src, dst)
		if err == nil {
			logger.Debug("Copied data file", zap.String("from", src), zap.String("to", dst))
			result.Copied = append(result.Copied, name)
			continue
		}

		if errors.Is(err, os.ErrNotExist) {
			if opts.Strict {
				return result, &MissingSourceError{Name: name, Path: src}
			}
			logger.Warn("Data file not found, skipping", zap.String("job", name), zap.String("path", src))
			result.Skipped = append(result.Skipped, name)
			continue
		}
		return result, err
	}
	return result, nil
}

// copyFile copies src to dst, overwriting dst and keeping the source permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return &CopyError{Source: src, Dest: dst, Message: "failed to stat source", Cause: err}
	}
	if info.IsDir() {
		return &CopyError{Source: src, Dest: dst, Message: "source is a directory"}
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return &CopyError{Source: src, Dest: dst, Message: "failed to create destination", Cause: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return &CopyError{Source: src, Dest: dst, Message: "failed to copy contents", Cause: err}
	}
	if err := out.Close(); err != nil {
		return &CopyError{Source: src, Dest: dst, Message: "failed to close destination", Cause: err}
	}
	return nil
}
