package output

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

type WriteOptions struct {
	// Mode of newly written files; 0 means 0755 since job scripts are executable.
	Mode os.FileMode
	// Stdout receives content when path is "-"; nil means os.Stdout.
	Stdout io.Writer
}

// Write writes content to path, replacing any existing file. The parent directory must
// already exist. A path of "-" prints to stdout instead.
func Write(path string, content []byte, opts WriteOptions) error {
	if path == "-" {
		w := opts.Stdout
		if w == nil {
			w = os.Stdout
		}
		if _, err := w.Write(content); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
		return nil
	}

	mode := opts.Mode
	if mode == 0 {
		mode = 0o755
	}

	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		log.Warn().Str("path", path).Msg("overwriting existing job script")
	}
	log.Debug().Str("path", path).Int("size", len(content)).Msg("write start")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", path, err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("bytes", len(content)).Msg("job script written")
	return nil
}

// EnsureDir reports an error unless dir exists and is a directory.
func EnsureDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s: %w", dir, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", dir)
	}
	return nil
}
