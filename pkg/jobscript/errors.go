package jobscript

import (
	"errors"
	"fmt"
)

// ErrFileWrite is matched by every *FileWriteError.
var ErrFileWrite = errors.New("failed to write job script")

// FileWriteError reports a job script that could not be written to its directory.
type FileWriteError struct {
	Dir  string
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("failed to write job script %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

func (e *FileWriteError) Is(target error) bool { return target == ErrFileWrite }
