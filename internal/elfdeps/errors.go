package elfdeps

import (
	"errors"
	"fmt"
)

// Static errors
var (
	// ErrNotRegularFile indicates the path does not name a regular file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrFileTooLarge indicates the file exceeds the maximum size for analysis.
	ErrFileTooLarge = errors.New("file too large")
)

// FileAccessError indicates the input file could not be opened or stat'ed.
// It is fatal for that file only; no tokens are emitted for it.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot access %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// ContainerDecodeError indicates the file is not a recognized ELF container
// or its header could not be decoded. Fatal for that file only.
type ContainerDecodeError struct {
	Path string
	Err  error
}

func (e *ContainerDecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s as ELF: %v", e.Path, e.Err)
}

func (e *ContainerDecodeError) Unwrap() error {
	return e.Err
}
