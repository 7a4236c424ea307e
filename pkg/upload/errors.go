package upload

import (
	"errors"
	"fmt"
)

var (
	// ErrUploadIncomplete is matched by every *IncompleteError.
	ErrUploadIncomplete = errors.New("upload: conversion did not complete")
	// ErrEmptySource is returned when the source yields no bytes.
	ErrEmptySource = errors.New("upload: empty source")
	// ErrNoSource is returned when a Request has neither a FilePath nor a Reader.
	ErrNoSource = errors.New("upload: no source")
)

// IncompleteError reports an upload whose conversion failed or did not finish in time.
// The media was not saved.
type IncompleteError struct {
	ImportID string
	Status   ConversionStatus
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("upload: import %s ended with status %s", e.ImportID, e.Status)
}

// Is makes errors.Is(err, ErrUploadIncomplete) true.
func (e *IncompleteError) Is(target error) bool {
	return target == ErrUploadIncomplete
}
