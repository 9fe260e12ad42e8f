package repositories

import "errors"

var (
	// ErrNotFound is wrapped by every lookup that finds no record.
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict means the record changed since it was loaded.
	ErrVersionConflict = errors.New("record was modified concurrently")
	// ErrDuplicate means a unique index rejected the write.
	ErrDuplicate = errors.New("record already exists")
)
