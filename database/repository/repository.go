package repository

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no record carries the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict is returned when a write was based on a stale read.
	ErrVersionConflict = errors.New("record was modified concurrently")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("record already exists")
)

// QueryTimeout bounds every single database round trip.
const QueryTimeout = 5 * time.Second
