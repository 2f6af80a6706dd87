package repository

import "errors"

// ErrNotFound is returned when a lookup by id yields nothing.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write collides with existing state, such as
// inserting an id that is already taken.
var ErrConflict = errors.New("conflict")
