package repository

import "errors"

// ErrDuplicate is returned when a write collides with a unique index.
var ErrDuplicate = errors.New("duplicate record")
