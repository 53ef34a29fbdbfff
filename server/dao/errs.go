package dao

import "errors"

// Errors every store implementation maps its backend's failures onto, so
// callers can branch without knowing the backend.
var (
	ErrNotFound            = errors.New("no such record")
	ErrConstraintViolation = errors.New("record violates a uniqueness constraint")
)
