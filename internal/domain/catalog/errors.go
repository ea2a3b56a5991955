package catalog

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidKind  = errors.New("invalid territory kind")
	ErrInvalidScope = errors.New("invalid market scope")
	ErrInvalidRate  = errors.New("acquisition rate must not be negative")
)
