package repository

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateID    = errors.New("record id already in use")
	ErrImmutableField = errors.New("id field cannot be changed")
	ErrUnknownField   = errors.New("unknown field")
	ErrInvalidValue   = errors.New("invalid field value")
)
