package employee

import "errors"

var (
	ErrPersonNotFound  = errors.New("person not found")
	ErrManagerNotFound = errors.New("manager not found")
	ErrManagerCycle    = errors.New("manager assignment would create a cycle")
)
