package brand

import "errors"

var (
	ErrBrandNotFound  = errors.New("brand not found")
	ErrPersonNotFound = errors.New("person not found")
)
