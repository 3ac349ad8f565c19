package deal

import "errors"

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrBrandNotFound    = errors.New("brand not found")
	ErrBrandRepNotFound = errors.New("brand representative not found")
)
