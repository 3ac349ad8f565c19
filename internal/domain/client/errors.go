package client

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrClientNotFound   = errors.New("client not found")
)
