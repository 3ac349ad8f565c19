package contract

import "errors"

var (
	ErrDealNotFound    = errors.New("deal not found")
	ErrAlreadyRejected = errors.New("contract already rejected")
)
