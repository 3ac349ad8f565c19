package docstore

import "errors"

// ErrUnreadable marks a persisted document that exists but cannot be decoded.
// Load still returns a usable default document alongside it.
var ErrUnreadable = errors.New("document unreadable")
