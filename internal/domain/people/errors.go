package people

import "errors"

var ErrPersonReferenced = errors.New("person is still referenced")
