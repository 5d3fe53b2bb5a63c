package publisher

import "errors"

var ErrNotFound = errors.New("publisher not found")
