package author

import "errors"

var ErrNotFound = errors.New("author not found")
