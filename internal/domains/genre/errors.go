package genre

import (
	"errors"
	"regexp"
)

var (
	ErrNotFound      = errors.New("genre not found")
	ErrDuplicateSlug = errors.New("a genre with this slug already exists")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
