package tag

import (
	"errors"
	"regexp"
)

var (
	ErrNotFound      = errors.New("tag not found")
	ErrDuplicateSlug = errors.New("a tag with this slug already exists")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
