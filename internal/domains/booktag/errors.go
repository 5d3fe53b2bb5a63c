package booktag

import "errors"

var (
	ErrNotFound         = errors.New("book-tag link not found")
	ErrDuplicateLink    = errors.New("this tag is already linked to the book")
	ErrInvalidReference = errors.New("referenced book or tag does not exist")
)
