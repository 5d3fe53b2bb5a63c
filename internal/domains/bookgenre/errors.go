package bookgenre

import "errors"

var (
	ErrNotFound         = errors.New("book-genre link not found")
	ErrDuplicateLink    = errors.New("this genre is already linked to the book")
	ErrInvalidReference = errors.New("referenced book or genre does not exist")
)
