package bookauthor

import "errors"

var (
	ErrNotFound         = errors.New("book-author link not found")
	ErrDuplicateLink    = errors.New("this author is already linked to the book")
	ErrInvalidReference = errors.New("referenced book or author does not exist")
)
