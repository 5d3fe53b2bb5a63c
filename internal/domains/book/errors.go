package book

import "errors"

var (
	ErrNotFound         = errors.New("book not found")
	ErrDuplicateISBN    = errors.New("book with this isbn already exists")
	ErrInvalidReference = errors.New("referenced publisher does not exist")
)
