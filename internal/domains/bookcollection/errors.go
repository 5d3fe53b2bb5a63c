package bookcollection

import "errors"

var (
	ErrNotFound         = errors.New("book-collection link not found")
	ErrNotOwned         = errors.New("collection does not belong to the current user")
	ErrDuplicateLink    = errors.New("this book is already in the collection")
	ErrInvalidReference = errors.New("referenced book or collection does not exist")
)
