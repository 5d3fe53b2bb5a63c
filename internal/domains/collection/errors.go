package collection

import "errors"

var (
	ErrNotFound         = errors.New("collection not found")
	ErrNotOwned         = errors.New("collection does not belong to the current user")
	ErrInvalidReference = errors.New("referenced user does not exist")
)
