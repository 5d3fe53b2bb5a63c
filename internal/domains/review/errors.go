package review

import "errors"

var (
	ErrNotFound         = errors.New("review not found")
	ErrNotOwned         = errors.New("review does not belong to the current user")
	ErrInvalidReference = errors.New("referenced book or user does not exist")
)
