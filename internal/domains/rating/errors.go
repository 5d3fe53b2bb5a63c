package rating

import "errors"

var (
	ErrNotFound         = errors.New("rating not found")
	ErrNotOwned         = errors.New("rating does not belong to the current user")
	ErrInvalidReference = errors.New("referenced book or user does not exist")
)
