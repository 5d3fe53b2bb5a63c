package comment

import "errors"

var (
	ErrNotFound         = errors.New("comment not found")
	ErrNotOwned         = errors.New("comment does not belong to the current user")
	ErrInvalidReference = errors.New("referenced review or user does not exist")
)
