package readingstatus

import "errors"

var (
	ErrNotFound         = errors.New("reading status not found")
	ErrNotOwned         = errors.New("reading status does not belong to the current user")
	ErrInvalidReference = errors.New("referenced book or user does not exist")
)
