package user

import (
	"errors"
	"regexp"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateLogin     = errors.New("a user with this login already exists")
	ErrDuplicateEmail     = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrNotActivated       = errors.New("user account is not activated")
)

var loginPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
