package user

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already registered")
	ErrUserInactive   = errors.New("user account is deactivated")
	ErrInvalidRole    = errors.New("invalid role")
)
