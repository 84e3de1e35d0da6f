package user

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserEmailExists = errors.New("email is already registered")
	ErrUserPhoneExists = errors.New("phone number is already registered")
	ErrUserInactive    = errors.New("user account is inactive")
)
