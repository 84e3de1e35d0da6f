package auth

import "errors"

var (
	ErrUnauthorized               = errors.New("unauthorized")
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrInvalidToken               = errors.New("invalid or expired token")
	ErrTokenRevoked               = errors.New("token has been revoked")
	ErrRefreshTokenRevoked        = errors.New("refresh token has been revoked")
	ErrRefreshTokenCookieNotFound = errors.New("refresh token not provided")
	ErrGoogleAccountNotRegistered = errors.New("no account is registered for this google email")
	ErrGoogleEmailNotVerified     = errors.New("google email is not verified")
	ErrGoogleAccessDeniedByUser   = errors.New("google access denied by user")
	ErrStateMismatch              = errors.New("oauth state mismatch")
)
