package user

import "time"

type User struct {
	ID              string
	Name            string
	Address         string
	Email           string
	Phone           string
	PasswordHash    *string
	OAuthProvider   *string
	OAuthProviderID *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasPassword reports whether the user can sign in with email and password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
