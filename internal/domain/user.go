package domain

import "time"

// User represents an account of the system. PasswordHash is only populated on
// records read from the user store and must be stripped before the user leaves
// the service layer.
type User struct {
	Username     string
	Name         string
	LastName     string
	Email        string
	BirthDate    *time.Time
	Disabled     bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active reports whether the account has not been soft-deleted.
func (u *User) Active() bool {
	return u != nil && !u.Disabled
}

// UserUpdate carries the mutable profile fields. Nil fields are left untouched.
type UserUpdate struct {
	Name         *string
	LastName     *string
	Email        *string
	BirthDate    *time.Time
	PasswordHash *string
}

// Empty reports whether the update changes nothing.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.LastName == nil && u.Email == nil && u.BirthDate == nil && u.PasswordHash == nil
}

// Sanitize returns a copy of the user without its password hash.
func (u *User) Sanitize() *User {
	if u == nil {
		return nil
	}
	clean := *u
	clean.PasswordHash = ""
	if u.BirthDate != nil {
		birth := *u.BirthDate
		clean.BirthDate = &birth
	}
	return &clean
}
