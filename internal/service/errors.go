package service

import "errors"

var (
	// ErrInvalidInput wraps every validation failure of caller supplied data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserAlreadyExists is returned when attempting to register with an existing username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned when the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserDisabled is returned when mutating an account that was already deleted.
	ErrUserDisabled = errors.New("user has already been deleted")
	// ErrForbidden is returned when a user acts on another user's account.
	ErrForbidden = errors.New("operation not permitted for this user")
	// ErrListNotFound is returned for missing, deleted or foreign supermarket lists.
	ErrListNotFound = errors.New("supermarket list not found")
	// ErrScrapeFailed wraps failures fetching or parsing a receipt page.
	ErrScrapeFailed = errors.New("receipt could not be read")
)
