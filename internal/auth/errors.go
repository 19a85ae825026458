package auth

import "errors"

var (
	// ErrInvalidCredentials indicates a wrong username or password at login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers malformed, tampered and expired tokens as well as
	// tokens whose subject no longer exists.
	ErrInvalidToken = errors.New("could not validate credentials")
	// ErrAccountInactive is returned for a valid session on a disabled account.
	ErrAccountInactive = errors.New("inactive user")
	// ErrBackendUnavailable wraps failures of the user directory itself.
	ErrBackendUnavailable = errors.New("user directory unavailable")
)

// Rejection reasons reported by RejectionReason.
const (
	ReasonCredentialsInvalid = "credentials_invalid"
	ReasonAccountInactive    = "account_inactive"
	ReasonBackendUnavailable = "backend_unavailable"
)

// RejectionReason maps an error returned by Login or RequireSession to a stable
// label. It returns an empty string for nil and for unknown errors.
func RejectionReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return ReasonCredentialsInvalid
	case errors.Is(err, ErrAccountInactive):
		return ReasonAccountInactive
	case errors.Is(err, ErrBackendUnavailable):
		return ReasonBackendUnavailable
	default:
		return ""
	}
}
