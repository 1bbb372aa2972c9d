package service

import "errors"

// Service errors
var (
	ErrEmailTaken       = errors.New("email already taken")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrNotOwner         = errors.New("caller does not own this resource")
)

// ValidationError reports the first violated field of a request. Validation
// stops at the first violation so the surfaced message always names a single
// field, matching the API's error contract.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
