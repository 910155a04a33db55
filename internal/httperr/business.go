package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ValidationError names the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func ErrValidation(field, reason string) error {
	return ValidationError{Field: field, Reason: reason}
}

// AuthenticationError marks input whose origin could not be verified.
type AuthenticationError struct {
	Reason string
}

func (e AuthenticationError) Error() string {
	return "authentication failed: " + e.Reason
}
