package internal

import "errors"

// ErrValidation rejects an operation before any state change or remote call.
type ErrValidation struct {
	Field  string
	ErrStr string
}

func (e ErrValidation) Data() any     { return e.Field }
func (e ErrValidation) Error() string { return e.ErrStr }
func (e ErrValidation) Invalid() bool { return true }

func Invalid(field, msg string) error { return ErrValidation{Field: field, ErrStr: msg} }

// IsNotFound reports whether a remote call failed because the resource is gone.
func IsNotFound(err error) bool {
	var nf interface{ NotFound() bool }
	return errors.As(err, &nf) && nf.NotFound()
}

// IsUnauthorized reports a remote 401.
func IsUnauthorized(err error) bool {
	var ua interface{ Unauthorized() bool }
	return errors.As(err, &ua) && ua.Unauthorized()
}

// Message extracts the text a customer should read for a remote failure.
func Message(err error) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}

	return err.Error()
}
