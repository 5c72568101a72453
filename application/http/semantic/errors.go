package semantic

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrValidation reports a malformed argument.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidOperation reports a call that the current state of the object forbids.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrObjectDisposed reports use after Close.
	// errors.Is(ErrObjectDisposed, ErrInvalidOperation) holds.
	ErrObjectDisposed error = disposedError{}
)

type disposedError struct{}

func (disposedError) Error() string { return "cannot access a disposed object" }

func (disposedError) Is(target error) bool { return target == ErrInvalidOperation }

// RequestError is returned by an explicit success check on a response.
type RequestError struct {
	msg string

	StatusCode StatusCode
	HasStatus  bool
}

func NewRequestError(msg string, code StatusCode) *RequestError {
	return &RequestError{msg: msg, StatusCode: code, HasStatus: true}
}

func (e *RequestError) Error() string {
	if e.msg != "" {
		return e.msg
	}

	msg := "http request failed"
	if e.HasStatus {
		msg += fmt.Sprintf(" with status code '%d'", int(e.StatusCode))
	}
	return msg
}
