package card

import (
	apperrors "cardkeeper/internal/errors"
)

// ValidationError reports input the store refuses before reaching the backend.
func ValidationError(message string) error {
	return &apperrors.DomainError{
		Code:    apperrors.CodeValidation,
		Message: message,
	}
}

// OperationFailure wraps any other failure of an operation. The cause's message is kept
// verbatim; an empty message falls back to the kind's default.
func OperationFailure(kind Kind, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if msg == "" {
		msg = kind.defaultMessage()
	}
	return &apperrors.DomainError{
		Code:    apperrors.CodeOperationFailure,
		Message: msg,
		Err:     cause,
	}
}

// asFailure leaves domain errors untouched and wraps everything else.
func asFailure(kind Kind, err error) error {
	if apperrors.Code(err) != "" {
		return err
	}
	return OperationFailure(kind, err)
}
