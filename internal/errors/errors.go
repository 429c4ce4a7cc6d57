package errors

// Error codes shared between the services and the HTTP layer.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeOperationFailure = "OPERATION_FAILURE"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeUnavailable      = "UNAVAILABLE"
)

// DomainError is an error with a stable machine-readable code.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on code so sentinels like ErrValidation work with errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is checks. Concrete errors carry their own message.
var (
	ErrValidation = &DomainError{
		Code:    CodeValidation,
		Message: "validation error",
	}
	ErrOperationFailure = &DomainError{
		Code:    CodeOperationFailure,
		Message: "operation failure",
	}
)

// Code returns the code of the first DomainError in err's chain, or "".
func Code(err error) string {
	for err != nil {
		if de, ok := err.(*DomainError); ok {
			return de.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
