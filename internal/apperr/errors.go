package apperr

// ValidationError reports input rejected before it reached a store, such
// as a malformed fixture file. Field is the path of the offending input
// when one is known, e.g. "articles[2].title".
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + " " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// NewFieldValidation rejects a single input field; msg reads after the
// field path ("is required").
func NewFieldValidation(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}
