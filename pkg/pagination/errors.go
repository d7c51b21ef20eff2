package pagination

import "errors"

var (
	ErrMalformed        = errors.New("cursor is malformed")
	ErrInvalidShape     = errors.New("cursor has an invalid shape")
	ErrUnknownDirection = errors.New("cursor has an unknown direction")

	ErrInvalidLimit  = errors.New("limit must be a positive integer")
	ErrLimitTooLarge = errors.New("limit exceeds maximum")
	ErrEmptyCursor   = errors.New("cursor must not be empty")
	ErrInvalidCursor = errors.New("cursor is not valid")
)

type DecodeErrorKind int

const (
	Malformed DecodeErrorKind = iota + 1
	InvalidShape
	UnknownDirection
)

func (k DecodeErrorKind) sentinel() error {
	switch k {
	case Malformed:
		return ErrMalformed
	case InvalidShape:
		return ErrInvalidShape
	case UnknownDirection:
		return ErrUnknownDirection
	default:
		return nil
	}
}

// DecodeError reports why a cursor token could not be decoded.
// Error never includes the token or decoded key values; the underlying
// cause is only reachable through Unwrap.
type DecodeError struct {
	Kind DecodeErrorKind
	Err  error
}

func (e *DecodeError) Error() string {
	if s := e.Kind.sentinel(); s != nil {
		return s.Error()
	}
	return "cursor could not be decoded"
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

type ValidationCode string

const (
	InvalidLimit  ValidationCode = "invalid_limit"
	LimitTooLarge ValidationCode = "limit_too_large"
	EmptyCursor   ValidationCode = "empty_cursor"
	InvalidCursor ValidationCode = "invalid_cursor"
)

func (c ValidationCode) sentinel() error {
	switch c {
	case InvalidLimit:
		return ErrInvalidLimit
	case LimitTooLarge:
		return ErrLimitTooLarge
	case EmptyCursor:
		return ErrEmptyCursor
	case InvalidCursor:
		return ErrInvalidCursor
	default:
		return nil
	}
}

// ValidationError is returned for rejected cursor or limit parameters.
// Param names the offending query parameter.
type ValidationError struct {
	Code    ValidationCode
	Param   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Is(target error) bool {
	return target != nil && target == e.Code.sentinel()
}
