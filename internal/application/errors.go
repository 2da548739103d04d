package application

import (
	"errors"

	"github.com/oksasatya/go-auth-service/pkg/validation"
)

// Client-facing messages.
const (
	MsgRegistered         = "user successfully created"
	MsgUserExists         = "username already exists"
	MsgUserNotFound       = "user does not exist"
	MsgInvalidPassword    = "invalid password"
	MsgInvalidCredentials = "invalid username or password"
	MsgPasswordTooLong    = "Password must be at most 72 bytes long"
	MsgInternal           = "something went wrong"
)

// Kind classifies an Error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	default:
		return "internal"
	}
}

// Error is the only error type returned by Service. Message is safe to show
// to clients; Err is the underlying cause and is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Fields  []validation.FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func ValidationError(fields []validation.FieldError) *Error {
	return &Error{Kind: KindValidation, Message: validation.FirstMessage(fields), Fields: fields}
}

func ConflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func AuthError(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

func InternalError(cause error) *Error {
	return &Error{Kind: KindInternal, Message: MsgInternal, Err: cause}
}

// AsError extracts an *Error from err. Anything else becomes an internal error.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return InternalError(err)
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
