package validation

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
)

// Credentials is a user name / password pair submitted by a client.
// The password is plaintext and must not outlive the request.
type Credentials struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field string `json:"field,omitempty"`
	Msg   string `json:"msg"`
}

// rule checks one field against one validator tag.
type rule struct {
	field string
	tag   string
	msg   string
	value func(Credentials) string
}

func userName(c Credentials) string { return c.UserName }
func password(c Credentials) string { return c.Password }

// Rules run in order and every failing rule is reported,
// so a short password without a digit yields two errors.
var registerRules = []rule{
	{field: "userName", tag: "min=3", msg: "Username must be at least 3 chars long", value: userName},
	{field: "password", tag: "min=6", msg: "Password must be at least 6 chars long", value: password},
	{field: "password", tag: "containsany=0123456789", msg: "Password must contain a number", value: password},
	{field: "password", tag: "nondigit", msg: "Password must contain a char", value: password},
}

var loginRules = []rule{
	{field: "userName", tag: "required", msg: "Enter correct username", value: userName},
	{field: "password", tag: "required", msg: "Enter correct password", value: password},
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("nondigit", hasNonDigit); err != nil {
		panic(err)
	}
	return v
}

// hasNonDigit reports whether the field holds at least one rune outside 0-9.
func hasNonDigit(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r < '0' || r > '9' {
			return true
		}
	}
	return false
}

// ValidateRegister applies the registration rules: user name of at least
// 3 characters, password of at least 6 characters with at least one digit
// and one non-digit. It returns nil when the credentials are acceptable.
func ValidateRegister(c Credentials) []FieldError {
	return run(registerRules, c)
}

// ValidateLogin only checks that both fields are present.
func ValidateLogin(c Credentials) []FieldError {
	return run(loginRules, c)
}

func run(rules []rule, c Credentials) []FieldError {
	var out []FieldError
	for _, r := range rules {
		if err := validate.Var(r.value(c), r.tag); err != nil {
			out = append(out, FieldError{Field: r.field, Msg: r.msg})
		}
	}
	return out
}

// FirstMessage returns the message of the first error, or "" for none.
func FirstMessage(errs []FieldError) string {
	if len(errs) == 0 {
		return ""
	}
	return errs[0].Msg
}

// ToDetails converts request binding errors into field errors suitable
// for an API error body.
func ToDetails(err error) []FieldError {
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return []FieldError{{Field: "payload", Msg: "request body is required"}}
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return []FieldError{{Field: "payload", Msg: "invalid json"}}
	}

	return []FieldError{{Field: "payload", Msg: "invalid payload"}}
}
