package validation

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name     string
		creds    Credentials
		wantMsgs []string
	}{
		{
			name:  "valid credentials",
			creds: Credentials{UserName: "alice", Password: "abc123"},
		},
		{
			name:     "user name too short",
			creds:    Credentials{UserName: "ab", Password: "abc123"},
			wantMsgs: []string{"Username must be at least 3 chars long"},
		},
		{
			name:     "password without digit",
			creds:    Credentials{UserName: "alice", Password: "abcdef"},
			wantMsgs: []string{"Password must contain a number"},
		},
		{
			name:     "password of digits only",
			creds:    Credentials{UserName: "alice", Password: "123456"},
			wantMsgs: []string{"Password must contain a char"},
		},
		{
			name:     "short password without digit",
			creds:    Credentials{UserName: "alice", Password: "abc"},
			wantMsgs: []string{"Password must be at least 6 chars long", "Password must contain a number"},
		},
		{
			name:  "everything empty",
			creds: Credentials{},
			wantMsgs: []string{
				"Username must be at least 3 chars long",
				"Password must be at least 6 chars long",
				"Password must contain a number",
				"Password must contain a char",
			},
		},
		{
			name:  "punctuation counts as a char",
			creds: Credentials{UserName: "bob", Password: "12345!"},
		},
		{
			name:  "multibyte user name of three runes",
			creds: Credentials{UserName: "äöü", Password: "abc123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegister(tt.creds)
			if len(tt.wantMsgs) == 0 {
				assert.Empty(t, errs)
				return
			}
			var got []string
			for _, e := range errs {
				got = append(got, e.Msg)
			}
			assert.Equal(t, tt.wantMsgs, got)
			assert.Equal(t, tt.wantMsgs[0], FirstMessage(errs))
		})
	}
}

func TestValidateRegisterFields(t *testing.T) {
	errs := ValidateRegister(Credentials{UserName: "x", Password: "123456"})
	if assert.Len(t, errs, 2) {
		assert.Equal(t, "userName", errs[0].Field)
		assert.Equal(t, "password", errs[1].Field)
	}
}

func TestValidateLogin(t *testing.T) {
	assert.Empty(t, ValidateLogin(Credentials{UserName: "a", Password: "b"}))

	errs := ValidateLogin(Credentials{UserName: "", Password: "secret1"})
	assert.Equal(t, []FieldError{{Field: "userName", Msg: "Enter correct username"}}, errs)

	errs = ValidateLogin(Credentials{UserName: "alice", Password: ""})
	assert.Equal(t, []FieldError{{Field: "password", Msg: "Enter correct password"}}, errs)

	errs = ValidateLogin(Credentials{})
	assert.Len(t, errs, 2)
	assert.Equal(t, "Enter correct username", FirstMessage(errs))
}

func TestFirstMessageEmpty(t *testing.T) {
	assert.Equal(t, "", FirstMessage(nil))
}

func TestToDetails(t *testing.T) {
	var target Credentials
	syntaxErr := json.Unmarshal([]byte(`{"userName":`), &target)
	typeErr := json.Unmarshal([]byte(`{"userName":123}`), &target)

	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, []FieldError{{Field: "payload", Msg: "invalid json"}}, ToDetails(syntaxErr))
	assert.Equal(t, []FieldError{{Field: "payload", Msg: "invalid json"}}, ToDetails(typeErr))
	assert.Equal(t, []FieldError{{Field: "payload", Msg: "request body is required"}}, ToDetails(io.EOF))
	assert.Equal(t, []FieldError{{Field: "payload", Msg: "invalid payload"}}, ToDetails(errors.New("boom")))
}
