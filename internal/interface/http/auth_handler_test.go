package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-auth-service/internal/application"
	"github.com/oksasatya/go-auth-service/internal/interface/middleware"
	"github.com/oksasatya/go-auth-service/pkg/validation"
)

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) Register(ctx context.Context, userName, password string) (*application.RegisterResult, error) {
	args := m.Called(ctx, userName, password)
	res, _ := args.Get(0).(*application.RegisterResult)
	return res, args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, userName, password string) (*application.LoginResult, error) {
	args := m.Called(ctx, userName, password)
	res, _ := args.Get(0).(*application.LoginResult)
	return res, args.Error(1)
}

type envelope struct {
	Status    int                     `json:"status"`
	Success   bool                    `json:"success"`
	Message   string                  `json:"message"`
	RequestID string                  `json:"request_id"`
	Errors    []validation.FieldError `json:"errors"`
	Data      json.RawMessage         `json:"data"`
}

func newRouter(svc Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc, nil)
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", func(c *gin.Context) { c.Set(middleware.CtxUserIDKey, "u-1") }, h.Me)
	return r
}

func call(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		result     *application.RegisterResult
		err        error
		wantStatus int
		wantMsg    string
		wantErrors []validation.FieldError
	}{
		{
			name:       "created",
			body:       `{"userName":"alice","password":"abc123"}`,
			result:     &application.RegisterResult{Message: application.MsgRegistered, UserID: "u-1"},
			wantStatus: http.StatusCreated,
			wantMsg:    application.MsgRegistered,
		},
		{
			name:       "conflict",
			body:       `{"userName":"alice","password":"abc123"}`,
			err:        application.ConflictError(application.MsgUserExists),
			wantStatus: http.StatusBadRequest,
			wantMsg:    application.MsgUserExists,
		},
		{
			name: "validation",
			body: `{"userName":"al","password":"abc"}`,
			err: application.ValidationError([]validation.FieldError{
				{Field: "userName", Msg: "Username must be at least 3 chars long"},
				{Field: "password", Msg: "Password must be at least 6 chars long"},
			}),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Username must be at least 3 chars long",
			wantErrors: []validation.FieldError{
				{Field: "userName", Msg: "Username must be at least 3 chars long"},
				{Field: "password", Msg: "Password must be at least 6 chars long"},
			},
		},
		{
			name:       "internal",
			body:       `{"userName":"alice","password":"abc123"}`,
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    application.MsgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuth{}
			svc.On("Register", mock.Anything, mock.Anything, mock.Anything).Return(tt.result, tt.err)

			w, env := call(t, newRouter(svc), http.MethodPost, "/auth/register", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus, env.Status)
			assert.Equal(t, tt.wantMsg, env.Message)
			assert.Equal(t, tt.err == nil, env.Success)
			assert.Equal(t, tt.wantErrors, env.Errors)
			assert.NotEmpty(t, env.RequestID)
			assert.NotContains(t, w.Body.String(), "connection refused")
			assert.NotContains(t, w.Body.String(), "abc123")
		})
	}
}

func TestRegisterHandlerMalformedJSON(t *testing.T) {
	svc := &mockAuth{}
	r := newRouter(svc)

	w, env := call(t, r, http.MethodPost, "/auth/register", `{"userName":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid json", env.Message)
	assert.Equal(t, []validation.FieldError{{Field: "payload", Msg: "invalid json"}}, env.Errors)

	w, env = call(t, r, http.MethodPost, "/auth/register", `{"userName":42,"password":"abc123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid json", env.Message)

	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginHandler(t *testing.T) {
	exp := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	svc := &mockAuth{}
	svc.On("Login", mock.Anything, "alice", "abc123").
		Return(&application.LoginResult{Token: "tok", UserID: "u-1", ExpiresAt: exp}, nil)
	svc.On("Login", mock.Anything, "alice", "wrong1").
		Return(nil, application.AuthError(application.MsgInvalidPassword))
	r := newRouter(svc)

	w, env := call(t, r, http.MethodPost, "/auth/login", `{"userName":"alice","password":"abc123"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	var data loginResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, loginResponse{Token: "tok", UserID: "u-1", ExpiresAt: exp}, data)

	w, env = call(t, r, http.MethodPost, "/auth/login", `{"userName":"alice","password":"wrong1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, application.MsgInvalidPassword, env.Message)
	assert.False(t, env.Success)
}

func TestMeHandler(t *testing.T) {
	w, env := call(t, newRouter(&mockAuth{}), http.MethodGet, "/auth/me", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"u-1"}`, string(env.Data))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(application.KindValidation))
	assert.Equal(t, http.StatusBadRequest, StatusFor(application.KindConflict))
	assert.Equal(t, http.StatusBadRequest, StatusFor(application.KindAuth))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(application.KindInternal))
}

