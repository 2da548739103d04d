package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-service/internal/application"
	"github.com/oksasatya/go-auth-service/internal/interface/middleware"
	"github.com/oksasatya/go-auth-service/pkg/helpers"
	"github.com/oksasatya/go-auth-service/pkg/response"
	"github.com/oksasatya/go-auth-service/pkg/validation"
)

// Authenticator is the use-case surface the handler drives.
type Authenticator interface {
	Register(ctx context.Context, userName, password string) (*application.RegisterResult, error)
	Login(ctx context.Context, userName, password string) (*application.LoginResult, error)
}

type AuthHandler struct {
	Svc    Authenticator
	Logger *logrus.Logger
}

func NewAuthHandler(svc Authenticator, logger *logrus.Logger) *AuthHandler {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &AuthHandler{Svc: svc, Logger: logger}
}

type credentialsRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type meResponse struct {
	UserID string `json:"userId"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusCreated, nil, res.Message)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, loginResponse{
		Token:     res.Token,
		UserID:    res.UserID,
		ExpiresAt: res.ExpiresAt,
	}, "login successful")
}

// Me echoes the user id of a valid bearer token. Mounted behind middleware.JWTAuth.
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, meResponse{UserID: c.GetString(middleware.CtxUserIDKey)}, "ok")
}

func (h *AuthHandler) bind(c *gin.Context) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		details := validation.ToDetails(err)
		response.Error(c, http.StatusBadRequest, validation.FirstMessage(details), details)
		return req, false
	}
	return req, true
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(k application.Kind) int {
	switch k {
	case application.KindValidation, application.KindConflict, application.KindAuth:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *AuthHandler) fail(c *gin.Context, err error) {
	appErr := application.AsError(err)
	if appErr.Kind == application.KindInternal {
		helpers.LogError(h.Logger, "request failed", appErr.Err, logrus.Fields{
			"request_id": c.GetString(response.RequestIDKey),
			"path":       c.FullPath(),
		})
	}
	response.Error(c, StatusFor(appErr.Kind), appErr.Message, appErr.Fields)
}
