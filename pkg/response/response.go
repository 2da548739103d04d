package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-auth-service/pkg/validation"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

type APIResponse[T any] struct {
	Status    int                     `json:"status"`
	Timestamp time.Time               `json:"timestamp"`
	RequestID string                  `json:"request_id"`
	Success   bool                    `json:"success"`
	Message   string                  `json:"message"`
	Errors    []validation.FieldError `json:"errors,omitempty"`
	Data      T                       `json:"data,omitempty"`
}

// Success writes a success envelope with data.
func Success[T any](ctx *gin.Context, status int, data T, message string) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	body := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString(RequestIDKey),
		Success:   true,
		Message:   message,
		Data:      data,
	}
	ctx.JSON(status, body)
	return body
}

// Error writes a failure envelope and aborts the handler chain.
func Error(ctx *gin.Context, status int, message string, errs []validation.FieldError) APIResponse[any] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := APIResponse[any]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString(RequestIDKey),
		Success:   false,
		Message:   message,
		Errors:    errs,
	}
	ctx.AbortWithStatusJSON(status, body)
	return body
}
