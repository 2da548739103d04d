package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-auth-service/pkg/validation"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(RequestIDKey, "req-1")
	return c, w
}

func TestSuccess(t *testing.T) {
	c, w := newContext()

	Success(c, http.StatusCreated, map[string]string{"userId": "u-1"}, "created")

	assert.Equal(t, http.StatusCreated, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "created", body["message"])
	assert.Equal(t, "req-1", body["request_id"])
	assert.Equal(t, float64(http.StatusCreated), body["status"])
	assert.Equal(t, map[string]any{"userId": "u-1"}, body["data"])
	assert.NotContains(t, body, "errors")
}

func TestSuccessNilDataOmitted(t *testing.T) {
	c, w := newContext()

	Success[any](c, 0, nil, "ok")

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body, "data")
}

func TestError(t *testing.T) {
	c, w := newContext()

	Error(c, 0, "bad", []validation.FieldError{{Field: "userName", Msg: "bad"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, c.IsAborted())
	var body APIResponse[any]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "bad", body.Message)
	assert.Equal(t, []validation.FieldError{{Field: "userName", Msg: "bad"}}, body.Errors)
}
