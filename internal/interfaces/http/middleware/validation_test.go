package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intakePayload struct {
	Source   string `json:"source" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

func TestHandleValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":-1}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var p intakePayload
	err := c.ShouldBindJSON(&p)
	require.Error(t, err)

	HandleValidationError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "ERR_VALIDATION")
	assert.Contains(t, body, `"field":"source"`)
	assert.Contains(t, body, "This field is required")
	assert.Contains(t, body, `"field":"quantity"`)
	assert.Contains(t, body, "Must be greater than 0")
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(errors.New("unexpected EOF"), "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, "ERR_BAD_REQUEST", resp.Error.Code)
	assert.Equal(t, "unexpected EOF", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Empty(t, resp.Error.Details)
}
