package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sundacoder/ZedID/internal/errors"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newTestContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{
			name:       "NotFound",
			err:        apperrors.Wrap(apperrors.ErrNotFound, "identity not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
			wantError:  "identity not found",
		},
		{
			name:       "Conflict",
			err:        apperrors.Wrap(apperrors.ErrConflict, "policy failed validation"),
			wantStatus: http.StatusConflict,
			wantCode:   "conflict",
		},
		{
			name:       "InvalidInput",
			err:        fmt.Errorf("%w: missing scheme", apperrors.Wrap(apperrors.ErrInvalidInput, "invalid SPIFFE ID")),
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_input",
			wantError:  "invalid SPIFFE ID: missing scheme",
		},
		{
			name:       "Unauthorized",
			err:        apperrors.Wrap(apperrors.ErrUnauthorized, "token validation failed"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{
			name:       "Forbidden",
			err:        apperrors.Wrap(apperrors.ErrForbidden, "identity is inactive"),
			wantStatus: http.StatusForbidden,
			wantCode:   "forbidden",
		},
		{
			name:       "InternalSurfaced",
			err:        apperrors.Wrap(apperrors.ErrInternal, "model routing failed: status 502"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
			wantError:  "model routing failed: status 502",
		},
		{
			name:       "UnknownHidden",
			err:        errors.New("dial tcp 10.0.0.1: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
			wantError:  "an internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext("/")
			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.wantStatus, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body.Error)
			}
		})
	}
}

func TestHandleErrorGin_Nil(t *testing.T) {
	c, w := newTestContext("/")
	HandleErrorGin(c, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext("/")
	HandleBadRequestGin(c, errors.New("invalid identity id"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid identity id","code":"bad_request"}`, w.Body.String())
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext("/")
	HandleValidationErrorGin(c, errors.New("name: cannot be blank."), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"name: cannot be blank.","code":"validation_error"}`, w.Body.String())
}
