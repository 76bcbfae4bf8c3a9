package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odemir/studentbook/internal/app/models/dto"
	"github.com/odemir/studentbook/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, dto.APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	HandleAPIError(c, err)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandleAPIError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"StudentNotFound", apperrors.ErrStudentNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"GradeNotFound", apperrors.ErrGradeNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"InvalidCredentials", apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials},
		{"SessionNotFound", apperrors.ErrSessionNotFound, 401, dto.ErrorCodeSessionNotFound},
		{"TokenExpired", apperrors.ErrTokenExpired, 401, dto.ErrorCodeExpiredToken},
		{"EmailExists", apperrors.ErrEmailAlreadyExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{"StoreTimeout", apperrors.ErrStoreTimeout, 504, dto.ErrorCodeStoreError},
		{"StoreFailure", apperrors.ErrStoreFailure, 502, dto.ErrorCodeStoreError},
		{"Unknown", errors.New("boom"), 500, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := handleError(t, tc.err)

			assert.Equal(t, tc.wantStatus, status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.wantCode, body.Error.Code)
		})
	}
}

func TestHandleAPIErrorKeepsStoreMessage(t *testing.T) {
	err := apperrors.NewStoreError(errors.New("connection reset by peer"))

	status, body := handleError(t, err)

	assert.Equal(t, 502, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "connection reset by peer", body.Error.Message)
}
