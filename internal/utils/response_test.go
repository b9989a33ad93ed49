// internal/utils/response_test.go
package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/thenielthevis/foodever-backend/internal/apperrors"
)

func recordServiceError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ServiceErrorResponse(c, err)
	return w
}

func TestServiceErrorResponseStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperrors.NewValidation("quantity must be at least 1"), http.StatusBadRequest},
		{apperrors.NewNotFound("product"), http.StatusNotFound},
		{apperrors.NewAuthorization("not the review owner"), http.StatusForbidden},
		{apperrors.NewConflict("email already registered"), http.StatusConflict},
		{apperrors.NewDependency("object storage", errors.New("timeout")), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := recordServiceError(tc.err)
		assert.Equal(t, tc.code, w.Code, "error %v", tc.err)
		assert.Contains(t, w.Body.String(), `"success":false`)
	}
}
