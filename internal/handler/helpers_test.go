package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appErr "github.com/xxxsen/markbook/internal/pkg/errors"
)

func TestHandleError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verr := &appErr.ValidationError{}
	verr.Add("title", "is required")

	tests := []struct {
		err    error
		status int
		code   string
	}{
		{verr, http.StatusBadRequest, "invalid"},
		{appErr.ErrInvalid, http.StatusBadRequest, "invalid"},
		{fmt.Errorf("%w: password mismatch", appErr.ErrInvalidCredentials), http.StatusForbidden, "invalid_credentials"},
		{fmt.Errorf("%w: expired", appErr.ErrUnauthorized), http.StatusUnauthorized, "unauthorized"},
		{appErr.ErrNotFound, http.StatusNotFound, "not_found"},
		{appErr.ErrConflict, http.StatusForbidden, "credentials_taken"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
		handleError(c, tt.err)
		require.Equal(t, tt.status, rec.Code, tt.err.Error())
		require.Contains(t, rec.Body.String(), `"code":"`+tt.code+`"`)
		require.NotContains(t, rec.Body.String(), "mismatch")
		require.NotContains(t, rec.Body.String(), "connection refused")
	}
}
