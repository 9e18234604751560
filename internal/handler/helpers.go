package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/markbook/internal/middleware"
	appErr "github.com/xxxsen/markbook/internal/pkg/errors"
	"github.com/xxxsen/markbook/internal/pkg/response"
)

// handleError maps service errors onto the HTTP error body. Internal causes
// are logged, never returned.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logger := logutil.GetLogger(c.Request.Context()).With(
		zap.String("request_id", c.GetString(middleware.ContextRequestIDKey)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	var verr *appErr.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Invalid(c, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, appErr.ErrInvalid):
		response.Invalid(c, http.StatusBadRequest, nil)
	case errors.Is(err, appErr.ErrInvalidCredentials):
		logger.Warn("signin rejected", zap.Error(err))
		response.Error(c, http.StatusForbidden, "invalid_credentials", "invalid credentials")
	case errors.Is(err, appErr.ErrUnauthorized):
		logger.Warn("request unauthorized", zap.Error(err))
		response.Error(c, http.StatusUnauthorized, "unauthorized", "unauthorized")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, http.StatusForbidden, "credentials_taken", "credentials already in use")
	default:
		logger.Error("request failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "internal", "internal error")
	}
}

// bookmarkID returns the :id path parameter. Ids are UUIDs; anything else
// cannot name a stored bookmark and is reported as not found.
func bookmarkID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}
