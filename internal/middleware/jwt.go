package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/markbook/internal/model"
	appErr "github.com/xxxsen/markbook/internal/pkg/errors"
	"github.com/xxxsen/markbook/internal/pkg/response"
)

type Authorizer interface {
	Authorize(ctx context.Context, token string) (model.Identity, error)
}

// IdentityHandler is a gin handler that receives the authenticated caller.
type IdentityHandler func(c *gin.Context, identity model.Identity)

// JWTAuth wraps identity handlers with bearer token authorization. Requests
// without a valid token get 401 and never reach the wrapped handler.
func JWTAuth(auth Authorizer) func(IdentityHandler) gin.HandlerFunc {
	return func(next IdentityHandler) gin.HandlerFunc {
		return func(c *gin.Context) {
			token, ok := BearerToken(c.GetHeader("Authorization"))
			if !ok {
				response.Error(c, http.StatusUnauthorized, "unauthorized", "missing or malformed authorization")
				c.Abort()
				return
			}
			identity, err := auth.Authorize(c.Request.Context(), token)
			if err != nil {
				rejectAuthorize(c, err)
				return
			}
			next(c, identity)
		}
	}
}

// rejectAuthorize answers 401 for token and subject failures. Anything else
// is a store failure and surfaces as 500, still without running the handler.
func rejectAuthorize(c *gin.Context, err error) {
	logger := logutil.GetLogger(c.Request.Context()).With(
		zap.String("request_id", c.GetString(ContextRequestIDKey)),
		zap.String("path", c.Request.URL.Path),
	)
	if errors.Is(err, appErr.ErrUnauthorized) {
		logger.Warn("authorize request failed", zap.Error(err))
		response.Error(c, http.StatusUnauthorized, "unauthorized", "unauthorized")
	} else {
		logger.Error("authorize request errored", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "internal", "internal error")
	}
	c.Abort()
}

// BearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
