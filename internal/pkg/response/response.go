package response

import (
	"github.com/gin-gonic/gin"

	appErr "github.com/xxxsen/markbook/internal/pkg/errors"
)

type APIError struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []appErr.FieldError `json:"fields,omitempty"`
}

// JSON writes data as the bare response body.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": APIError{Code: code, Message: message}})
}

func Invalid(c *gin.Context, status int, fields []appErr.FieldError) {
	c.JSON(status, gin.H{"error": APIError{Code: "invalid", Message: "invalid request", Fields: fields}})
}
