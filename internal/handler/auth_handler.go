package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/markbook/internal/pkg/response"
	"github.com/xxxsen/markbook/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	creds, err := parseCredentials(c)
	if err != nil {
		handleError(c, err)
		return
	}
	token, err := h.auth.Signup(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, tokenResponse{AccessToken: token})
}

func (h *AuthHandler) Signin(c *gin.Context) {
	creds, err := parseCredentials(c)
	if err != nil {
		handleError(c, err)
		return
	}
	token, err := h.auth.Signin(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tokenResponse{AccessToken: token})
}
