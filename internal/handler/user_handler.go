package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/markbook/internal/model"
	"github.com/xxxsen/markbook/internal/pkg/response"
	"github.com/xxxsen/markbook/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Me(c *gin.Context, identity model.Identity) {
	response.JSON(c, http.StatusOK, identity)
}

func (h *UserHandler) Edit(c *gin.Context, identity model.Identity) {
	patch, err := parseProfilePatch(c)
	if err != nil {
		handleError(c, err)
		return
	}
	profile, err := h.users.Edit(c.Request.Context(), identity.ID, patch)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}
