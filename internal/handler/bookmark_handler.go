package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/markbook/internal/model"
	appErr "github.com/xxxsen/markbook/internal/pkg/errors"
	"github.com/xxxsen/markbook/internal/pkg/response"
	"github.com/xxxsen/markbook/internal/service"
)

type BookmarkHandler struct {
	bookmarks *service.BookmarkService
}

func NewBookmarkHandler(bookmarks *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

func (h *BookmarkHandler) Create(c *gin.Context, identity model.Identity) {
	input, err := parseBookmarkInput(c)
	if err != nil {
		handleError(c, err)
		return
	}
	b, err := h.bookmarks.Create(c.Request.Context(), identity.ID, input)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, b)
}

func (h *BookmarkHandler) List(c *gin.Context, identity model.Identity) {
	items, err := h.bookmarks.List(c.Request.Context(), identity.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Get answers with a one element array to keep the list response shape.
func (h *BookmarkHandler) Get(c *gin.Context, identity model.Identity) {
	id, ok := bookmarkID(c)
	if !ok {
		handleError(c, appErr.ErrNotFound)
		return
	}
	b, err := h.bookmarks.Get(c.Request.Context(), identity.ID, id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, []*model.Bookmark{b})
}

func (h *BookmarkHandler) Update(c *gin.Context, identity model.Identity) {
	id, ok := bookmarkID(c)
	if !ok {
		handleError(c, appErr.ErrNotFound)
		return
	}
	patch, err := parseBookmarkPatch(c)
	if err != nil {
		handleError(c, err)
		return
	}
	b, err := h.bookmarks.Update(c.Request.Context(), identity.ID, id, patch)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, b)
}

func (h *BookmarkHandler) Delete(c *gin.Context, identity model.Identity) {
	id, ok := bookmarkID(c)
	if !ok {
		handleError(c, appErr.ErrNotFound)
		return
	}
	if err := h.bookmarks.Delete(c.Request.Context(), identity.ID, id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
