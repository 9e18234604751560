package handler

import (
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/markbook/internal/model"
	appErr "github.com/xxxsen/markbook/internal/pkg/errors"
	"github.com/xxxsen/markbook/internal/service"
)

const (
	maxEmailLength    = 254
	maxPasswordLength = 1024
	maxNameLength     = 128
	maxTitleLength    = 512
	maxTextLength     = 4096
)

type credentialsRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type profilePatchRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type bookmarkRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
}

type credentials struct {
	Email    string
	Password string
}

// bindBody decodes the JSON body; a decode failure is reported as a body
// level field error.
func bindBody(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		verr := &appErr.ValidationError{}
		verr.Add("body", "must be a JSON object with the documented fields")
		return verr
	}
	return nil
}

func parseCredentials(c *gin.Context) (credentials, error) {
	var req credentialsRequest
	if err := bindBody(c, &req); err != nil {
		return credentials{}, err
	}
	verr := &appErr.ValidationError{}
	email := checkEmail(verr, "email", req.Email, true)
	// passwords are taken verbatim, surrounding spaces included
	var pw string
	switch {
	case req.Password == nil || *req.Password == "":
		verr.Add("password", "is required")
	case len(*req.Password) > maxPasswordLength:
		verr.Add("password", "is too long")
	default:
		pw = *req.Password
	}
	if !verr.Empty() {
		return credentials{}, verr
	}
	return credentials{Email: email, Password: pw}, nil
}

func parseProfilePatch(c *gin.Context) (model.UserPatch, error) {
	var req profilePatchRequest
	if err := bindBody(c, &req); err != nil {
		return model.UserPatch{}, err
	}
	verr := &appErr.ValidationError{}
	var patch model.UserPatch
	if req.Email != nil {
		email := checkEmail(verr, "email", req.Email, true)
		patch.Email = &email
	}
	patch.FirstName = checkText(verr, "firstName", req.FirstName, false, maxNameLength)
	patch.LastName = checkText(verr, "lastName", req.LastName, false, maxNameLength)
	if !verr.Empty() {
		return model.UserPatch{}, verr
	}
	return patch, nil
}

func parseBookmarkInput(c *gin.Context) (service.BookmarkCreateInput, error) {
	var req bookmarkRequest
	if err := bindBody(c, &req); err != nil {
		return service.BookmarkCreateInput{}, err
	}
	verr := &appErr.ValidationError{}
	if req.Title == nil {
		verr.Add("title", "is required")
	}
	if req.Link == nil {
		verr.Add("link", "is required")
	}
	title := checkText(verr, "title", req.Title, true, maxTitleLength)
	desc := checkText(verr, "description", req.Description, false, maxTextLength)
	link := checkLink(verr, "link", req.Link)
	if !verr.Empty() {
		return service.BookmarkCreateInput{}, verr
	}
	input := service.BookmarkCreateInput{Title: *title, Link: *link}
	if desc != nil {
		input.Description = *desc
	}
	return input, nil
}

func parseBookmarkPatch(c *gin.Context) (model.BookmarkPatch, error) {
	var req bookmarkRequest
	if err := bindBody(c, &req); err != nil {
		return model.BookmarkPatch{}, err
	}
	verr := &appErr.ValidationError{}
	patch := model.BookmarkPatch{
		Title:       checkText(verr, "title", req.Title, true, maxTitleLength),
		Description: checkText(verr, "description", req.Description, false, maxTextLength),
		Link:        checkLink(verr, "link", req.Link),
	}
	if !verr.Empty() {
		return model.BookmarkPatch{}, verr
	}
	return patch, nil
}

func checkEmail(verr *appErr.ValidationError, field string, value *string, required bool) string {
	if value == nil {
		if required {
			verr.Add(field, "is required")
		}
		return ""
	}
	email := strings.TrimSpace(*value)
	if email == "" {
		verr.Add(field, "is required")
		return ""
	}
	if len(email) > maxEmailLength {
		verr.Add(field, "is too long")
		return ""
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		verr.Add(field, "must be a valid email address")
		return ""
	}
	return email
}

// checkText validates an optional string field. A nil value stays nil; a
// value that is blank after trimming is rejected when nonEmpty is set. The
// value itself is kept exactly as sent.
func checkText(verr *appErr.ValidationError, field string, value *string, nonEmpty bool, maxLen int) *string {
	if value == nil {
		return nil
	}
	if nonEmpty && strings.TrimSpace(*value) == "" {
		verr.Add(field, "must not be empty")
		return nil
	}
	if len(*value) > maxLen {
		verr.Add(field, "is too long")
		return nil
	}
	text := *value
	return &text
}

// checkLink only requires a non-blank string; links are free-form.
func checkLink(verr *appErr.ValidationError, field string, value *string) *string {
	return checkText(verr, field, value, true, maxTextLength)
}
