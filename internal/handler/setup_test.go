package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/markbook/internal/handler"
	"github.com/xxxsen/markbook/internal/pkg/jwt"
	"github.com/xxxsen/markbook/internal/service"
	"github.com/xxxsen/markbook/internal/testutil"
)

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(ctx context.Context) error {
	return p.err
}

type testEnv struct {
	router http.Handler
	users  *testutil.MemUserStore
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer, err := jwt.NewIssuer([]byte("handler-test-secret-0123456789"), jwt.TokenTTL)
	require.NoError(t, err)
	users := testutil.NewMemUserStore()
	bookmarks := testutil.NewMemBookmarkStore()
	authService, err := service.NewAuthService(users, issuer)
	require.NoError(t, err)

	router := handler.NewRouter(handler.RouterDeps{
		Auth:       handler.NewAuthHandler(authService),
		Users:      handler.NewUserHandler(service.NewUserService(users)),
		Bookmarks:  handler.NewBookmarkHandler(service.NewBookmarkService(bookmarks)),
		Health:     handler.NewHealthHandler(stubPinger{}),
		Authorizer: authService,
	})
	return &testEnv{router: router, users: users}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		payload, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func (e *testEnv) signup(t *testing.T, email, pw string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/auth/signup", "", map[string]string{"email": email, "password": pw})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var out struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, resp, &out)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func decode(t *testing.T, resp *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), dst), resp.Body.String())
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Fields  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"fields"`
	} `json:"error"`
}

func errorOf(t *testing.T, resp *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	decode(t, resp, &body)
	return body
}

type bookmarkBody struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

type profileBody struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}
