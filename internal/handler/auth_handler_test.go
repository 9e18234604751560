package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthHandlers_SignupAndSignin(t *testing.T) {
	env := setupRouter(t)
	env.signup(t, "a@x.io", "pw1")

	resp := env.do(t, http.MethodPost, "/auth/signin", "", map[string]string{"email": "a@x.io", "password": "pw1"})
	require.Equal(t, http.StatusOK, resp.Code)
	var out struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, resp, &out)
	require.NotEmpty(t, out.AccessToken)

	me := env.do(t, http.MethodGet, "/users/me", out.AccessToken, nil)
	require.Equal(t, http.StatusOK, me.Code)
	require.NotContains(t, me.Body.String(), "argon2")
}

func TestAuthHandlers_DuplicateSignup(t *testing.T) {
	env := setupRouter(t)
	env.signup(t, "a@x.io", "pw1")

	resp := env.do(t, http.MethodPost, "/auth/signup", "", map[string]string{"email": "a@x.io", "password": "different"})
	require.Equal(t, http.StatusForbidden, resp.Code)
	body := errorOf(t, resp)
	require.Equal(t, "credentials_taken", body.Error.Code)
	require.Equal(t, "credentials already in use", body.Error.Message)
}

func TestAuthHandlers_SigninFailuresLookTheSame(t *testing.T) {
	env := setupRouter(t)
	env.signup(t, "a@x.io", "pw1")

	unknown := env.do(t, http.MethodPost, "/auth/signin", "", map[string]string{"email": "nobody@x.io", "password": "pw1"})
	wrong := env.do(t, http.MethodPost, "/auth/signin", "", map[string]string{"email": "a@x.io", "password": "nope"})
	require.Equal(t, http.StatusForbidden, unknown.Code)
	require.Equal(t, unknown.Code, wrong.Code)
	require.JSONEq(t, unknown.Body.String(), wrong.Body.String())
}

func TestAuthHandlers_RejectInvalidBodies(t *testing.T) {
	env := setupRouter(t)
	cases := map[string]struct {
		body   interface{}
		fields []string
	}{
		"malformed json": {body: "{", fields: []string{"body"}},
		"missing fields": {body: map[string]string{}, fields: []string{"email", "password"}},
		"bad email":      {body: map[string]string{"email": "not-an-email", "password": "pw"}, fields: []string{"email"}},
		"display name":   {body: map[string]string{"email": "Ann <a@x.io>", "password": "pw"}, fields: []string{"email"}},
		"empty password": {body: map[string]string{"email": "a@x.io", "password": ""}, fields: []string{"password"}},
		"wrong type":     {body: map[string]interface{}{"email": 1, "password": "pw"}, fields: []string{"body"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			for _, path := range []string{"/auth/signup", "/auth/signin"} {
				resp := env.do(t, http.MethodPost, path, "", tc.body)
				require.Equal(t, http.StatusBadRequest, resp.Code, path)
				body := errorOf(t, resp)
				require.Equal(t, "invalid", body.Error.Code)
				got := make([]string, 0, len(body.Error.Fields))
				for _, f := range body.Error.Fields {
					got = append(got, f.Field)
				}
				require.Equal(t, tc.fields, got)
			}
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupRouter(t)
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users/me"},
		{http.MethodPatch, "/users/edit"},
		{http.MethodPost, "/bookmarks"},
		{http.MethodGet, "/bookmarks"},
		{http.MethodGet, "/bookmarks/5f0c7c5e-4a43-4b54-9a55-0a3e4bb2d3c1"},
		{http.MethodPatch, "/bookmarks/5f0c7c5e-4a43-4b54-9a55-0a3e4bb2d3c1"},
		{http.MethodDelete, "/bookmarks/5f0c7c5e-4a43-4b54-9a55-0a3e4bb2d3c1"},
	}
	for _, r := range routes {
		resp := env.do(t, r.method, r.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.Code, r.path)
		resp = env.do(t, r.method, r.path, "garbage.token.value", nil)
		require.Equal(t, http.StatusUnauthorized, resp.Code, r.path)
	}
}

func TestProtectedRoutes_DeletedUserToken(t *testing.T) {
	env := setupRouter(t)
	token := env.signup(t, "a@x.io", "pw1")
	me := env.do(t, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, me.Code)
	var profile profileBody
	decode(t, me, &profile)

	env.users.Delete(profile.ID)
	resp := env.do(t, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestProtectedRoutes_StoreOutageIsInternal(t *testing.T) {
	env := setupRouter(t)
	token := env.signup(t, "a@x.io", "pw1")

	env.users.FailGetByID(errors.New("dial tcp 127.0.0.1:5432: connection refused"))
	resp := env.do(t, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	require.Equal(t, "internal", errorOf(t, resp).Error.Code)
	require.NotContains(t, resp.Body.String(), "connection refused")

	env.users.FailGetByID(nil)
	resp = env.do(t, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
}
