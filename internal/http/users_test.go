package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	srv := newTestServer(t, false)
	srv.signup(t, "ironman")

	w := srv.do(t, http.MethodGet, "/users/ironman", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[UserResponse](t, w)
	assert.Equal(t, "ironman", user.Username)
	require.NotNil(t, user.BirthDate)
	assert.Equal(t, "1970-05-29", *user.BirthDate)
	assert.NotContains(t, w.Body.String(), "password")

	w = srv.do(t, http.MethodPost, "/users/signup", map[string]any{
		"username": "ironman",
		"name":     "Tony",
		"lastname": "Stark",
		"email":    "tony@stark.com",
		"password": "ILoveMark40",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignup_Validation(t *testing.T) {
	srv := newTestServer(t, false)

	cases := map[string]map[string]any{
		"missing password": {"username": "hulk", "name": "Bruce", "lastname": "Banner", "email": "bruce@avengers.org"},
		"short password":   {"username": "hulk", "name": "Bruce", "lastname": "Banner", "email": "bruce@avengers.org", "password": "short"},
		"bad email":        {"username": "hulk", "name": "Bruce", "lastname": "Banner", "email": "bruce", "password": "SmashSmash"},
		"bad birth date":   {"username": "hulk", "name": "Bruce", "lastname": "Banner", "email": "bruce@avengers.org", "password": "SmashSmash", "birth_date": "18/12/1969"},
		"short username":   {"username": "hk", "name": "Bruce", "lastname": "Banner", "email": "bruce@avengers.org", "password": "SmashSmash"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := srv.do(t, http.MethodPost, "/users/signup", body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestGetUser_NotFound(t *testing.T) {
	srv := newTestServer(t, false)
	w := srv.do(t, http.MethodGet, "/users/nobody", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser(t *testing.T) {
	srv := newTestServer(t, false)
	srv.signup(t, "ironman")
	srv.signup(t, "warmachine")
	token := srv.token(t, "ironman")

	w := srv.do(t, http.MethodPatch, "/users/ironman", map[string]any{"name": "Tony", "password": "NewSuitMark42"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Tony", decode[UserResponse](t, w).Name)

	assert.Equal(t, http.StatusUnauthorized, srv.login(t, "ironman", "ILoveMark40").Code)
	assert.Equal(t, http.StatusOK, srv.login(t, "ironman", "NewSuitMark42").Code)

	w = srv.do(t, http.MethodPatch, "/users/ironman", map[string]any{"username": "tony"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPatch, "/users/ironman", map[string]any{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPatch, "/users/warmachine", map[string]any{"name": "Rhodey"}, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodPatch, "/users/ironman", map[string]any{"name": "Tony"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestDeleteUser(t *testing.T) {
	srv := newTestServer(t, false)
	srv.signup(t, "ironman")
	srv.signup(t, "warmachine")
	token := srv.token(t, "ironman")

	w := srv.do(t, http.MethodDelete, "/users/warmachine", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodDelete, "/users/ironman", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[UserResponse](t, w).Disabled)

	w = srv.do(t, http.MethodGet, "/users", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	users := decode[[]UserResponse](t, w)
	require.Len(t, users, 1)
	assert.Equal(t, "warmachine", users[0].Username)
}
