// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientNoHost(t *testing.T) {
	_, err := NewClient("", "")
	assert.ErrorIs(t, err, ErrNoHost)
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"blog.example.com", "https://blog.example.com"},
		{"http://localhost:8000", "http://localhost:8000"},
		{"http://localhost:8000/", "http://localhost:8000"},
	}
	for _, tt := range tests {
		c, err := NewClient(tt.host, "")
		require.NoError(t, err)
		assert.Equal(t, tt.want, c.BaseURL())
	}
}

func TestLoginSendsForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "a@example.com", r.PostFormValue("username"))
		assert.Equal(t, "hunter22", r.PostFormValue("password"))

		_ = json.NewEncoder(w).Encode(Token{AccessToken: "tok-1", TokenType: "bearer"})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "")
	require.NoError(t, err)

	token, err := c.Login(t.Context(), "a@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
}

func TestLoginBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Incorrect email or password"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "")
	require.NoError(t, err)

	_, err = c.Login(t.Context(), "a@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Contains(t, err.Error(), "Incorrect email or password")
}

func TestMeSendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id": 1, "username": "alice", "email": "a@example.com"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "")
	require.NoError(t, err)

	user, err := c.Me(t.Context(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestCreatePostAuthedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/posts", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hello", body["title"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 9, "title": "Hello", "content": "World", "user_id": 1,
			"date_posted": "2026-08-30T10:00:00Z", "author": {"id": 1, "username": "alice"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "tok-1")
	require.NoError(t, err)

	post, err := c.CreatePost(t.Context(), "Hello", "World")
	require.NoError(t, err)
	assert.Equal(t, int64(9), post.ID)
	assert.Equal(t, "alice", post.Author.Username)
}

func TestDeletePostNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/posts/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "tok-1")
	require.NoError(t, err)
	assert.NoError(t, c.DeletePost(t.Context(), 9))
}

func TestNotFoundDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Post not found"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "")
	require.NoError(t, err)

	_, err = c.Post(t.Context(), 404)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestGetRawBypassesCacheWhenDisabled(t *testing.T) {
	t.Setenv("BLOGCTL_CACHE", "0")

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`[{"id": 1}]`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		raw, err := c.GetRaw(t.Context(), "/api/posts")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id": 1}]`, raw.String())
	}
	assert.Equal(t, 2, hits)
}

func TestGetRawUsesCache(t *testing.T) {
	t.Setenv("BLOGCTL_CACHE", "1")
	t.Setenv("BLOGCTL_CACHE_DIR", t.TempDir())

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`[{"id": 1}]`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		raw, err := c.GetRaw(t.Context(), "/api/posts")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id": 1}]`, raw.String())
	}
	assert.Equal(t, 1, hits)
}
