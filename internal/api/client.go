// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/apex/log"

	"github.com/blogctl/blogctl/internal/cacheutil"
	"github.com/blogctl/blogctl/internal/config"
)

// Client talks to the blog service's REST API. Token, when set, is sent as a
// bearer credential on every request.
type Client struct {
	Host       string
	Token      string
	HTTPClient *http.Client
}

// NewClient builds a client for the given host. A bare hostname gets an
// https:// scheme; pass "http://host:port" explicitly for local servers.
func NewClient(host, token string) (*Client, error) {
	if host == "" {
		return nil, ErrNoHost
	}
	return &Client{
		Host:       host,
		Token:      token,
		HTTPClient: &http.Client{},
	}, nil
}

// BaseURL returns the scheme-qualified server address.
func (c *Client) BaseURL() string {
	if strings.Contains(c.Host, "://") {
		return strings.TrimSuffix(c.Host, "/")
	}
	return "https://" + c.Host
}

func (c *Client) String() string {
	cCopy := *c
	if cCopy.Token != "" {
		cCopy.Token = "********"
	}
	return fmt.Sprintf("Client: %+v", cCopy)
}

// Login exchanges credentials for an access token. The endpoint follows the
// OAuth2 password flow and wants a form body whose "username" field carries
// the email address.
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL()+"/api/users/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token Token
	if err := c.execute(req, &token); err != nil {
		return nil, err
	}

	return &token, nil
}

// Register creates a new account and returns the private user view.
func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}

	var user User
	if err := c.do(ctx, http.MethodPost, "/api/users", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me fetches the identity behind the given bearer token. The token is passed
// explicitly rather than taken from the client so the session cache can
// re-resolve it on every fetch.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL()+"/api/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var user User
	if err := c.execute(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// User fetches a user's public profile.
func (c *Client) User(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserPosts lists a user's posts, newest first.
func (c *Client) UserPosts(ctx context.Context, id int64) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/posts", id), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateUser patches the authenticated user's account.
func (c *Client) UpdateUser(ctx context.Context, id int64, patch UserUpdate) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/users/%d", id), patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the authenticated user's account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}

// Posts lists all posts, newest first.
func (c *Client) Posts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Post fetches a single post.
func (c *Client) Post(ctx context.Context, id int64) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost publishes a new post owned by the authenticated user.
func (c *Client) CreatePost(ctx context.Context, title, content string) (*Post, error) {
	body := map[string]string{"title": title, "content": content}

	var post Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost fully replaces a post's title and content.
func (c *Client) UpdatePost(ctx context.Context, id int64, title, content string) (*Post, error) {
	body := map[string]string{"title": title, "content": content}

	var post Post
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// PatchPost applies a partial update to a post.
func (c *Client) PatchPost(ctx context.Context, id int64, patch PostUpdate) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/posts/%d", id), patch, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post owned by the authenticated user.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil, nil)
}

// GetRaw GETs a path and returns the raw response body, consulting the disk
// cache first. Cached entries are purged by age per the cache.clean config
// (hours) before the read.
func (c *Client) GetRaw(ctx context.Context, path string) (bytes.Buffer, error) {
	cleanHours, _ := config.GetInt("cache.clean")
	if err := cacheutil.Purge(cleanHours); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	fullURL := c.BaseURL() + path
	subdirs := []string{cacheKeyHost(c.Host)}

	if entry, ok := cacheutil.Read(subdirs, fullURL); ok {
		log.Debugf("cache hit: %s", entry.Path)
		return *bytes.NewBuffer(entry.Data), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return bytes.Buffer{}, fmt.Errorf("failed to create request: %w", err)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return bytes.Buffer{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return bytes.Buffer{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return bytes.Buffer{}, newError(resp.StatusCode, body)
	}

	if err := cacheutil.Write(subdirs, fullURL, body); err != nil {
		log.WithError(err).Warn("failed to write response to cache")
	}

	return *bytes.NewBuffer(body), nil
}

// do issues a JSON request against the API and decodes the response into out
// (which may be nil for 204-style endpoints).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL()+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	return c.execute(req, out)
}

// execute runs a prepared request, mapping non-2xx responses to *Error.
func (c *Client) execute(req *http.Request, out any) error {
	log.Debugf("%s %s", req.Method, req.URL)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, body)
	}

	if out == nil || len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// cacheKeyHost strips the scheme so cache subdirs stay filesystem-friendly.
func cacheKeyHost(host string) string {
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	return strings.ReplaceAll(host, ":", "_")
}
