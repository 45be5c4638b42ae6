// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package api

import "time"

// User is the identity object returned by the users endpoints. Email is only
// populated on the private views (/api/users/me and account mutations).
type User struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email,omitempty"`
	ImageFile *string `json:"image_file"`
	ImagePath string  `json:"image_path,omitempty"`
}

// Post is a published article including its author's public view.
type Post struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	UserID     int64     `json:"user_id"`
	DatePosted time.Time `json:"date_posted"`
	Author     User      `json:"author"`
}

// Token is the response of the login endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserUpdate carries optional account changes for PATCH /api/users/{id}.
type UserUpdate struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	ImageFile *string `json:"image_file,omitempty"`
}

// PostUpdate carries optional post changes for PATCH /api/posts/{id}.
type PostUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}
