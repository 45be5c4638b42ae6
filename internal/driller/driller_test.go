// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package driller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const postsDoc = `[
	{"id": 1, "title": "First", "user_id": 7,
	 "author": {"id": 7, "username": "alice"},
	 "tags": ["go", "testing"]},
	{"id": 2, "title": "Second", "user_id": 8,
	 "author": {"id": 8, "username": "bob"},
	 "tags": ["go"]}
]`

const userDoc = `{
	"id": 7, "username": "alice", "email": "a@example.com",
	"posts": [{"id": 1, "title": "First"}]
}`

func TestDriller(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		path    string
		want    string
		missing bool
	}{
		{
			name: "top level key",
			json: userDoc,
			path: "username",
			want: "alice",
		},
		{
			name: "nested key",
			json: `{"author": {"username": "alice"}}`,
			path: "author.username",
			want: "alice",
		},
		{
			name: "explicit index",
			json: postsDoc,
			path: "[1].title",
			want: "Second",
		},
		{
			name: "indexed key",
			json: userDoc,
			path: "posts[0].title",
			want: "First",
		},
		{
			name: "single element array drills through",
			json: userDoc,
			path: "posts.title",
			want: "First",
		},
		{
			name: "single element scalar array",
			json: `{"tags": ["go"]}`,
			path: "tags",
			want: "go",
		},
		{
			name: "multi element array returned whole",
			json: postsDoc,
			path: "[0].tags",
			want: `["go", "testing"]`,
		},
		{
			name:    "missing key",
			json:    userDoc,
			path:    "nope",
			missing: true,
		},
		{
			name:    "missing nested key",
			json:    userDoc,
			path:    "posts.nope",
			missing: true,
		},
		{
			name:    "index out of range",
			json:    userDoc,
			path:    "posts[5].title",
			missing: true,
		},
		{
			name:    "index into non array",
			json:    userDoc,
			path:    "username[0]",
			missing: true,
		},
		{
			name:    "multi element array mid path without index",
			json:    postsDoc,
			path:    "tags.title",
			missing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Driller(tt.json, tt.path)
			if tt.missing {
				assert.False(t, got.Exists(), "expected no value at %q", tt.path)
				return
			}
			if got.IsArray() {
				assert.JSONEq(t, tt.want, got.Raw)
				return
			}
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDrillerNumericValue(t *testing.T) {
	got := Driller(userDoc, "posts[0].id")
	assert.True(t, got.Exists())
	assert.Equal(t, int64(1), got.Int())
}
