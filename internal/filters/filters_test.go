// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/blogctl/blogctl/internal/attrs"
)

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		delimiter string
		wantCount int
		want      []Filter
	}{
		{
			name:      "empty spec",
			spec:      "",
			wantCount: 0,
		},
		{
			name:      "single exact match filter",
			spec:      "username=alice",
			wantCount: 1,
			want: []Filter{
				{Key: "username", Operand: "=", Target: "alice", Negate: false},
			},
		},
		{
			name:      "prefix match filter",
			spec:      "title^How to",
			wantCount: 1,
			want: []Filter{
				{Key: "title", Operand: "^", Target: "How to", Negate: false},
			},
		},
		{
			name:      "case insensitive match filter",
			spec:      "username~Alice",
			wantCount: 1,
			want: []Filter{
				{Key: "username", Operand: "~", Target: "Alice", Negate: false},
			},
		},
		{
			name:      "negated exact match",
			spec:      "username!=alice",
			wantCount: 1,
			want: []Filter{
				{Key: "username", Operand: "=", Target: "alice", Negate: true},
			},
		},
		{
			name:      "negated prefix match",
			spec:      "title!^Draft",
			wantCount: 1,
			want: []Filter{
				{Key: "title", Operand: "^", Target: "Draft", Negate: true},
			},
		},
		{
			name:      "multiple filters",
			spec:      "username=alice,title^How",
			wantCount: 2,
			want: []Filter{
				{Key: "username", Operand: "=", Target: "alice", Negate: false},
				{Key: "title", Operand: "^", Target: "How", Negate: false},
			},
		},
		{
			name:      "numeric comparisons",
			spec:      "id>5,id<10",
			wantCount: 2,
			want: []Filter{
				{Key: "id", Operand: ">", Target: "5", Negate: false},
				{Key: "id", Operand: "<", Target: "10", Negate: false},
			},
		},
		{
			name:      "contains operand",
			spec:      "content@kubernetes",
			wantCount: 1,
			want: []Filter{
				{Key: "content", Operand: "@", Target: "kubernetes", Negate: false},
			},
		},
		{
			name:      "regex operand",
			spec:      "title/^How.*",
			wantCount: 1,
			want: []Filter{
				{Key: "title", Operand: "/", Target: "^How.*", Negate: false},
			},
		},
		{
			name:      "invalid filter skipped",
			spec:      "username=alice,bogus,title^How",
			wantCount: 2,
			want: []Filter{
				{Key: "username", Operand: "=", Target: "alice", Negate: false},
				{Key: "title", Operand: "^", Target: "How", Negate: false},
			},
		},
		{
			name:      "custom delimiter",
			spec:      "title=a,b;username=alice",
			delimiter: ";",
			wantCount: 2,
			want: []Filter{
				{Key: "title", Operand: "=", Target: "a,b", Negate: false},
				{Key: "username", Operand: "=", Target: "alice", Negate: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.delimiter != "" {
				t.Setenv("BLOGCTL_FILTER_DELIM", tt.delimiter)
			}

			got := BuildFilters(tt.spec)
			assert.Len(t, got, tt.wantCount)
			if tt.want != nil {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

const postsDataset = `[
	{"id": 1, "title": "How to test", "user_id": 7,
	 "author": {"id": 7, "username": "alice"}},
	{"id": 2, "title": "Draft thoughts", "user_id": 8,
	 "author": {"id": 8, "username": "bob"}},
	{"id": 3, "title": "How to ship", "user_id": 7,
	 "author": {"id": 7, "username": "alice"}}
]`

func postAttrs() attrs.AttrList {
	return attrs.AttrList{
		{Key: "id", OutputKey: "id", Include: true},
		{Key: "title", OutputKey: "title", Include: true},
		{Key: "author.username", OutputKey: "author", Include: true},
	}
}

func TestFilterDataset(t *testing.T) {
	tests := []struct {
		name       string
		spec       string
		wantTitles []string
	}{
		{
			name:       "no filters keeps everything",
			spec:       "",
			wantTitles: []string{"How to test", "Draft thoughts", "How to ship"},
		},
		{
			name:       "exact match on nested key",
			spec:       "author=bob",
			wantTitles: []string{"Draft thoughts"},
		},
		{
			name:       "prefix match",
			spec:       "title^How",
			wantTitles: []string{"How to test", "How to ship"},
		},
		{
			name:       "negated prefix match",
			spec:       "title!^How",
			wantTitles: []string{"Draft thoughts"},
		},
		{
			name:       "numeric greater than",
			spec:       "id>1",
			wantTitles: []string{"Draft thoughts", "How to ship"},
		},
		{
			name:       "combined filters",
			spec:       "author=alice,id>1",
			wantTitles: []string{"How to ship"},
		},
		{
			name:       "regex match",
			spec:       "title/ship$",
			wantTitles: []string{"How to ship"},
		},
		{
			name:       "server-side key ignored",
			spec:       "_limit=10,author=bob",
			wantTitles: []string{"Draft thoughts"},
		},
		{
			name:       "unknown filter key ignored",
			spec:       "nosuch=thing",
			wantTitles: []string{"How to test", "Draft thoughts", "How to ship"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDataset(gjson.Parse(postsDataset), postAttrs(), tt.spec)

			var titles []string
			for _, row := range got {
				titles = append(titles, row["title"].(string))
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestFilterDatasetRowShape(t *testing.T) {
	got := FilterDataset(gjson.Parse(postsDataset), postAttrs(), "id=1")

	assert.Len(t, got, 1)
	assert.Equal(t, float64(1), got[0]["id"])
	assert.Equal(t, "How to test", got[0]["title"])
	assert.Equal(t, "alice", got[0]["author"])
}
