// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/blogctl/blogctl/internal/meta"
)

// runWithFlags runs fn inside a throwaway command carrying the given flags
// and args, so flag lookups behave as they would in a real invocation.
func runWithFlags(t *testing.T, flags []cli.Flag, args []string, fn func(*cli.Command) error) error {
	t.Helper()

	var actionErr error
	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			actionErr = fn(c)
			return nil
		},
	}
	require.NoError(t, cmd.Run(t.Context(), append([]string{"test"}, args...)))
	return actionErr
}

func TestBuildAttrs(t *testing.T) {
	flags := []cli.Flag{&cli.StringFlag{Name: "attrs"}}

	t.Run("defaults only", func(t *testing.T) {
		_ = runWithFlags(t, flags, nil, func(c *cli.Command) error {
			al := BuildAttrs(c, ".id:id", "title")
			assert.Len(t, al, 2)
			assert.Equal(t, "id", al[0].Key)
			assert.Equal(t, "title", al[1].Key)
			return nil
		})
	})

	t.Run("extras appended", func(t *testing.T) {
		_ = runWithFlags(t, flags, []string{"--attrs", "author.username:author"}, func(c *cli.Command) error {
			al := BuildAttrs(c, ".id:id", "title")
			assert.Len(t, al, 3)
			assert.Equal(t, "author", al[2].OutputKey)
			return nil
		})
	})

	t.Run("extras overlay defaults", func(t *testing.T) {
		_ = runWithFlags(t, flags, []string{"--attrs", "!title"}, func(c *cli.Command) error {
			al := BuildAttrs(c, ".id:id", "title")
			assert.Len(t, al, 2)
			assert.False(t, al[1].Include)
			return nil
		})
	})

	t.Run("global transform spec applied", func(t *testing.T) {
		_ = runWithFlags(t, flags, []string{"--attrs", "*::u"}, func(c *cli.Command) error {
			al := BuildAttrs(c, "title")
			assert.Equal(t, "u,", al[0].TransformSpec)
			return nil
		})
	})
}

func TestGetMeta(t *testing.T) {
	assert.Equal(t, meta.Meta{}, GetMeta(nil))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{}))

	m := meta.Meta{Args: []string{"blogctl", "pq"}}
	cmd := &cli.Command{Metadata: map[string]any{"meta": m}}
	assert.Equal(t, m, GetMeta(cmd))

	cmd = &cli.Command{Metadata: map[string]any{"meta": "wrong type"}}
	assert.Equal(t, meta.Meta{}, GetMeta(cmd))
}

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "json", "raw", "yaml"} {
		assert.NoError(t, OutputValidator(v))
	}
	assert.Error(t, OutputValidator("xml"))
}

func TestJammedFlagValidator(t *testing.T) {
	assert.NoError(t, JammedFlagValidator("value"))
	assert.Error(t, JammedFlagValidator("--flag"))
}

func TestPqCommandValidator(t *testing.T) {
	flags := []cli.Flag{
		&cli.IntFlag{Name: "id"},
		&cli.IntFlag{Name: "user"},
		&cli.BoolFlag{Name: "mine"},
	}

	err := runWithFlags(t, flags, []string{"--id", "1", "--mine"}, func(c *cli.Command) error {
		return PqCommandValidator(t.Context(), c)
	})
	assert.Error(t, err)

	err = runWithFlags(t, flags, []string{"--id", "1"}, func(c *cli.Command) error {
		return PqCommandValidator(t.Context(), c)
	})
	assert.NoError(t, err)
}

func TestInitSessionNoHost(t *testing.T) {
	flags := []cli.Flag{&cli.StringFlag{Name: "host"}}

	err := runWithFlags(t, flags, nil, func(c *cli.Command) error {
		_, _, err := InitSession(c)
		return err
	})
	assert.Error(t, err)
}
