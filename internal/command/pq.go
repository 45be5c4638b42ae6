// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/blogctl/blogctl/internal/api"
	"github.com/blogctl/blogctl/internal/meta"
	"github.com/blogctl/blogctl/internal/output"
)

// PqCommandAction is the action handler for the "pq" subcommand. It lists
// posts (all, one user's, or a single post), supports --tldr/--schema
// short-circuits, and emits results per common flags.
func PqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "pq") {
		return nil
	}

	// Bail out early if we're just dumping the schema.
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(api.Post{})) {
		return nil
	}

	attrs := BuildAttrs(cmd, ".id:id", "title", "author.username:author", "date_posted:posted:h")
	log.Debugf("attrs: %v", attrs)

	client, sess, err := InitSession(cmd)
	if err != nil {
		return err
	}

	// Work out which endpoint serves this query.
	path := "/api/posts"
	switch {
	case cmd.Int("id") != 0:
		path = fmt.Sprintf("/api/posts/%d", cmd.Int("id"))
	case cmd.Int("user") != 0:
		path = fmt.Sprintf("/api/users/%d/posts", cmd.Int("user"))
	case cmd.Bool("mine"):
		user, err := RequireUser(ctx, sess)
		if err != nil {
			return err
		}
		path = fmt.Sprintf("/api/users/%d/posts", user.ID)
	}

	raw, err := client.GetRaw(ctx, path)
	if err != nil {
		return api.Friendly(err, PostQueryErrorContext(client, "list posts"))
	}

	output.SliceDiceSpit(raw, attrs, cmd, "", nil)
	return nil
}

// PqCommandBuilder constructs the cli.Command for "pq", wiring metadata,
// flags, and action/validator handlers.
func PqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "pq",
		Usage:     "post query",
		UsageText: `blogctl pq [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  "id",
				Usage: "query a single post",
			},
			&cli.IntFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "query one user's posts",
			},
			&cli.BoolFlag{
				Name:        "mine",
				Usage:       "query the logged-in user's posts",
				HideDefault: true,
			},
			NewHostFlag("pq", meta.Config.Source),
			tldrFlag,
			schemaFlag,
		}, NewGlobalFlags("pq")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := PqCommandValidator(ctx, c); err != nil {
				return err
			}
			return PqCommandAction(ctx, c)
		},
	}
}

// PqCommandValidator performs validation for "pq" and delegates to
// GlobalFlagsValidator.
func PqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if cmd.Int("id") != 0 && (cmd.Int("user") != 0 || cmd.Bool("mine")) {
		return fmt.Errorf("--id cannot be combined with --user or --mine")
	}
	return GlobalFlagsValidator(ctx, cmd)
}
