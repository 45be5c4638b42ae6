// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/blogctl/blogctl/internal/api"
	"github.com/blogctl/blogctl/internal/meta"
)

// uqCommandAction is the action handler for the "uq" subcommand. It fetches
// a user profile by id, defaulting to the logged-in user.
func uqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[*api.User]{
		CommandName:  "uq",
		SchemaType:   reflect.TypeOf(api.User{}),
		DefaultAttrs: []string{".id:id", "username", "image_path:image"},
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]*api.User, error) {
			client, sess, err := InitSession(cmd)
			if err != nil {
				return nil, err
			}

			id := cmd.Int("id")
			if id == 0 {
				current, err := RequireUser(ctx, sess)
				if err != nil {
					return nil, err
				}
				return []*api.User{current}, nil
			}

			user, err := client.User(ctx, int64(id))
			if err != nil {
				return nil, api.Friendly(err, api.ErrorContext{
					Host:      client.Host,
					Operation: "get user",
					Resource:  "user",
				})
			}
			return []*api.User{user}, nil
		},
	}
	return runner.Run(ctx, cmd)
}

// uqCommandBuilder constructs the cli.Command for "uq", wiring metadata,
// flags, and action/validator handlers.
func uqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:  "uq",
		Usage: "user query",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "id",
				Usage: "user to query (defaults to the logged-in user)",
			},
			NewHostFlag("uq", meta.Config.Source),
		},
		Action: uqCommandAction,
		Meta:   meta,
	}).Build()
}
