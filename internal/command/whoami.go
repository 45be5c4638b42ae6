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

// whoamiCommandAction resolves the authenticated user through the session
// cache and emits it per the common output flags.
func whoamiCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[*api.User]{
		CommandName:  "whoami",
		SchemaType:   reflect.TypeOf(api.User{}),
		DefaultAttrs: []string{".id:id", "username", "email"},
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]*api.User, error) {
			_, sess, err := InitSession(cmd)
			if err != nil {
				return nil, err
			}

			user, err := RequireUser(ctx, sess)
			if err != nil {
				return nil, err
			}
			return []*api.User{user}, nil
		},
	}
	return runner.Run(ctx, cmd)
}

// whoamiCommandBuilder constructs the cli.Command for "whoami".
func whoamiCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:  "whoami",
		Usage: "show the logged-in user",
		Flags: []cli.Flag{
			NewHostFlag("whoami", meta.Config.Source),
		},
		Action: whoamiCommandAction,
		Meta:   meta,
	}).Build()
}
