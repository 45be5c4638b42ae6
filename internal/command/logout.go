// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/blogctl/blogctl/internal/api"
	"github.com/blogctl/blogctl/internal/creds"
	"github.com/blogctl/blogctl/internal/meta"
	"github.com/blogctl/blogctl/internal/session"
)

// LogoutCommandAction drops the stored token and cached user. The session's
// navigator lands on the site root, which for a terminal means printing
// where a browser would have gone.
func LogoutCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "logout") {
		return nil
	}

	host := cmd.String("host")
	store := &creds.Store{Host: host}

	client, err := api.NewClient(host, "")
	if err != nil {
		return err
	}

	hadToken := store.Token() != ""

	sess := session.New(store, client, session.WithNavigator(func(path string) {
		fmt.Printf("Signed out of %s%s\n", client.BaseURL(), path)
	}))
	sess.Logout()

	if !hadToken {
		log.Warnf("no stored token for %s", host)
	}
	return nil
}

// LogoutCommandBuilder constructs the cli.Command for "logout".
func LogoutCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "logout",
		Usage:     "discard the stored access token",
		UsageText: `blogctl logout [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewHostFlag("logout", meta.Config.Source),
			tldrFlag,
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return LogoutCommandAction(ctx, c)
		},
	}
}
