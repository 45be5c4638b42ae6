// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/blogctl/blogctl/internal/api"
	"github.com/blogctl/blogctl/internal/meta"
)

// LoginCommandAction exchanges credentials for a token, persists it and
// greets the resolved user.
func LoginCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "login") {
		return nil
	}

	client, sess, err := InitSession(cmd)
	if err != nil {
		return err
	}

	email := cmd.String("email")
	if email == "" {
		return fmt.Errorf("--email is required")
	}

	password := cmd.String("password")
	if password == "" {
		if password, err = PromptSecret("password"); err != nil {
			return err
		}
	}

	token, err := client.Login(ctx, email, password)
	if err != nil {
		return api.Friendly(err, api.ErrorContext{
			Host:      client.Host,
			Operation: "login",
			Resource:  "token",
		})
	}

	if err := sess.SetToken(token.AccessToken); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	// The identity fetch doubles as a sanity check on the fresh token.
	client.Token = token.AccessToken
	sess.Invalidate()
	user := sess.Current(ctx)
	if user == nil {
		return fmt.Errorf("token stored but the server did not identify it")
	}

	fmt.Printf("Logged in to %s as %s\n", client.Host, user.Username)
	return nil
}

// LoginCommandBuilder constructs the cli.Command for "login", wiring
// metadata, flags, and action/validator handlers.
func LoginCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "log in and store the access token",
		UsageText: `blogctl login --email you@example.com [--password secret] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "account email address",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("BLOGCTL_EMAIL"),
				),
			},
			&cli.StringFlag{
				Name:  "password",
				Usage: "account password (prompted when omitted)",
			},
			NewHostFlag("login", meta.Config.Source),
			tldrFlag,
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return LoginCommandAction(ctx, c)
		},
	}
}
