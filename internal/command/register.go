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

// RegisterCommandAction creates a new account on the server. It does not log
// the user in; the server wants a fresh token exchange for that.
func RegisterCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "register") {
		return nil
	}

	client, _, err := InitSession(cmd)
	if err != nil {
		return err
	}

	username := cmd.String("username")
	email := cmd.String("email")
	if username == "" || email == "" {
		return fmt.Errorf("--username and --email are required")
	}

	password := cmd.String("password")
	if password == "" {
		if password, err = PromptSecret("password"); err != nil {
			return err
		}
	}

	user, err := client.Register(ctx, username, email, password)
	if err != nil {
		return api.Friendly(err, api.ErrorContext{
			Host:      client.Host,
			Operation: "register",
			Resource:  "user",
		})
	}

	fmt.Printf("Created user %s (id %d) on %s\n", user.Username, user.ID, client.Host)
	fmt.Println("Run blogctl login to get a token.")
	return nil
}

// RegisterCommandBuilder constructs the cli.Command for "register".
func RegisterCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "register",
		Usage:     "create a new account",
		UsageText: `blogctl register --username you --email you@example.com [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "public display name",
			},
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "account email address",
			},
			&cli.StringFlag{
				Name:  "password",
				Usage: "account password (prompted when omitted)",
			},
			NewHostFlag("register", meta.Config.Source),
			tldrFlag,
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return RegisterCommandAction(ctx, c)
		},
	}
}
