// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/blogctl/blogctl/internal/api"
	"github.com/blogctl/blogctl/internal/meta"
)

// PubCommandAction publishes a new post owned by the logged-in user. The
// body comes from --content or, for anything longer than a sentence, --file.
func PubCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "pub") {
		return nil
	}

	client, sess, err := InitSession(cmd)
	if err != nil {
		return err
	}

	user, err := RequireUser(ctx, sess)
	if err != nil {
		return err
	}

	title := cmd.String("title")
	if title == "" {
		return fmt.Errorf("--title is required")
	}

	content := cmd.String("content")
	if file := cmd.String("file"); file != "" {
		if content != "" {
			return fmt.Errorf("--content and --file are mutually exclusive")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		content = string(data)
	}
	if content == "" {
		return fmt.Errorf("--content or --file is required")
	}

	post, err := client.CreatePost(ctx, title, content)
	if err != nil {
		return api.Friendly(err, PostQueryErrorContext(client, "create post"))
	}

	fmt.Printf("Published post %d as %s\n", post.ID, user.Username)
	return nil
}

// PubCommandBuilder constructs the cli.Command for "pub".
func PubCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "pub",
		Usage:     "publish a new post",
		UsageText: `blogctl pub --title "..." [--content "..." | --file post.md] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "title",
				Usage: "post title",
			},
			&cli.StringFlag{
				Name:  "content",
				Usage: "post body",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "read the post body from a file",
			},
			NewHostFlag("pub", meta.Config.Source),
			tldrFlag,
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return PubCommandAction(ctx, c)
		},
	}
}
