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
	"github.com/blogctl/blogctl/internal/picker"
)

// RmCommandAction deletes one of the logged-in user's posts. Without --id it
// opens an interactive picker over the user's posts.
func RmCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "rm") {
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

	id := int64(cmd.Int("id"))
	if id == 0 {
		posts, err := client.UserPosts(ctx, user.ID)
		if err != nil {
			return api.Friendly(err, PostQueryErrorContext(client, "list posts"))
		}
		if len(posts) == 0 {
			fmt.Println("You have no posts.")
			return nil
		}

		choice, err := picker.Pick("Delete which post?", posts)
		if err != nil {
			return err
		}
		if choice == nil {
			return nil
		}
		id = choice.ID
	}

	if err := client.DeletePost(ctx, id); err != nil {
		return api.Friendly(err, PostQueryErrorContext(client, "delete post"))
	}

	fmt.Printf("Deleted post %d\n", id)
	return nil
}

// RmCommandBuilder constructs the cli.Command for "rm".
func RmCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "delete one of your posts",
		UsageText: `blogctl rm [--id N] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "id",
				Usage: "post to delete (picker when omitted)",
			},
			NewHostFlag("rm", meta.Config.Source),
			tldrFlag,
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return RmCommandAction(ctx, c)
		},
	}
}
