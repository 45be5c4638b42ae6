// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/blogctl/blogctl/internal/api"
	"github.com/blogctl/blogctl/internal/differ"
	"github.com/blogctl/blogctl/internal/meta"
)

// editDoc is the slice of a post an edit can touch, used for diffing.
type editDoc struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// EditCommandAction applies a partial update to one of the logged-in user's
// posts. --diff shows what changed; --dry-run shows it without saving.
func EditCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "edit") {
		return nil
	}

	client, sess, err := InitSession(cmd)
	if err != nil {
		return err
	}

	if _, err := RequireUser(ctx, sess); err != nil {
		return err
	}

	id := cmd.Int("id")
	if id == 0 {
		return fmt.Errorf("--id is required")
	}

	title := cmd.String("title")
	content := cmd.String("content")
	if title == "" && content == "" {
		return fmt.Errorf("nothing to change; pass --title and/or --content")
	}

	before, err := client.Post(ctx, int64(id))
	if err != nil {
		return api.Friendly(err, PostQueryErrorContext(client, "get post"))
	}

	after := editDoc{Title: before.Title, Content: before.Content}
	patch := api.PostUpdate{}
	if title != "" {
		after.Title = title
		patch.Title = &title
	}
	if content != "" {
		after.Content = content
		patch.Content = &content
	}

	if cmd.Bool("diff") || cmd.Bool("dry-run") {
		beforeDoc, _ := json.Marshal(editDoc{Title: before.Title, Content: before.Content})
		afterDoc, _ := json.Marshal(after)

		out, modified, err := differ.Diff(beforeDoc, afterDoc, cmd.Bool("color"))
		if err != nil {
			return err
		}
		if !modified {
			fmt.Println("No changes.")
			return nil
		}
		fmt.Print(out)

		if cmd.Bool("dry-run") {
			return nil
		}
	}

	post, err := client.PatchPost(ctx, int64(id), patch)
	if err != nil {
		return api.Friendly(err, PostQueryErrorContext(client, "update post"))
	}

	fmt.Printf("Updated post %d\n", post.ID)
	return nil
}

// EditCommandBuilder constructs the cli.Command for "edit".
func EditCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "edit one of your posts",
		UsageText: `blogctl edit --id N [--title "..."] [--content "..."] [--diff] [--dry-run]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "id",
				Usage: "post to edit",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "replacement title",
			},
			&cli.StringFlag{
				Name:  "content",
				Usage: "replacement body",
			},
			&cli.BoolFlag{
				Name:        "diff",
				Usage:       "show what changed",
				HideDefault: true,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "show what would change without saving",
				HideDefault: true,
			},
			&cli.BoolWithInverseFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored diff output",
				Value:   false,
			},
			NewHostFlag("edit", meta.Config.Source),
			tldrFlag,
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return EditCommandAction(ctx, c)
		},
	}
}
