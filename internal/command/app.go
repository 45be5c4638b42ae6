// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/blogctl/blogctl/internal/config"
	"github.com/blogctl/blogctl/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the blogctl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load(ns)
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "blogctl",
		Usage: "Blog Control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "blogctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		LoginCommandBuilder(app, meta),
		LogoutCommandBuilder(app, meta),
		RegisterCommandBuilder(app, meta),
		whoamiCommandBuilder(meta),
		PqCommandBuilder(app, meta),
		uqCommandBuilder(meta),
		PubCommandBuilder(app, meta),
		EditCommandBuilder(app, meta),
		RmCommandBuilder(app, meta),
		CompletionCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
