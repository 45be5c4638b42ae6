// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"reflect"
	"syscall"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/blogctl/blogctl/internal/api"
	"github.com/blogctl/blogctl/internal/attrs"
	"github.com/blogctl/blogctl/internal/creds"
	"github.com/blogctl/blogctl/internal/meta"
	"github.com/blogctl/blogctl/internal/output"
	"github.com/blogctl/blogctl/internal/session"
)

// ErrNotLoggedIn is returned by commands that need an authenticated user
// when there is none.
var ErrNotLoggedIn = errors.New("not logged in; run blogctl login")

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr blogctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "blogctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the attribute schema for the provided type
// when --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema("", t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// EmitJSONSlice marshals a slice as JSON and passes it to the common output
// routine.
func EmitJSONSlice(results any, al attrs.AttrList, cmd *cli.Command) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	output.SliceDiceSpit(*bytes.NewBuffer(data), al, cmd, "", os.Stdout)
	return nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// InitSession wires the credential store, API client and session cache for
// the host the command is pointed at.
func InitSession(cmd *cli.Command) (*api.Client, *session.Cache, error) {
	host := cmd.String("host")

	store := &creds.Store{Host: host}
	client, err := api.NewClient(host, store.Token())
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("client: %v", client.BaseURL())

	return client, session.New(store, client), nil
}

// RequireUser resolves the authenticated user or fails the command.
func RequireUser(ctx context.Context, sess *session.Cache) (*api.User, error) {
	user := sess.Current(ctx)
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	return user, nil
}

// PromptSecret reads a value from the terminal without echoing it. Falls
// back to an error when stdin is not a terminal.
func PromptSecret(label string) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; pass the value via flag")
	}

	fmt.Fprintf(os.Stderr, "%s: ", label)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", label, err)
	}
	return string(secret), nil
}

// PostQueryErrorContext is a helper to construct api.ErrorContext for
// post-related queries (pq, pub, edit, rm).
func PostQueryErrorContext(client *api.Client, operation string) api.ErrorContext {
	return api.ErrorContext{
		Host:      client.Host,
		Operation: operation,
		Resource:  "post",
	}
}

// QueryCommandBuilder is a helper that constructs a cli.Command for query
// subcommands (pq, uq, whoami) using a consistent pattern. It accepts the
// command name, usage text, optional UsageText, custom flags, the action
// handler, and meta. The builder automatically wires metadata, adds
// tldr/schema flags, applies global flags, and sets up validators.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: append(qcb.Flags, append([]cli.Flag{
			tldrFlag,
			schemaFlag,
		}, NewGlobalFlags(qcb.Name)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: qcb.Action,
	}
}

// QueryActionRunner[T] encapsulates the common query action pattern for the
// query subcommands. It handles GetMeta, short-circuit checks, BuildAttrs,
// schema dumping, and output emission, with the data fetching provided by
// FetchFn.
type QueryActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) ([]T, error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner[T]) Run(
	ctx context.Context,
	cmd *cli.Command,
) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, qar.CommandName) {
		return nil
	}
	if DumpSchemaIfRequested(cmd, qar.SchemaType) {
		return nil
	}

	attrs := BuildAttrs(cmd, qar.DefaultAttrs...)
	log.Debugf("attrs: %v", attrs)

	results, err := qar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}

	if err := EmitJSONSlice(results, attrs, cmd); err != nil {
		return err
	}
	return nil
}
