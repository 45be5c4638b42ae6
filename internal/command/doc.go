// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for blogctl. It wires flags,
// validators, actions, and shell completion for subcommands.
package command
