// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

// Package version holds the build version stamped in by the linker.
package version

// Version is overridden at build time via -ldflags.
var Version = "dev"
