// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

// blogctl is the main package for the blogctl command line tool. It wires the
// CLI, delegates to internal packages, and serves as the entry point.
package main
