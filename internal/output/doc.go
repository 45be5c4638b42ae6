// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

// Package output renders filtered, transformed and sorted datasets as raw
// JSON, marshaled JSON, YAML or a styled table.
package output
