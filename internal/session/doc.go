// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

// Package session memoizes the authenticated user and manages the persisted
// bearer token. It guarantees at most one identity request is in flight at a
// time; concurrent lookups share that request's outcome.
package session
