// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

// Package driller traverses API response documents to extract nested values
// for attribute selection, filtering and sorting.
package driller
