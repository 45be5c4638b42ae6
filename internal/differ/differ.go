// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

// Package differ renders a human-readable diff between two JSON documents.
package differ

import (
	"encoding/json"
	"fmt"

	gojsondiff "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Diff compares two JSON object documents and returns an ascii rendering of
// the changes. The second return reports whether anything changed at all.
func Diff(before, after []byte, coloring bool) (string, bool, error) {
	d, err := gojsondiff.New().Compare(before, after)
	if err != nil {
		return "", false, fmt.Errorf("failed to compare documents: %w", err)
	}

	if !d.Modified() {
		return "", false, nil
	}

	var left map[string]interface{}
	if err := json.Unmarshal(before, &left); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       coloring,
	})

	out, err := f.Format(d)
	if err != nil {
		return "", false, fmt.Errorf("failed to format diff: %w", err)
	}

	return out, true, nil
}
