// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// indexRegex matches a path segment with an explicit array index, like
// items[2].
var indexRegex = regexp.MustCompile(`^(.*)\[(\d+)\]$`)

// Driller extracts the value at a dot-delimited path from a raw JSON
// document. Segments may carry an explicit index ("posts[1].title"). An
// un-indexed key that resolves to a single-element array drills through the
// lone element, so "author.username" works whether author arrived as an
// object or a one-element list. A multi-element array without an index is
// returned whole. Anything unresolvable yields a non-existent Result.
func Driller(raw string, path string) gjson.Result {
	current := gjson.Parse(raw)

	segments := strings.Split(path, ".")
	for i, segment := range segments {
		key := segment
		index := -1
		if parts := indexRegex.FindStringSubmatch(segment); parts != nil {
			key = parts[1]
			index, _ = strconv.Atoi(parts[2])
		}

		// A bare "[n]" segment indexes the current value itself.
		result := current
		if key != "" {
			result = current.Get(key)
		}
		if !result.Exists() {
			return result
		}

		if result.IsArray() {
			elements := result.Array()
			switch {
			case index >= 0:
				if index >= len(elements) {
					return gjson.Result{}
				}
				result = elements[index]
			case len(elements) == 1:
				// Drill through a lone element so callers don't care whether
				// the server wrapped it in a list.
				result = elements[0]
			default:
				// A bare multi-element array only makes sense as the final
				// answer.
				if i == len(segments)-1 {
					return result
				}
				return gjson.Result{}
			}
		} else if index >= 0 {
			return gjson.Result{}
		}

		current = result
	}

	return current
}
