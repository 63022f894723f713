// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package block

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// wrap performs greedy word wrapping on display width.  Words are never
// split: a word wider than width simply occupies a line of its own, so
// wrapping degrades to one word per line instead of failing.
func wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}

	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		line  strings.Builder
		used  int
	)

	for _, word := range words {
		w := uniseg.StringWidth(word)
		switch {
		case used == 0:
			line.WriteString(word)
			used = w

		case used+1+w <= width:
			line.WriteByte(' ')
			line.WriteString(word)
			used += 1 + w

		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			used = w
		}
	}

	return append(lines, line.String())
}

// center pads s with spaces on both sides to occupy width display columns.
// Strings already at or beyond width are returned unchanged.
func center(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}

	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}
