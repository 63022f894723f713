// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package block

import "github.com/charmbracelet/lipgloss"

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	plainStyle   = lipgloss.NewStyle()
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	stepStyle    = lipgloss.NewStyle().Faint(true)
)

// styleFor returns the default emphasis style for a variant.  Styling is
// purely cosmetic and never changes the text content or wrapping geometry.
func styleFor(v Variant) lipgloss.Style {
	switch v {
	case Header, Footer:
		return boldStyle

	default:
		return plainStyle
	}
}
