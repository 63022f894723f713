// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package block

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// cursorUp moves the cursor to the beginning of the previous line.  It is
// emitted unconditionally; writers that are not terminals receive the escape
// bytes literally.
const cursorUp = "\x1b[F"

const (
	// fallbackWidth is used when the width cannot be read from the terminal.
	fallbackWidth = 80

	// minWidth keeps the interior area non-negative and the success label
	// centering from underflowing.  Smaller configured widths are clamped,
	// never rejected.
	minWidth = 4
)

const successLabel = "success"

// Variant selects border ordering and default emphasis for a rendered block.
type Variant int

const (
	// Body prints its lines and a closing border, runs the action, then
	// overwrites the border area with a centered success label.
	Body Variant = iota

	// Header prints a full bordered box before running the action.
	Header

	// Footer overwrites the two preceding console lines with a full
	// bordered box before running the action.
	Footer
)

// Action is a deferred unit of work attached to a Block.  Render invokes it
// exactly once and returns its result verbatim.
type Action[R any] func() (R, error)

// None is a no-op Action for blocks that only draw.
func None() (struct{}, error) {
	return struct{}{}, nil
}

// Item is one element of a block's line sequence: either plain text or a
// text and inline-action pair.
type Item struct {
	text string
	step func() error
}

// Text produces a plain text item.
func Text(s string) Item { return Item{text: s} }

// Step pairs text with an inline action.  Rendering prints the text dimmed,
// runs the action, then overwrites the text with a per-step success
// indicator.  The action's error, if any, aborts the remaining draw steps.
func Step(s string, fn func() error) Item { return Item{text: s, step: fn} }

type settings struct {
	variant Variant
	width   int
	style   *lipgloss.Style
	out     io.Writer
}

// Option tailors a Block prior to rendering.
type Option func(*settings)

// WithVariant overrides the default Body variant.
func WithVariant(v Variant) Option {
	return func(s *settings) { s.variant = v }
}

// WithWidth fixes the block width instead of querying the terminal.
func WithWidth(w int) Option {
	return func(s *settings) { s.width = w }
}

// WithStyle overrides the variant's default emphasis style.
func WithStyle(st lipgloss.Style) Option {
	return func(s *settings) { s.style = &st }
}

// WithOutput redirects rendering away from os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *settings) { s.out = w }
}

// Block describes one rendering pass: a sequence of items drawn inside a
// border, plus an action whose result Render returns.  A Block is immutable
// once constructed, holds no resources, and may be rendered repeatedly.
type Block[R any] struct {
	items  []Item
	action Action[R]
	settings
}

// New constructs a Block.  The action may be nil, in which case Render still
// performs the full draw sequence and returns the zero value of R.  Width
// defaults to the current terminal width and is clamped to the minimum.
func New[R any](items []Item, action Action[R], opts ...Option) *Block[R] {
	b := &Block[R]{
		items:    items,
		action:   action,
		settings: settings{variant: Body},
	}

	for _, opt := range opts {
		opt(&b.settings)
	}

	if b.out == nil {
		b.out = os.Stdout
	}

	if b.width == 0 {
		b.width = terminalWidth()
	}

	if b.width < minWidth {
		b.width = minWidth
	}

	return b
}

// Render performs the full draw sequence for the configured variant, invokes
// the action exactly once, and returns its result.  Errors from the action
// (or from an inline item action) propagate unchanged; output already written
// stays on the stream.
func (b *Block[R]) Render() (result R, err error) {
	switch b.variant {
	case Header:
		fmt.Fprintln(b.out, b.hline("+"))
		if err = b.body(); err != nil {
			return
		}
		fmt.Fprintln(b.out, b.hline("+"))
		result, err = b.run()

	case Footer:
		fmt.Fprintln(b.out, cursorUp+cursorUp)
		fmt.Fprintln(b.out, b.hline("+"))
		if err = b.body(); err != nil {
			return
		}
		fmt.Fprintln(b.out, b.hline("+"))
		result, err = b.run()

	default: // Body
		if err = b.body(); err != nil {
			return
		}
		fmt.Fprintln(b.out, b.hline(b.vline()))
		if result, err = b.run(); err != nil {
			return
		}
		fmt.Fprintln(b.out, cursorUp+cursorUp)
		fmt.Fprintln(b.out, b.vline()+successStyle.Render(center(successLabel, b.width-2))+b.vline())
		fmt.Fprintln(b.out, b.hline(b.vline()))
	}

	return
}

func (b *Block[R]) run() (R, error) {
	if b.action == nil {
		var zero R
		return zero, nil
	}

	return b.action()
}

// body draws the wrapped line items.  Plain items are centered in the
// interior area between vertical border glyphs.  Step items additionally run
// their inline action and overwrite the text with a success indicator
// followed by a dashed separator.
func (b *Block[R]) body() error {
	interior := b.width - 2

	for _, item := range b.items {
		lines := wrap(item.text, b.width)

		if item.step == nil {
			for _, line := range lines {
				fmt.Fprintln(b.out, b.vline()+b.style().Render(center(line, interior))+b.vline())
			}
			continue
		}

		for _, line := range lines {
			fmt.Fprintln(b.out, b.vline()+stepStyle.Render(center(line, interior))+b.vline())
		}

		if err := item.step(); err != nil {
			return err
		}

		separator := "|" + strings.Repeat("-", (b.width-4)/2) + "|"
		fmt.Fprintln(b.out, cursorUp)
		fmt.Fprintln(b.out, b.vline()+successStyle.Render(center(successLabel, interior))+b.vline())
		fmt.Fprintln(b.out, b.vline()+stepStyle.Render(center(separator, interior))+b.vline())
	}

	return nil
}

func (b *Block[R]) style() lipgloss.Style {
	if b.settings.style != nil {
		return *b.settings.style
	}

	return styleFor(b.variant)
}

// vline returns the styled vertical border glyph.
func (b *Block[R]) vline() string {
	return b.style().Render("|")
}

// hline returns a horizontal border line using edge as the end glyph.
func (b *Block[R]) hline(edge string) string {
	return edge + b.style().Render(strings.Repeat("-", b.width-2)) + edge
}

// terminalWidth reports the current terminal width, falling back to a fixed
// width when stdout is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}

	return fallbackWidth
}
