// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package block

// Decorate wraps a niladic action so that every invocation renders inside a
// block with the given text.  The wrapped action's result and error are
// forwarded unchanged.  The block defaults to the Body variant; pass
// WithVariant to override.
func Decorate[R any](text []string, fn Action[R], opts ...Option) Action[R] {
	return func() (R, error) {
		return New(textItems(text), fn, opts...).Render()
	}
}

// Decorate1 is Decorate for single-argument functions.  The returned function
// has the same signature as fn and forwards its argument at call time.
func Decorate1[A, R any](text []string, fn func(A) (R, error), opts ...Option) func(A) (R, error) {
	return func(a A) (R, error) {
		return New(textItems(text), func() (R, error) { return fn(a) }, opts...).Render()
	}
}

// Decorate2 is Decorate for two-argument functions.
func Decorate2[A, B, R any](text []string, fn func(A, B) (R, error), opts ...Option) func(A, B) (R, error) {
	return func(a A, b B) (R, error) {
		return New(textItems(text), func() (R, error) { return fn(a, b) }, opts...).Render()
	}
}

func textItems(text []string) []Item {
	items := make([]Item, 0, len(text))
	for _, t := range text {
		items = append(items, Text(t))
	}

	return items
}
