// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package applauncher

import (
	"io"
	"reflect"

	"github.com/xmidt-org/retry"
	"go.uber.org/zap"
)

// Option is a functional option for tailoring a Launcher prior to binding
// its listener.
type Option func(*Launcher) error

var (
	optionType        = reflect.TypeOf(Option(nil))
	noErrorOptionType = reflect.TypeOf((func(*Launcher))(nil))
)

// OptionFunc represents the types of functions that can be coerced into Options.
type OptionFunc interface {
	~func(*Launcher) error | ~func(*Launcher)
}

// AsOption coerces a function into an Option.
func AsOption[OF OptionFunc](of OF) Option {
	// trivial conversions
	switch oft := any(of).(type) {
	case Option:
		return oft

	case func(*Launcher):
		return func(l *Launcher) error {
			oft(l)
			return nil
		}
	}

	// now we convert to the underlying type
	ofv := reflect.ValueOf(of)
	if ofv.CanConvert(optionType) {
		return ofv.Convert(optionType).Interface().(Option)
	}

	// there are only (2) types, so the other type must be it
	f := ofv.Convert(noErrorOptionType).Interface().(func(*Launcher))
	return func(l *Launcher) error {
		f(l)
		return nil
	}
}

// WithOutput redirects the launcher's console blocks away from os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(l *Launcher) error {
		l.out = w
		return nil
	}
}

// WithWidth fixes the console block width instead of querying the terminal.
// Useful for CI logs and tests.
func WithWidth(width int) Option {
	return func(l *Launcher) error {
		l.width = width
		return nil
	}
}

// WithRunner overrides the runner used by Run.  The default is an in-process
// HTTPRunner.
func WithRunner(r Runner) Option {
	return func(l *Launcher) error {
		l.runner = r
		return nil
	}
}

// WithLogger attaches a zap logger to the launcher.  The default discards
// all records.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Launcher) error {
		l.logger = logger
		return nil
	}
}

// WithRetry sets the retry policy used for consul registration.  The zero
// configuration performs a single attempt.
func WithRetry(rcfg retry.Config) Option {
	return func(l *Launcher) error {
		l.retryCfg = rcfg
		return nil
	}
}
