// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package applauncher

import (
	"context"
	"io"

	"github.com/hashicorp/consul/api"
	"github.com/xmidt-org/retry"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func provideClient(cfg api.Config) (*api.Client, error) {
	return api.NewClient(&cfg)
}

func provideAgent(c *api.Client) *api.Agent {
	return c.Agent()
}

func provideCatalog(c *api.Client) *api.Catalog {
	return c.Catalog()
}

func provideHealth(c *api.Client) *api.Health {
	return c.Health()
}

func newAgentRegisterer(a *api.Agent) AgentRegisterer { return a }

type launcherIn struct {
	fx.In

	Config Config
	Logger *zap.Logger  `optional:"true"`
	Runner Runner       `optional:"true"`
	Retry  retry.Config `optional:"true"`
	Out    io.Writer    `name:"launcherOutput" optional:"true"`
}

// newLauncher is the internal constructor for a *Launcher component based
// on fx.App dependencies.
func newLauncher(in launcherIn) (*Launcher, error) {
	var opts []Option
	if in.Logger != nil {
		opts = append(opts, WithLogger(in.Logger))
	}

	if in.Runner != nil {
		opts = append(opts, WithRunner(in.Runner))
	}

	if in.Out != nil {
		opts = append(opts, WithOutput(in.Out))
	}

	opts = append(opts, WithRetry(in.Retry))
	return New(in.Config, opts...)
}

type registrarIn struct {
	fx.In

	Registerer AgentRegisterer
	Retry      retry.Config `optional:"true"`
	Launcher   *Launcher

	Lifecycle fx.Lifecycle
}

// newBoundRegistrar creates the launcher's Registrar and binds it to the
// application lifecycle.  The registration is derived from the launcher's
// configuration so that it carries the bound port, not the requested one.
func newBoundRegistrar(in registrarIn) (Registrar, error) {
	registrar, err := NewAgentRegistrar(in.Registerer, in.Retry, in.Launcher.Config())
	if err == nil {
		BindRegistrar(registrar, in.Lifecycle)
	}

	return registrar, err
}

type tracingIn struct {
	fx.In

	Config    Config
	Lifecycle fx.Lifecycle
}

// newBoundTracing creates the Tracing component and ties provider shutdown
// to the application lifecycle.
func newBoundTracing(in tracingIn) (*Tracing, error) {
	tracing, err := NewTracing(context.Background(), in.Config.ServiceName, in.Config.Tracing)
	if err == nil {
		BindTracing(tracing, in.Lifecycle)
	}

	return tracing, err
}

// ProvideConfig emits a consul api.Config built from the launcher Config's
// consul section.
func ProvideConfig() fx.Option {
	return fx.Provide(
		func(cfg Config) (api.Config, error) {
			return NewAPIConfig(cfg.Consul)
		},
	)
}

// Provide bootstraps the launcher components from a Config present in the
// enclosing application:
//
//   - *api.Client, *api.Agent, *api.Catalog, *api.Health
//   - AgentRegisterer
//   - *Launcher (binds the listener and renders the setup header)
//   - Registrar, bound to the application lifecycle
//   - *Tracing, shut down with the application
//
// If no api.Config is supplied, a default consul client is created; combine
// with ProvideConfig to build one from the launcher Config.  A *zap.Logger,
// Runner, or retry.Config in the application are picked up as optional
// launcher dependencies.
func Provide() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				provideClient,
				fx.ParamTags(`optional:"true"`),
			),
			provideAgent,
			provideCatalog,
			provideHealth,
			newAgentRegisterer,
			newLauncher,
			newBoundRegistrar,
			newBoundTracing,
		),
	)
}

// WithZapLogger routes fx's own event log through the application's zap
// logger.
func WithZapLogger() fx.Option {
	return fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: logger}
	})
}
