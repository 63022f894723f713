// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package applauncher

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/xmidt-org/retry"
	"go.uber.org/zap"

	"github.com/patisson-company/applauncher/block"
)

// Launcher binds the service listener and walks the setup steps, narrating
// each one on the console as a bordered block.
type Launcher struct {
	cfg      Config
	listener net.Listener
	health   *Health
	runner   Runner
	logger   *zap.Logger
	retryCfg retry.Config
	out      io.Writer
	width    int
}

// New binds the listener for cfg and renders the setup header.  The
// configuration's Port field is rewritten with the bound port, which matters
// when an ephemeral port was requested.
func New(cfg Config, opts ...Option) (*Launcher, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Launcher{
		cfg:    cfg,
		health: NewHealth(),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	if l.logger == nil {
		l.logger = zap.NewNop()
	}

	if l.runner == nil {
		l.runner = HTTPRunner{}
	}

	listener, port, err := Listen(cfg.Host, cfg.Port)
	if err != nil {
		return nil, err
	}

	l.listener = listener
	l.cfg.Port = port

	if _, err := block.New(
		[]block.Item{
			block.Text("App Launcher: Start setting up"),
			block.Text(fmt.Sprintf("%s:%d/%s", l.cfg.Host, port, l.cfg.ServiceName)),
		},
		block.None,
		l.blockOpts(block.WithVariant(block.Header))...,
	).Render(); err != nil {
		listener.Close()
		return nil, err
	}

	l.logger.Info("listener bound",
		zap.String("service", l.cfg.ServiceName),
		zap.String("host", l.cfg.Host),
		zap.Int("port", port),
	)

	return l, nil
}

// Config returns the launcher configuration with the bound port filled in.
func (l *Launcher) Config() Config { return l.cfg }

// Port returns the bound port.
func (l *Launcher) Port() int { return l.cfg.Port }

// Health returns the mutable health state served at the health path.
func (l *Launcher) Health() *Health { return l.health }

// Close releases the listener without running the application.  Run makes
// this unnecessary; it is intended for abandoning a partially set up
// launcher.
func (l *Launcher) Close() error { return l.listener.Close() }

func (l *Launcher) blockOpts(opts ...block.Option) []block.Option {
	if l.width > 0 {
		opts = append(opts, block.WithWidth(l.width))
	}

	if l.out != nil {
		opts = append(opts, block.WithOutput(l.out))
	}

	return opts
}

// ConsulRegister registers the service with the consul agent, rendering the
// registration step as a console block.  Registration failures propagate to
// the caller.  The returned Registrar can deregister the service on
// shutdown.
func (l *Launcher) ConsulRegister(agent AgentRegisterer) (Registrar, error) {
	registrar, err := NewAgentRegistrar(agent, l.retryCfg, l.cfg)
	if err != nil {
		return nil, err
	}

	serviceID := l.cfg.serviceID()
	if _, err := block.New(
		[]block.Item{
			block.Text("Registration in Consul"),
			block.Text(l.cfg.Consul.Address),
			block.Text(fmt.Sprintf("service_id=%s, port=%d, host=%s", serviceID, l.cfg.Port, l.cfg.Host)),
			block.Text(fmt.Sprintf("check_interval=%s, check_timeout=%s", l.cfg.CheckInterval, l.cfg.CheckTimeout)),
			block.Text("check path: "+l.cfg.checkURL()),
		},
		func() (struct{}, error) {
			return struct{}{}, registrar.Register()
		},
		l.blockOpts()...,
	).Render(); err != nil {
		return nil, err
	}

	l.logger.Info("registered with consul", zap.String("serviceID", serviceID))
	return registrar, nil
}

// SetupTracing wires the optional OpenTelemetry collaborator, rendering the
// step as a console block.  Disabled tracing still renders the block and
// yields an inert component.
func (l *Launcher) SetupTracing(ctx context.Context) (*Tracing, error) {
	var tracing *Tracing
	if _, err := block.New(
		[]block.Item{
			block.Text("Connecting to the trace collector"),
		},
		func() (struct{}, error) {
			var err error
			tracing, err = NewTracing(ctx, l.cfg.ServiceName, l.cfg.Tracing)
			return struct{}{}, err
		},
		l.blockOpts()...,
	).Render(); err != nil {
		return nil, err
	}

	return tracing, nil
}

// Run renders the completion footer and hands the listener to the runner.
// The health endpoint is mounted at the configured health path; all other
// requests go to handler.  Run blocks until the runner returns.
func (l *Launcher) Run(ctx context.Context, handler http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle(l.cfg.HealthPath, l.health.Handler())
	if handler != nil {
		mux.Handle("/", handler)
	}

	_, err := block.New(
		[]block.Item{
			block.Text("App Launcher: The setup is completed successfully"),
			block.Text("Server run"),
		},
		func() (struct{}, error) {
			return struct{}{}, l.runner.Run(ctx, l.listener, mux)
		},
		l.blockOpts(block.WithVariant(block.Footer))...,
	).Render()

	return err
}
