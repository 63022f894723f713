// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package applauncher

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Runner starts the application on a bound listener.  It is the transport
// specific collaborator the launcher hands off to after setup, resolved at
// composition time rather than on first use.
type Runner interface {
	// Run serves the application until ctx is canceled or the server
	// fails.  Implementations own the listener once Run is called.
	Run(ctx context.Context, l net.Listener, handler http.Handler) error
}

// RunnerFunc is an adapter allowing ordinary functions to be used as Runners.
type RunnerFunc func(context.Context, net.Listener, http.Handler) error

// Run calls the underlying function.
func (f RunnerFunc) Run(ctx context.Context, l net.Listener, handler http.Handler) error {
	return f(ctx, l, handler)
}

// HTTPRunner serves the application in-process with net/http.  This is the
// default runner.
type HTTPRunner struct {
	// ShutdownTimeout bounds graceful shutdown once ctx is canceled.
	// Defaults to five seconds.
	ShutdownTimeout time.Duration
}

func (r HTTPRunner) Run(ctx context.Context, l net.Listener, handler http.Handler) error {
	srv := &http.Server{Handler: handler}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(l)
	}()

	select {
	case err := <-serveErr:
		return err

	case <-ctx.Done():
		timeout := r.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}

		sctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}

// ExecRunner releases the bound port and launches a worker subprocess that
// claims it, in the manner of a preforking server.  The placeholders {host}
// and {port} in Argv are substituted before launch.
type ExecRunner struct {
	// Argv is the worker command line.  Required.
	Argv []string

	// Host replaces the {host} placeholder.
	Host string

	// Stdout and Stderr receive the worker's output.  They default to the
	// launcher process's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, l net.Listener, _ http.Handler) error {
	if len(r.Argv) == 0 {
		return errors.New("no worker command supplied")
	}

	port := ReleasePort(l)

	argv := make([]string, len(r.Argv))
	for i, arg := range r.Argv {
		arg = strings.ReplaceAll(arg, "{host}", r.Host)
		arg = strings.ReplaceAll(arg, "{port}", strconv.Itoa(port))
		argv[i] = arg
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}

	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	return cmd.Run()
}
