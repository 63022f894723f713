// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package applauncher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type RunnerSuite struct {
	suite.Suite
}

func (suite *RunnerSuite) TestHTTPRunner() {
	l, port, err := Listen("127.0.0.1", 0)
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- HTTPRunner{ShutdownTimeout: time.Second}.Run(ctx, l, http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				io.WriteString(w, "hello")
			},
		))
	}()

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/", port))
	suite.Require().NoError(err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	suite.Require().NoError(err)
	suite.Equal("hello", string(body))

	cancel()
	suite.NoError(<-done)
}

func (suite *RunnerSuite) TestHTTPRunnerListenerClosed() {
	l, _, err := Listen("127.0.0.1", 0)
	suite.Require().NoError(err)
	l.Close()

	err = HTTPRunner{}.Run(context.Background(), l, http.NotFoundHandler())
	suite.Error(err)
}

func (suite *RunnerSuite) TestExecRunner() {
	l, port, err := Listen("127.0.0.1", 0)
	suite.Require().NoError(err)

	var out bytes.Buffer
	runner := ExecRunner{
		Argv:   []string{"echo", "{host}:{port}"},
		Host:   "127.0.0.1",
		Stdout: &out,
	}

	suite.Require().NoError(runner.Run(context.Background(), l, nil))
	suite.Equal("127.0.0.1:"+strconv.Itoa(port)+"\n", out.String())
}

func (suite *RunnerSuite) TestExecRunnerNoCommand() {
	l, _, err := Listen("127.0.0.1", 0)
	suite.Require().NoError(err)
	defer l.Close()

	suite.Error(ExecRunner{}.Run(context.Background(), l, nil))
}

func (suite *RunnerSuite) TestRunnerFunc() {
	called := false
	var r Runner = RunnerFunc(func(context.Context, net.Listener, http.Handler) error {
		called = true
		return nil
	})

	suite.NoError(r.Run(context.Background(), nil, nil))
	suite.True(called)
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(RunnerSuite))
}
