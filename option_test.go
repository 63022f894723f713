// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package applauncher

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type OptionSuite struct {
	suite.Suite
}

func (suite *OptionSuite) testAsOptionWithOption() {
	suite.Run("Success", func() {
		opt := Option(func(l *Launcher) error {
			l.width = 40
			return nil
		})

		var l Launcher
		err := AsOption(opt)(&l)
		suite.NoError(err)
		suite.Equal(40, l.width)
	})

	suite.Run("Fail", func() {
		expectedErr := errors.New("expected")
		opt := Option(func(l *Launcher) error {
			return expectedErr
		})

		var l Launcher
		err := AsOption(opt)(&l)
		suite.ErrorIs(err, expectedErr)
	})
}

func (suite *OptionSuite) testAsOptionWithClosure() {
	opt := func(l *Launcher) error {
		l.width = 40
		return nil
	}

	var l Launcher
	err := AsOption(opt)(&l)
	suite.NoError(err)
	suite.Equal(40, l.width)
}

func (suite *OptionSuite) testAsOptionNoError() {
	opt := func(l *Launcher) {
		l.width = 40
	}

	var l Launcher
	err := AsOption(opt)(&l)
	suite.NoError(err)
	suite.Equal(40, l.width)
}

func (suite *OptionSuite) testAsOptionCustomType() {
	type TestFunc func(*Launcher)
	var opt TestFunc = func(l *Launcher) {
		l.width = 40
	}

	var l Launcher
	err := AsOption(opt)(&l)
	suite.NoError(err)
	suite.Equal(40, l.width)
}

func (suite *OptionSuite) TestAsOption() {
	suite.Run("WithOption", suite.testAsOptionWithOption)
	suite.Run("WithClosure", suite.testAsOptionWithClosure)
	suite.Run("NoError", suite.testAsOptionNoError)
	suite.Run("CustomType", suite.testAsOptionCustomType)
}

func (suite *OptionSuite) TestWithOutput() {
	var (
		out bytes.Buffer
		l   Launcher
	)

	suite.NoError(WithOutput(&out)(&l))
	suite.Same(&out, l.out)
}

func (suite *OptionSuite) TestWithWidth() {
	var l Launcher
	suite.NoError(WithWidth(72)(&l))
	suite.Equal(72, l.width)
}

func (suite *OptionSuite) TestWithRunner() {
	var l Launcher
	r := HTTPRunner{}

	suite.NoError(WithRunner(r)(&l))
	suite.Equal(r, l.runner)
}

func (suite *OptionSuite) TestWithLogger() {
	logger := zap.NewNop()

	var l Launcher
	suite.NoError(WithLogger(logger)(&l))
	suite.Same(logger, l.logger)
}

func TestOption(t *testing.T) {
	suite.Run(t, new(OptionSuite))
}
