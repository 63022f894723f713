// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package applauncher

import (
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/retry"
	"go.uber.org/fx/fxtest"
)

// fakeAgent records registration traffic and can be primed to fail.
type fakeAgent struct {
	registered   []*api.AgentServiceRegistration
	deregistered []string

	registerErr   error
	deregisterErr error
}

func (f *fakeAgent) ServiceRegisterOpts(reg *api.AgentServiceRegistration, _ api.ServiceRegisterOpts) error {
	if f.registerErr != nil {
		return f.registerErr
	}

	f.registered = append(f.registered, reg)
	return nil
}

func (f *fakeAgent) ServiceDeregisterOpts(serviceID string, _ *api.QueryOptions) error {
	f.deregistered = append(f.deregistered, serviceID)
	return f.deregisterErr
}

type RegistrarSuite struct {
	suite.Suite
}

func (suite *RegistrarSuite) config() Config {
	return Config{
		ServiceName: "users",
		Host:        "127.0.0.1",
		Port:        8080,
		Tags:        []string{"api"},
	}
}

func (suite *RegistrarSuite) TestRegister() {
	agent := new(fakeAgent)
	registrar, err := NewAgentRegistrar(agent, retry.Config{}, suite.config())
	suite.Require().NoError(err)

	suite.NoError(registrar.Register())
	suite.Require().Len(agent.registered, 1)

	reg := agent.registered[0]
	suite.Equal("users:8080", reg.ID)
	suite.Equal("users", reg.Name)
	suite.Equal(8080, reg.Port)
	suite.Equal("127.0.0.1", reg.Address)
	suite.Equal([]string{"api"}, reg.Tags)

	suite.Require().NotNil(reg.Check)
	suite.Equal("users:8080:http", reg.Check.CheckID)
	suite.Equal("http://127.0.0.1:8080/health", reg.Check.HTTP)
	suite.Equal(DefaultCheckInterval, reg.Check.Interval)
	suite.Equal(DefaultCheckTimeout, reg.Check.Timeout)
}

func (suite *RegistrarSuite) TestRegisterError() {
	expectedErr := errors.New("expected")
	agent := &fakeAgent{registerErr: expectedErr}

	registrar, err := NewAgentRegistrar(agent, retry.Config{}, suite.config())
	suite.Require().NoError(err)
	suite.ErrorIs(registrar.Register(), expectedErr)
}

func (suite *RegistrarSuite) TestDeregister() {
	agent := new(fakeAgent)
	registrar, err := NewAgentRegistrar(agent, retry.Config{}, suite.config())
	suite.Require().NoError(err)

	suite.NoError(registrar.Deregister())
	suite.Equal([]string{"users:8080"}, agent.deregistered)
}

func (suite *RegistrarSuite) TestNilRegisterer() {
	registrar, err := NewAgentRegistrar(nil, retry.Config{}, suite.config())
	suite.Require().NoError(err)

	// running without consul is allowed
	suite.NoError(registrar.Register())
	suite.NoError(registrar.Deregister())
}

func (suite *RegistrarSuite) TestInvalidConfig() {
	_, err := NewAgentRegistrar(new(fakeAgent), retry.Config{}, Config{})
	suite.Error(err)
}

func (suite *RegistrarSuite) TestBindRegistrar() {
	agent := new(fakeAgent)
	registrar, err := NewAgentRegistrar(agent, retry.Config{}, suite.config())
	suite.Require().NoError(err)

	lc := fxtest.NewLifecycle(suite.T())
	BindRegistrar(registrar, lc)

	lc.RequireStart()
	suite.Len(agent.registered, 1)
	suite.Empty(agent.deregistered)

	lc.RequireStop()
	suite.Equal([]string{"users:8080"}, agent.deregistered)
}

func (suite *RegistrarSuite) TestBindRegistrarStartFailure() {
	expectedErr := errors.New("expected")
	agent := &fakeAgent{registerErr: expectedErr}

	registrar, err := NewAgentRegistrar(agent, retry.Config{}, suite.config())
	suite.Require().NoError(err)

	lc := fxtest.NewLifecycle(suite.T())
	BindRegistrar(registrar, lc)

	suite.ErrorIs(lc.Start(context.Background()), expectedErr)

	// cleanup deregistration happened despite the failed start
	suite.Equal([]string{"users:8080"}, agent.deregistered)
}

func TestRegistrar(t *testing.T) {
	suite.Run(t, new(RegistrarSuite))
}
