package applauncher

import (
	"context"

	"github.com/hashicorp/consul/api"
	"github.com/xmidt-org/retry"
	"go.uber.org/fx"
	"go.uber.org/multierr"
)

// AgentRegisterer is the strategy for registering a service with a consul
// Agent.  The *api.Agent type implements this interface.
//
// A component of this type is created by Provide, and can be decorated via
// fx.Decorate.
type AgentRegisterer interface {
	ServiceRegisterOpts(*api.AgentServiceRegistration, api.ServiceRegisterOpts) error
	ServiceDeregisterOpts(string, *api.QueryOptions) error
}

// Registrar is implemented by components responsible for registering the
// launched service with consul.
type Registrar interface {
	// Register registers the service.  This method blocks until
	// registration completes or the retry policy gives up.  If this method
	// returns an error, Deregister should be called to clean up any
	// partial registration.
	Register() error

	// Deregister removes the service registration.
	Deregister() error
}

type nopRegistrar struct{}

func (nr nopRegistrar) Register() error   { return nil }
func (nr nopRegistrar) Deregister() error { return nil }

// agentRegistrar registers the launcher's single self-registration,
// retrying according to a policy.
type agentRegistrar struct {
	registerer AgentRegisterer
	rcfg       retry.Config
	serviceID  string
	reg        *api.AgentServiceRegistration
}

func (ar *agentRegistrar) registerTask() retry.Task[bool] {
	return func(ctx context.Context) (bool, error) {
		opts := api.ServiceRegisterOpts{}.WithContext(ctx)
		err := ar.registerer.ServiceRegisterOpts(ar.reg, opts)
		return true, err
	}
}

func (ar *agentRegistrar) Register() error {
	runner, err := retry.NewRunner(
		retry.WithPolicyFactory[bool](ar.rcfg),
	)

	if err != nil {
		return err
	}

	_, err = runner.Run(context.Background(), ar.registerTask())
	return err
}

func (ar *agentRegistrar) Deregister() error {
	return ar.registerer.ServiceDeregisterOpts(ar.serviceID, &api.QueryOptions{})
}

// newAgentServiceRegistration derives the consul registration from the
// launcher configuration: the ID is name:port, and the agent polls the
// health endpoint over HTTP.
func newAgentServiceRegistration(cfg Config) *api.AgentServiceRegistration {
	serviceID := cfg.serviceID()
	return &api.AgentServiceRegistration{
		ID:      serviceID,
		Name:    cfg.ServiceName,
		Port:    cfg.Port,
		Address: cfg.Host,
		Tags:    cfg.Tags,
		Meta:    cfg.Meta,
		Check: &api.AgentServiceCheck{
			CheckID:  serviceID + ":http",
			HTTP:     cfg.checkURL(),
			Interval: cfg.CheckInterval,
			Timeout:  cfg.CheckTimeout,
		},
	}
}

// NewAgentRegistrar creates a Registrar that registers the configured
// service with the consul agent.  The given retry configuration is used to
// continue retrying registration according to a policy.  A nil registerer
// yields a no-op Registrar, which allows running without consul.
func NewAgentRegistrar(ar AgentRegisterer, rcfg retry.Config, cfg Config) (Registrar, error) {
	if ar == nil {
		return nopRegistrar{}, nil
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &agentRegistrar{
		registerer: ar,
		rcfg:       rcfg,
		serviceID:  cfg.serviceID(),
		reg:        newAgentServiceRegistration(cfg),
	}, nil
}

// BindRegistrar binds the given Registrar to the enclosing application's
// lifecycle.  On startup, Register is called.  On shutdown, Deregister is
// called.  If there is an error on startup, Deregister is also invoked for
// cleanup and its error, if any, is aggregated with the registration error.
func BindRegistrar(r Registrar, lc fx.Lifecycle) {
	lc.Append(fx.StartStopHook(
		func() (err error) {
			err = r.Register()
			if err != nil {
				err = multierr.Append(err, r.Deregister())
			}

			return
		},
		r.Deregister,
	))
}
