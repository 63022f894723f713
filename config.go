// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package applauncher

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/consul/api"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
)

// Defaults applied by Config.withDefaults.  The check interval and timeout
// use consul's duration string format, since that is what the agent check
// API accepts.
const (
	DefaultHealthPath    = "/health"
	DefaultCheckInterval = "30s"
	DefaultCheckTimeout  = "3s"
)

// BasicAuthConfig holds the HTTP basic authorization credentials for consul.
type BasicAuthConfig struct {
	// UserName is the HTTP basic auth user name.
	UserName string `json:"userName" yaml:"userName" mapstructure:"userName" toml:"userName"`

	// Password is the HTTP basic auth password.
	Password string `json:"password" yaml:"password" mapstructure:"password" toml:"password"`
}

// ConsulConfig is an easily unmarshalable configuration used to create a
// consul api.Config.  Fields in this struct mirror those of api.Config.
type ConsulConfig struct {
	// Scheme is the URI scheme of the consul server.
	Scheme string `json:"scheme" yaml:"scheme" mapstructure:"scheme" toml:"scheme"`

	// Address is the address of the consul server, including port.
	Address string `json:"address" yaml:"address" mapstructure:"address" toml:"address"`

	// Datacenter is the optional datacenter to use when interacting with
	// the agent.  If unset, the datacenter of the agent is used.
	Datacenter string `json:"datacenter" yaml:"datacenter" mapstructure:"datacenter" toml:"datacenter"`

	// Token is a per request ACL token.  If unset, the agent's token is used.
	Token string `json:"token" yaml:"token" mapstructure:"token" toml:"token"`

	// TokenFile is a file containing the per request ACL token.
	TokenFile string `json:"tokenFile" yaml:"tokenFile" mapstructure:"tokenFile" toml:"tokenFile"`

	// Namespace is the namespace to send to the agent in requests where no
	// namespace is set.
	Namespace string `json:"namespace" yaml:"namespace" mapstructure:"namespace" toml:"namespace"`

	// BasicAuth defines the HTTP basic credentials for interacting with
	// the agent.
	BasicAuth BasicAuthConfig `json:"basicAuth" yaml:"basicAuth" mapstructure:"basicAuth" toml:"basicAuth"`
}

// NewAPIConfig constructs a consul client api.Config from a ConsulConfig.
func NewAPIConfig(src ConsulConfig) (dst api.Config, err error) {
	dst = api.Config{
		Scheme:     src.Scheme,
		Address:    src.Address,
		Datacenter: src.Datacenter,
		Token:      src.Token,
		TokenFile:  src.TokenFile,
		Namespace:  src.Namespace,
	}

	if len(src.BasicAuth.UserName) > 0 {
		dst.HttpAuth = &api.HttpBasicAuth{
			Username: src.BasicAuth.UserName,
			Password: src.BasicAuth.Password,
		}
	}

	return
}

// Config describes the service being launched.
type Config struct {
	// ServiceName is the name the service registers under.  Required.
	ServiceName string `json:"serviceName" yaml:"serviceName" mapstructure:"serviceName" toml:"serviceName"`

	// Host is the address the service binds and advertises.
	Host string `json:"host" yaml:"host" mapstructure:"host" toml:"host"`

	// Port is the port to bind.  A zero port binds an ephemeral port, and
	// the launcher rewrites this field with the bound port.
	Port int `json:"port" yaml:"port" mapstructure:"port" toml:"port"`

	// HealthPath is the route of the consul health check endpoint.
	// Defaults to "/health".
	HealthPath string `json:"healthPath" yaml:"healthPath" mapstructure:"healthPath" toml:"healthPath"`

	// CheckInterval is the interval between agent health checks, in consul
	// duration format.  Defaults to "30s".
	CheckInterval string `json:"checkInterval" yaml:"checkInterval" mapstructure:"checkInterval" toml:"checkInterval"`

	// CheckTimeout is the timeout of each agent health check, in consul
	// duration format.  Defaults to "3s".
	CheckTimeout string `json:"checkTimeout" yaml:"checkTimeout" mapstructure:"checkTimeout" toml:"checkTimeout"`

	// Tags are attached to the consul service registration.
	Tags []string `json:"tags" yaml:"tags" mapstructure:"tags" toml:"tags"`

	// Meta is attached to the consul service registration.
	Meta map[string]string `json:"meta" yaml:"meta" mapstructure:"meta" toml:"meta"`

	// Consul configures the consul client.
	Consul ConsulConfig `json:"consul" yaml:"consul" mapstructure:"consul" toml:"consul"`

	// Tracing configures the optional OpenTelemetry collaborator.
	Tracing TracingConfig `json:"tracing" yaml:"tracing" mapstructure:"tracing" toml:"tracing"`
}

func (c Config) withDefaults() Config {
	if len(c.HealthPath) == 0 {
		c.HealthPath = DefaultHealthPath
	}

	if len(c.CheckInterval) == 0 {
		c.CheckInterval = DefaultCheckInterval
	}

	if len(c.CheckTimeout) == 0 {
		c.CheckTimeout = DefaultCheckTimeout
	}

	return c
}

// serviceID is the registration identifier, derived from the service name
// and the bound port.
func (c Config) serviceID() string {
	return fmt.Sprintf("%s:%d", c.ServiceName, c.Port)
}

// checkURL is the address the consul agent polls for health.
func (c Config) checkURL() string {
	return fmt.Sprintf("http://%s:%d%s", c.Host, c.Port, c.HealthPath)
}

// Validate checks the configuration, aggregating every problem found.
func (c Config) Validate() (err error) {
	if len(c.ServiceName) == 0 {
		err = multierr.Append(err, errors.New("no service name supplied"))
	}

	if c.Port < 0 || c.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("invalid port: %d", c.Port))
	}

	if len(c.HealthPath) > 0 && !strings.HasPrefix(c.HealthPath, "/") {
		err = multierr.Append(err, fmt.Errorf("health path must begin with a slash: %s", c.HealthPath))
	}

	return
}

// LoadConfig reads a launcher Config from a TOML file.  Defaults are not
// applied here; New applies them.
func LoadConfig(path string) (cfg Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	err = toml.Unmarshal(data, &cfg)
	return
}
