// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"net/http"
	"net/url"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushGatewayConfig pushes the metrics gathered during a run to a Prometheus push gateway
// when the CLI exits.
type PushGatewayConfig struct {
	Endpoint *url.URL
	JobName  string
	Timeout  time.Duration

	gatherer prometheus.Gatherer
	client   push.HTTPDoer
	logCfg   *LoggerConfig
}

func (p *PushGatewayConfig) Register(app *kingpin.Application, envVars EnvVarNames, logCfg *LoggerConfig) {
	p.logCfg = logCfg

	app.Flag("push-gateway.endpoint", "URL of the Prometheus push gateway to push metrics to on exit. Disabled when empty.").
		Envar(envVars.PushGatewayEndpoint).URLVar(&p.Endpoint)
	app.Flag("push-gateway.job", "Job name used when pushing metrics to the push gateway.").
		Envar(envVars.PushGatewayJob).Default("yamlcheck").StringVar(&p.JobName)
	app.Flag("push-gateway.timeout", "Timeout of the push to the push gateway.").
		Default("10s").DurationVar(&p.Timeout)
}

// Stop pushes the gathered metrics if an endpoint is configured. Failures are logged,
// they never change the exit status of the CLI.
func (p *PushGatewayConfig) Stop() {
	if p.Endpoint == nil {
		return
	}

	logger := p.logCfg.Logger()
	if err := p.push(); err != nil {
		level.Warn(logger).Log("msg", "failed to push metrics to the push gateway", "endpoint", p.Endpoint.Redacted(), "err", err)
		return
	}
	level.Debug(logger).Log("msg", "pushed metrics to the push gateway", "endpoint", p.Endpoint.Redacted(), "job", p.JobName)
}

func (p *PushGatewayConfig) push() error {
	gatherer := p.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	client := p.client
	if client == nil {
		client = &http.Client{Timeout: p.Timeout}
	}

	err := push.New(p.Endpoint.String(), p.JobName).
		Gatherer(gatherer).
		Client(client).
		Push()
	return errors.Wrap(err, "push metrics")
}
