// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/grafana/yamlcheck/pkg/util/version"
	"github.com/grafana/yamlcheck/pkg/yamlcheck/commands"
)

var (
	logConfig       commands.LoggerConfig
	pushGateway     commands.PushGatewayConfig
	validateCommand commands.ValidateCommand
)

func main() {
	app := kingpin.New("yamlcheck", "A line-by-line syntax checker for YAML files.")

	envVars := commands.NewEnvVarsWithPrefix("YAMLCHECK")

	// Register logger first so its PreAction runs before others
	logConfig.Register(app, envVars)

	pushGateway.Register(app, envVars, &logConfig)
	validateCommand.Register(app, envVars, &logConfig, prometheus.DefaultRegisterer)

	app.Command("version", "Get the version of the yamlcheck CLI").Action(func(*kingpin.ParseContext) error {
		fmt.Fprintln(os.Stdout, version.Print("yamlcheck"))
		return nil
	})

	prometheus.MustRegister(version.NewCollector("yamlcheck"))

	_, err := app.Parse(os.Args[1:])
	pushGateway.Stop()
	kingpin.FatalIfError(err, "")
}
