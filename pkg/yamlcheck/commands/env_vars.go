// SPDX-License-Identifier: AGPL-3.0-only

package commands

type EnvVarNames struct {
	ConfigFile          string
	Extensions          string
	Highlight           string
	LogFormat           string
	LogLevel            string
	PushGatewayEndpoint string
	PushGatewayJob      string
}

func NewEnvVarsWithPrefix(prefix string) EnvVarNames {
	const (
		configFile          = "CONFIG_FILE"
		extensions          = "EXTENSIONS"
		highlight           = "HIGHLIGHT"
		logFormat           = "LOG_FORMAT"
		logLevel            = "LOG_LEVEL"
		pushGatewayEndpoint = "PUSH_GATEWAY_ENDPOINT"
		pushGatewayJob      = "PUSH_GATEWAY_JOB"
	)

	if len(prefix) > 0 && prefix[len(prefix)-1] != '_' {
		prefix = prefix + "_"
	}

	return EnvVarNames{
		ConfigFile:          prefix + configFile,
		Extensions:          prefix + extensions,
		Highlight:           prefix + highlight,
		LogFormat:           prefix + logFormat,
		LogLevel:            prefix + logLevel,
		PushGatewayEndpoint: prefix + pushGatewayEndpoint,
		PushGatewayJob:      prefix + pushGatewayJob,
	}
}
