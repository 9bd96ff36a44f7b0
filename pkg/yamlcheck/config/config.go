// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/grafana/dskit/multierror"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/grafana/yamlcheck/pkg/loader"
)

// DefaultFile is validated when neither the command line nor the config file name any file.
const DefaultFile = "sample.yaml"

// Config is the optional configuration file of the yamlcheck CLI.
type Config struct {
	// Extensions is the allow-list of file extensions, without the leading dot.
	Extensions []string `yaml:"extensions"`
	Files      []string `yaml:"files"`
	Highlight  bool     `yaml:"highlight"`
}

func Default() Config {
	return Config{
		Extensions: append([]string(nil), loader.DefaultExtensions...),
		Files:      []string{DefaultFile},
	}
}

// Load reads the config file at path, starting from Default. Fields missing from
// the file keep their default value.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config file %s", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, errors.Wrapf(err, "parse config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config file %s", path)
	}
	return cfg, nil
}

// Validate reports every problem of the config at once.
func (c Config) Validate() error {
	errs := multierror.New()

	if len(c.Extensions) == 0 {
		errs.Add(errors.New("at least one extension is required"))
	}
	for i, ext := range c.Extensions {
		ext = strings.TrimPrefix(ext, ".")
		switch {
		case ext == "":
			errs.Add(fmt.Errorf("extension %d is empty", i))
		case strings.ContainsAny(ext, `./\`):
			errs.Add(fmt.Errorf("extension %q must not contain a path separator or a dot", ext))
		}
	}
	for i, f := range c.Files {
		if strings.TrimSpace(f) == "" {
			errs.Add(fmt.Errorf("file %d is empty", i))
		}
	}

	return errs.Err()
}
