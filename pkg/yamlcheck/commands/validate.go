// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/grafana/dskit/concurrency"
	"github.com/grafana/dskit/multierror"
	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/grafana/yamlcheck/pkg/loader"
	"github.com/grafana/yamlcheck/pkg/validator"
	"github.com/grafana/yamlcheck/pkg/yamlcheck/config"
)

const (
	resultValid     = "valid"
	resultInvalid   = "invalid"
	resultLoadError = "load_error"
)

// ValidateCommand checks the syntax of files and prints one result per file.
type ValidateCommand struct {
	files      []string
	configFile string
	extensions  []string
	highlight   bool
	concurrency int

	fs     afero.Fs
	out    io.Writer
	logCfg *LoggerConfig

	validationsTotal        *prometheus.CounterVec
	lastValidationTimestamp prometheus.Gauge
}

// Register the validate command and its flags with the kingpin application.
func (c *ValidateCommand) Register(app *kingpin.Application, envVars EnvVarNames, logCfg *LoggerConfig, reg prometheus.Registerer) {
	c.logCfg = logCfg

	cmd := app.Command("validate", "Check the syntax of YAML files line by line.").
		PreAction(func(k *kingpin.ParseContext) error { return c.setup(k, reg) }).
		Action(c.run)

	cmd.Arg("files", "Files to validate. Defaults to the files of the config file, or "+config.DefaultFile+".").
		StringsVar(&c.files)
	cmd.Flag("config.file", "Optional YAML configuration file.").
		Envar(envVars.ConfigFile).StringVar(&c.configFile)
	cmd.Flag("extension", "Accepted file extension, may be repeated. Overrides the config file. Defaults to "+strings.Join(loader.DefaultExtensions, ", ")+".").
		Envar(envVars.Extensions).StringsVar(&c.extensions)
	cmd.Flag("highlight", "Print the offending line of invalid files with syntax highlighting.").
		Envar(envVars.Highlight).BoolVar(&c.highlight)
	cmd.Flag("concurrency", "Maximum number of files loaded and validated at the same time.").
		Default("4").IntVar(&c.concurrency)
}

func (c *ValidateCommand) setup(_ *kingpin.ParseContext, reg prometheus.Registerer) error {
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.out == nil {
		c.out = os.Stdout
	}

	c.validationsTotal = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Namespace: "yamlcheck",
		Name:      "validations_total",
		Help:      "Total number of validated files by result.",
	}, []string{"result"})
	c.lastValidationTimestamp = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Namespace: "yamlcheck",
		Name:      "last_validation_timestamp_seconds",
		Help:      "Unix timestamp of the last completed validate run.",
	})

	return nil
}

// fileResult is the outcome of one file. loadErr and validationErr are never both set.
type fileResult struct {
	lines         int
	loadErr       error
	validationErr error
}

func (c *ValidateCommand) run(_ *kingpin.ParseContext) error {
	logger := c.logCfg.Logger()

	cfg, err := c.config()
	if err != nil {
		return err
	}

	files := c.files
	if len(files) == 0 {
		files = cfg.Files
	}
	if len(files) == 0 {
		files = []string{config.DefaultFile}
	}

	var (
		ld      = loader.New(c.fs, cfg.Extensions)
		v       = validator.New(logger)
		results = make([]fileResult, len(files))
	)
	// Files are independent, a failure never cancels the others.
	err = concurrency.ForEachJob(context.Background(), len(files), max(c.concurrency, 1), func(_ context.Context, idx int) error {
		lines, err := ld.Load(files[idx])
		if err != nil {
			results[idx].loadErr = err
			return nil
		}
		results[idx].lines = len(lines)
		results[idx].validationErr = v.Validate(validator.NewLines(lines))
		return nil
	})
	if err != nil {
		return err
	}

	highlight := (cfg.Highlight || c.highlight) && c.colorOutput()
	errs := multierror.New()
	for idx, file := range files {
		res := results[idx]
		if res.loadErr != nil {
			level.Error(logger).Log("msg", "failed to load file", "file", file, "err", res.loadErr)
			c.validationsTotal.WithLabelValues(resultLoadError).Inc()
			errs.Add(res.loadErr)
			continue
		}

		if err := c.print(file, len(files) > 1, res.validationErr, highlight, logger); err != nil {
			return err
		}

		if res.validationErr != nil {
			c.validationsTotal.WithLabelValues(resultInvalid).Inc()
		} else {
			c.validationsTotal.WithLabelValues(resultValid).Inc()
		}
		level.Debug(logger).Log("msg", "validated file", "file", file, "lines", res.lines, "valid", res.validationErr == nil)
	}

	c.lastValidationTimestamp.SetToCurrentTime()
	return errs.Err()
}

// colorOutput reports whether escape sequences can be written to the output.
// Only a file that is not a terminal disables them.
func (c *ValidateCommand) colorOutput() bool {
	f, ok := c.out.(*os.File)
	return !ok || term.IsTerminal(int(f.Fd()))
}

func (c *ValidateCommand) config() (config.Config, error) {
	cfg := config.Default()
	if c.configFile != "" {
		var err error
		if cfg, err = config.Load(c.fs, c.configFile); err != nil {
			return cfg, err
		}
	}

	if len(c.extensions) > 0 {
		cfg.Extensions = c.extensions
		if err := cfg.Validate(); err != nil {
			return cfg, pkgerrors.Wrap(err, "invalid --extension")
		}
	}
	return cfg, nil
}

func (c *ValidateCommand) print(file string, prefixed bool, verr error, highlight bool, logger log.Logger) error {
	result := validator.Result(verr)
	if prefixed {
		result = file + ": " + result
	}
	if _, err := fmt.Fprintln(c.out, result); err != nil {
		return pkgerrors.Wrap(err, "write result")
	}

	var lineErr *validator.Error
	if !highlight || !errors.As(verr, &lineErr) {
		return nil
	}

	if _, err := fmt.Fprintf(c.out, "%4d | ", lineErr.Line.Number); err != nil {
		return pkgerrors.Wrap(err, "write result")
	}
	src := strings.TrimRight(lineErr.Line.Text, "\r\n") + "\n"
	if err := quick.Highlight(c.out, src, "yaml", "terminal", "swapoff"); err != nil {
		// Fall back to the plain line.
		level.Warn(logger).Log("msg", "failed to highlight line", "file", file, "err", err)
		_, err = io.WriteString(c.out, src)
		return pkgerrors.Wrap(err, "write result")
	}
	return nil
}
