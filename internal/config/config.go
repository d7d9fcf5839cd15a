// Package config loads the optional aec.yaml that lets a course
// instructor extend the curated sets internal/analysis otherwise hard
// codes, without recompiling the tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/classroom-tools/aec/internal/analysis"
)

// FileName is the config file Load looks for in the current
// directory.
const FileName = "aec.yaml"

// Config is the on-disk shape of aec.yaml. Every field is optional;
// the zero value reproduces the original tool's behavior exactly.
type Config struct {
	// UnwantedMnemonics are additional mnemonics treated like swi/ldm/ltm
	// (spec §3's OpUnwanted family).
	UnwantedMnemonics []string `yaml:"unwantedMnemonics"`
	// ExcludedDataLinePrefixes are additional .data line prefixes the
	// string-termination check (spec §4.7) ignores, besides the three the
	// original tool hard codes.
	ExcludedDataLinePrefixes []string `yaml:"excludedDataLinePrefixes"`
	// ReportsDir overrides the default "Reports" output directory name
	// for -r/-t.
	ReportsDir string `yaml:"reportsDir"`
}

// Load reads aec.yaml from dir if present. A missing file is not an
// error -- it returns the zero Config, which analysis.Options and
// fsdir both treat as "use the stock defaults".
func Load(dir string, log logrus.FieldLogger) (Config, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.WithField("path", path).Debug("no aec.yaml found, using defaults")
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	log.WithField("path", path).Info("loaded aec.yaml")
	return cfg, nil
}

// Options converts the loaded Config into analysis.Options.
func (c Config) Options() analysis.Options {
	return analysis.Options{
		ExtraUnwantedMnemonics:   c.UnwantedMnemonics,
		ExcludedDataLinePrefixes: c.ExcludedDataLinePrefixes,
	}
}
