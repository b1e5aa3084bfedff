// Package config holds the settings of an evaluation run and the review
// server.
package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/cell"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/dataset"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. ENTRYEVAL_OUTPUT.
const EnvPrefix = "ENTRYEVAL"

// Config is read from defaults, then an optional YAML file, then the
// environment. Commands apply their flags last.
type Config struct {
	// Name labels the run in manifests and the results store.
	Name string `yaml:"name" split_words:"true"`

	Entered              []string `yaml:"entered" split_words:"true"`
	GroundTruth          string   `yaml:"ground_truth" split_words:"true"`
	GroundTruthDelimiter string   `yaml:"ground_truth_delimiter" split_words:"true"`
	NullTokens           []string `yaml:"null_tokens" split_words:"true"`

	Output string `yaml:"output" split_words:"true"`

	// Optional sinks, off when empty
	XLSX        string `yaml:"xlsx" split_words:"true"`
	Parquet     string `yaml:"parquet" split_words:"true"`
	ManifestDir string `yaml:"manifest_dir" split_words:"true"`
	DB          string `yaml:"db" split_words:"true"`

	Port string `yaml:"port" split_words:"true"`

	Columns Columns `yaml:"columns" ignored:"true"`
}

// Columns renames the input table headers.
type Columns struct {
	Entered     dataset.EnteredColumns     `yaml:"entered"`
	GroundTruth dataset.GroundTruthColumns `yaml:"ground_truth"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Name: "evaluation",
		Entered: []string{
			"data/nid-data-entry-results-person1.csv",
			"data/nid-data-entry-results-person2.csv",
		},
		GroundTruth:          "data/nid-data-ground-truth.tsv",
		GroundTruthDelimiter: `\t`,
		NullTokens:           append([]string(nil), cell.DefaultNullTokens...),
		Output:               "data/evaluation_results.csv",
		Port:                 "8888",
		Columns: Columns{
			Entered:     dataset.DefaultEnteredColumns(),
			GroundTruth: dataset.DefaultGroundTruthColumns(),
		},
	}
}

// Load builds the configuration. path may be empty; a named file that does
// not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings no run could use.
func (c *Config) Validate() error {
	var errs []error
	if c.GroundTruth == "" {
		errs = append(errs, errors.New("ground truth path is required"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if _, err := c.Delimiter(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Delimiter returns the ground-truth cell separator. "tab" and `\t` both
// mean a tab.
func (c *Config) Delimiter() (rune, error) {
	switch c.GroundTruthDelimiter {
	case "", `\t`, "tab", "\t":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(c.GroundTruthDelimiter)
	if size != len(c.GroundTruthDelimiter) || r == utf8.RuneError || r == '"' || r == '\n' || r == '\r' {
		return 0, fmt.Errorf("invalid ground truth delimiter %q", c.GroundTruthDelimiter)
	}
	return r, nil
}

// LoaderOptions returns the dataset options these settings describe.
func (c *Config) LoaderOptions() dataset.Options {
	delim, err := c.Delimiter()
	if err != nil {
		delim = '\t'
	}
	return dataset.Options{
		GroundTruthDelimiter: delim,
		NullTokens:           c.NullTokens,
		Entered:              c.Columns.Entered,
		GroundTruth:          c.Columns.GroundTruth,
	}
}
