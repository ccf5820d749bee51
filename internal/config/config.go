// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Default values used when neither the config file, the environment nor a flag sets a field.
const (
	DefaultHGNCBaseURL            = "https://rest.genenames.org"
	DefaultUniProtBaseURL         = "https://rest.uniprot.org"
	DefaultRequestTimeoutSeconds  = 10.0
	DefaultRequestIntervalSeconds = 0.1
	DefaultConcurrency            = 1
	DefaultSequenceTable          = "af_tf_gene_aa.csv"
	DefaultRelocateSource         = "./af_output_msa"
	DefaultRelocateDest           = "./af_input_native"
	DefaultAFOutputDir            = "./af_output"
	DefaultReportPath             = "./alphafold3_combined_summary.csv"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Remote services
	HGNCBaseURL            string  `json:"hgnc_base_url,omitempty"`            // Gene nomenclature REST root
	UniProtBaseURL         string  `json:"uniprot_base_url,omitempty"`         // Sequence database REST root
	RequestTimeoutSeconds  float64 `json:"request_timeout_seconds,omitempty"`  // Per-request timeout
	RequestIntervalSeconds float64 `json:"request_interval_seconds,omitempty"` // Minimum spacing between gene lookups
	Concurrency            int     `json:"concurrency,omitempty"`              // Parallel gene lookups

	// Sequence fetcher
	GeneTable     string `json:"gene_table,omitempty"`     // CSV with a tf_gene column
	SequenceTable string `json:"sequence_table,omitempty"` // Output CSV of tf_gene,amino_acid_sequence

	// Output relocator
	RelocateSource string `json:"relocate_source,omitempty"` // Root holding {name}/{name}_data.json
	RelocateDest   string `json:"relocate_dest,omitempty"`   // Flat destination for {name}.json

	// Result aggregator
	AFOutputDir string `json:"af_output_dir,omitempty"` // Root holding {name}/{name}_summary_confidences.json
	ReportPath  string `json:"report_path,omitempty"`   // Combined report (.csv or .xlsx)
}

// Defaults returns a Config populated with the built-in defaults.
func Defaults() Config {
	return Config{
		HGNCBaseURL:            DefaultHGNCBaseURL,
		UniProtBaseURL:         DefaultUniProtBaseURL,
		RequestTimeoutSeconds:  DefaultRequestTimeoutSeconds,
		RequestIntervalSeconds: DefaultRequestIntervalSeconds,
		Concurrency:            DefaultConcurrency,
		SequenceTable:          DefaultSequenceTable,
		RelocateSource:         DefaultRelocateSource,
		RelocateDest:           DefaultRelocateDest,
		AFOutputDir:            DefaultAFOutputDir,
		ReportPath:             DefaultReportPath,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load resolves the effective configuration: defaults, then the optional
// config file, then environment overrides. Flags are applied by the caller.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'request_timeout_seconds' must be non-negative")
	}
	if c.RequestIntervalSeconds < 0 {
		return fmt.Errorf("config error: 'request_interval_seconds' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	for name, raw := range map[string]string{
		"hgnc_base_url":    c.HGNCBaseURL,
		"uniprot_base_url": c.UniProtBaseURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: '%s' is not an absolute URL: %q", name, raw)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.HGNCBaseURL == "" {
		result.HGNCBaseURL = defaults.HGNCBaseURL
	}
	if result.UniProtBaseURL == "" {
		result.UniProtBaseURL = defaults.UniProtBaseURL
	}
	if result.GeneTable == "" {
		result.GeneTable = defaults.GeneTable
	}
	if result.SequenceTable == "" {
		result.SequenceTable = defaults.SequenceTable
	}
	if result.RelocateSource == "" {
		result.RelocateSource = defaults.RelocateSource
	}
	if result.RelocateDest == "" {
		result.RelocateDest = defaults.RelocateDest
	}
	if result.AFOutputDir == "" {
		result.AFOutputDir = defaults.AFOutputDir
	}
	if result.ReportPath == "" {
		result.ReportPath = defaults.ReportPath
	}

	// Numeric fields: use default if zero
	if result.RequestTimeoutSeconds == 0 {
		result.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}
	if result.RequestIntervalSeconds == 0 {
		result.RequestIntervalSeconds = defaults.RequestIntervalSeconds
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	return result
}

// RequestTimeout is the per-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return secondsToDuration(c.RequestTimeoutSeconds)
}

// RequestInterval is the minimum spacing between gene lookups as a duration.
func (c *Config) RequestInterval() time.Duration {
	return secondsToDuration(c.RequestIntervalSeconds)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
