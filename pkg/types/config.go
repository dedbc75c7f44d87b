package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to NCBI.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-meta/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// EntrezConfig holds settings for the NCBI E-utilities client.
type EntrezConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Email identifies the caller to NCBI. E-utilities requires one.
	Email string `json:"email" yaml:"email" mapstructure:"email"`

	// Tool names the calling software (default "pubmed-meta").
	Tool string `json:"tool" yaml:"tool" mapstructure:"tool"`

	// APIKey is an optional NCBI API key that raises the rate limit from
	// 3 to 10 requests per second.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxRetries bounds retries on HTTP 429 and 5xx responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// FetchConfig holds settings for the per-identifier fetch loop.
type FetchConfig struct {
	// ProgressInterval is how often running found/not-found counts are
	// logged (default 10s).
	ProgressInterval time.Duration `json:"progress_interval" yaml:"progress_interval" mapstructure:"progress_interval"`
}

// Format names an output file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSL  Format = "csl"
)

// DefaultBaseName is the output file stem used when none is configured.
const DefaultBaseName = "institution_publications_metadata"

// ExportConfig holds settings for the output writers.
type ExportConfig struct {
	// OutputDir is where output files go. Empty means the directory of the
	// input file.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// BaseName is the output file stem (default DefaultBaseName).
	BaseName string `json:"base_name" yaml:"base_name" mapstructure:"base_name"`

	// Formats lists the files to write (default csv and xlsx).
	Formats []Format `json:"formats" yaml:"formats" mapstructure:"formats"`

	// ASCII transliterates non-ASCII text before writing.
	ASCII bool `json:"ascii" yaml:"ascii" mapstructure:"ascii"`
}
