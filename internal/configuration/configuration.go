// Package configuration parses and bootstraps the gcommit configuration file.
package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/malonaz/gcommit/internal/file"
)

// Provider types.
const (
	ProviderTypeOpenAI    = "openai"
	ProviderTypeAnthropic = "anthropic"
)

var defaultConfig = Config{
	RequestTimeout: 60,

	Providers: []*Provider{
		{
			Name:    "openai",
			Type:    ProviderTypeOpenAI,
			APIKey:  "API_KEY",
			APIHost: "https://api.openai.com/v1",
			Models: []*Model{
				{Name: "gpt-4o", Alias: "4o"},
				{Name: "gpt-4o-mini", Alias: "4o-mini"},
			},
		},
	},

	Summarize: &SummarizeConfig{
		DefaultModel: "gpt-4o-mini",
		IgnoreFiles:  []string{},
		Concurrency:  8,
	},

	Output: &OutputConfig{
		ConventionalCommit:             true,
		ConventionalCommitPrefixFormat: "",
		Language:                       "en",
		ShowPerFileSummary:             false,
	},

	Prompts: &PromptsConfig{},
}

// Config holds configuration for the gcommit tool.
type Config struct {
	RequestTimeout int         `json:"request_timeout"`
	Providers      []*Provider `json:"providers"`

	Summarize *SummarizeConfig `json:"summarize"`
	Output    *OutputConfig    `json:"output"`
	Prompts   *PromptsConfig   `json:"prompts"`
}

// Provider holds configuration for a model provider.
type Provider struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	APIKey  string   `json:"api_key"`
	APIHost string   `json:"api_host"`
	Models  []*Model `json:"models"`
}

// Model served by a provider.
type Model struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

// SummarizeConfig holds configuration for the per-file summarization.
type SummarizeConfig struct {
	// The model to be used by default.
	DefaultModel string `json:"default_model"`
	// Files matching any of these substrings are excluded from the diff.
	IgnoreFiles []string `json:"ignore_files"`
	// How many per-file summaries may run at once.
	Concurrency int `json:"concurrency"`
}

// OutputConfig holds configuration for the generated message.
type OutputConfig struct {
	// Prepend a conventional commit prefix to the message.
	ConventionalCommit bool `json:"conventional_commit"`
	// Template applied to the prefix. Empty means the built-in format.
	ConventionalCommitPrefixFormat string `json:"conventional_commit_prefix_format"`
	// Language of the final message. "en" skips translation.
	Language string `json:"language"`
	// Append the per-file summaries to the message.
	ShowPerFileSummary bool `json:"show_per_file_summary"`
}

// PromptsConfig holds per-template overrides. Empty fields use the built-in templates.
type PromptsConfig struct {
	FileDiff           string `json:"file_diff,omitempty"`
	CommitSummary      string `json:"commit_summary,omitempty"`
	CommitTitle        string `json:"commit_title,omitempty"`
	ConventionalCommit string `json:"conventional_commit,omitempty"`
	Translation        string `json:"translation,omitempty"`
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}
	config.applyDefaults()
	return config, nil
}

// applyDefaults fills sections omitted from the configuration file.
func (c *Config) applyDefaults() {
	if c.Summarize == nil {
		summarize := *defaultConfig.Summarize
		c.Summarize = &summarize
	}
	if c.Output == nil {
		output := *defaultConfig.Output
		c.Output = &output
	}
	if c.Prompts == nil {
		c.Prompts = &PromptsConfig{}
	}
	if c.Summarize.Concurrency <= 0 {
		c.Summarize.Concurrency = defaultConfig.Summarize.Concurrency
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultConfig.RequestTimeout
	}
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
