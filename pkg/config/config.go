package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	Input  InputConfig  `mapstructure:"input"`
	Report ReportConfig `mapstructure:"report"`
	Scorer ScorerConfig `mapstructure:"scorer"`
	Topics TopicsConfig `mapstructure:"topics"`
}

type InputConfig struct {
	Path string `mapstructure:"path"`
}

type ReportConfig struct {
	OutputDir         string   `mapstructure:"output_dir"`
	TopZones          int      `mapstructure:"top_zones"`
	MinGroupSize      int      `mapstructure:"min_group_size"`
	ChartThreshold    int      `mapstructure:"chart_threshold"`
	Workers           int      `mapstructure:"workers"`
	TimeBucketMinutes int      `mapstructure:"time_bucket_minutes"`
	Unattributed      string   `mapstructure:"unattributed"`
	ExtraStopTerms    []string `mapstructure:"extra_stop_terms"`
}

type ScorerConfig struct {
	Backend        string       `mapstructure:"backend"` // "vader" or "openai"
	TimeoutSeconds int          `mapstructure:"timeout_seconds"`
	OpenAI         OpenAIConfig `mapstructure:"openai"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type TopicsConfig struct {
	TopTerms           int `mapstructure:"top_terms"`
	Collocations       int `mapstructure:"collocations"`
	CollocationMinFreq int `mapstructure:"collocation_min_freq"`
	ConcordanceTerms   int `mapstructure:"concordance_terms"`
	ConcordanceLines   int `mapstructure:"concordance_lines"`
	ConcordanceWindow  int `mapstructure:"concordance_window"`
}

// LoadConfig reads the config file if present and applies env overrides.
// A missing file is fine; everything has a default.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("input.path", "data/Sentiment.csv")
	v.SetDefault("report.output_dir", "results")
	v.SetDefault("report.top_zones", 5)
	v.SetDefault("report.min_group_size", 10)
	v.SetDefault("report.chart_threshold", 10)
	v.SetDefault("report.workers", 4)
	v.SetDefault("report.time_bucket_minutes", 10)
	v.SetDefault("report.unattributed", "No candidate mentioned")
	v.SetDefault("scorer.backend", "vader")
	v.SetDefault("scorer.timeout_seconds", 0)
	v.SetDefault("scorer.openai.model", "gpt-3.5-turbo")
	v.SetDefault("scorer.openai.max_tokens", 10)
	v.SetDefault("scorer.openai.temperature", 0.0)
	v.SetDefault("topics.top_terms", 10)
	v.SetDefault("topics.collocations", 5)
	v.SetDefault("topics.collocation_min_freq", 2)
	v.SetDefault("topics.concordance_terms", 3)
	v.SetDefault("topics.concordance_lines", 5)
	v.SetDefault("topics.concordance_window", 4)

	// Enable environment variable support
	v.AutomaticEnv()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.Scorer.OpenAI.APIKey = apiKey
	}

	return &config, nil
}
