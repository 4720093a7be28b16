package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the quill configuration file
// (~/.config/quill/config.yaml). Optional fields are pointers so "not
// set" stays distinguishable from an explicit zero.
type Config struct {
	Corpus     string `yaml:"corpus"`
	VocabCache string `yaml:"vocab_cache"`
	VocabSize  *int64 `yaml:"vocab_size"`

	// Sampling defaults
	MaxNewTokens *int64   `yaml:"max_new_tokens"`
	TopK         *int64   `yaml:"top_k"`
	Temperature  *float64 `yaml:"temperature"`
	Confidence   *float64 `yaml:"confidence"`
	Seed         *int64   `yaml:"seed"`

	// Suggestion defaults
	Suggestions *int64 `yaml:"suggestions"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", "config.yaml")
}

// applyCommonConfig applies config file defaults to the shared corpus and
// logging variables when the corresponding CLI flag was not explicitly
// set.
func applyCommonConfig(c *cli.Command, cfg Config) {
	if cfg.Corpus != "" && !c.IsSet("corpus") {
		corpusPath = cfg.Corpus
	}
	if cfg.VocabCache != "" && !c.IsSet("vocab-cache") {
		vocabCache = cfg.VocabCache
	}
	if cfg.VocabSize != nil && !c.IsSet("vocab-size") {
		vocabSize = *cfg.VocabSize
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyGenerateConfig applies config file defaults to generate command
// variables.
func applyGenerateConfig(c *cli.Command, cfg Config,
	maxNewTokens *int64, topK *int64, temp *float64, confidence *float64, seed *int64,
) {
	if cfg.MaxNewTokens != nil && !c.IsSet("max-new-tokens") {
		*maxNewTokens = *cfg.MaxNewTokens
	}
	if cfg.TopK != nil && !c.IsSet("top-k") && !c.IsSet("top_k") && !c.IsSet("topk") {
		*topK = *cfg.TopK
	}
	if cfg.Temperature != nil && !c.IsSet("temp") && !c.IsSet("temperature") && !c.IsSet("t") {
		*temp = *cfg.Temperature
	}
	if cfg.Confidence != nil && !c.IsSet("confidence") && !c.IsSet("budget") {
		*confidence = *cfg.Confidence
	}
	if cfg.Seed != nil && !c.IsSet("seed") {
		*seed = *cfg.Seed
	}
}

// applySuggestConfig applies config file defaults to suggest command
// variables.
func applySuggestConfig(c *cli.Command, cfg Config, count *int64) {
	if cfg.Suggestions != nil && !c.IsSet("count") && !c.IsSet("k") {
		*count = *cfg.Suggestions
	}
}

// applyServeConfig applies config file defaults to serve command
// variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
