package runtime

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oarkflow/log"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up in the home directory when no config path is
// given.
const ConfigFileName = ".shona.yaml"

// Config holds the interpreter and REPL settings read from YAML.
type Config struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"`
	LogLevel           string `yaml:"log_level"`
	DumpTokens         bool   `yaml:"dump_tokens"`
	DumpAST            bool   `yaml:"dump_ast"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	cfg := Config{
		Prompt:             "> ",
		ContinuationPrompt: "... ",
		LogLevel:           "error",
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".shona_history")
	}
	return cfg
}

// DefaultConfigPath returns $HOME/.shona.yaml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigFileName)
}

// LoadConfig reads the YAML file at path over DefaultConfig. Environment
// references in the file are expanded first. An empty path selects the
// default location, and a missing default file yields the defaults; a
// missing explicit path is an error.
func LoadConfig(path string, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = NewLogger("error", os.Stderr)
	}
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		logger.Error().Err(err).Str("path", path).Msg("failed to read config file")
		return cfg, fmt.Errorf("read config: %w", err)
	}
	content := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("failed to unmarshal config")
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	logger.Debug().Str("path", path).Msg("config loaded")
	return cfg, nil
}
