package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const runnerFile = "runner.yaml"

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.arcade/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// A custom path that cannot be read or fails validation is an error; broken
// files found on the search path are skipped.
func LoadRunner(customPath string) (RunnerConfig, error) {
	if customPath != "" {
		return LoadRunnerFile(customPath)
	}

	if userCfgPath := userConfigPath(runnerFile); userCfgPath != "" {
		if cfg, err := LoadRunnerFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := LoadRunnerFile(filepath.Join("configs", runnerFile)); err == nil {
		return cfg, nil
	}

	cfg, err := ParseRunner(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // hard-coded fallback if the embed is broken
	}
	return cfg, nil
}

// LoadRunnerFile reads and validates a single configuration file.
func LoadRunnerFile(path string) (RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := ParseRunner(data)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseRunner decodes a YAML document on top of the defaults, so omitted
// keys keep their default values. The document is checked against the
// embedded JSON schema before decoding and semantically afterwards.
func ParseRunner(data []byte) (RunnerConfig, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RunnerConfig{}, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		return RunnerConfig{}, err
	}

	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RunnerConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
