package config

import (
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads and parses configuration from a file. If a .checksums manifest
// exists next to the file, the file is integrity-verified against it first.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", configPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %s\n"+
			"Hint: Check the path or run with --config flag", absPath)
	}

	if info.IsDir() {
		// Directory provided - look for config.yaml inside
		absPath = filepath.Join(absPath, "config.yaml")
		if _, err := os.Stat(absPath); err != nil {
			return nil, fmt.Errorf("directory provided but config.yaml not found: %s", absPath)
		}
	}

	if err := verifyConfigHash(absPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	interpolated := interpolateEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(interpolated), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// DiscoverConfigPath finds the config file by checking standard locations.
// Priority order: $HUBNOTE_CONFIG, ~/.config/hubnote/config.yaml,
// /etc/hubnote/config.yaml, ./config.yaml
func DiscoverConfigPath() (string, error) {
	if path := os.Getenv("HUBNOTE_CONFIG"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		userConfig := filepath.Join(homeDir, ".config", "hubnote", "config.yaml")
		if _, err := os.Stat(userConfig); err == nil {
			return userConfig, nil
		}
	}

	systemConfig := "/etc/hubnote/config.yaml"
	if _, err := os.Stat(systemConfig); err == nil {
		return systemConfig, nil
	}

	localConfig := "./config.yaml"
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	return "", fmt.Errorf("no config found (checked: $HUBNOTE_CONFIG, ~/.config/hubnote, /etc/hubnote, ./config.yaml)")
}

// applyDefaults merges default values into config where not explicitly set.
func applyDefaults(cfg *Config) {
	defaults := Defaults()

	if cfg.Service.Listen == "" {
		cfg.Service.Listen = defaults.Service.Listen
	}
	if cfg.Service.LogLevel == "" {
		cfg.Service.LogLevel = defaults.Service.LogLevel
	}
	if cfg.Service.MaxBodySize == 0 {
		cfg.Service.MaxBodySize = defaults.Service.MaxBodySize
	}
	if cfg.Misskey.Timeout == 0 {
		cfg.Misskey.Timeout = defaults.Misskey.Timeout
	}
}

// interpolateEnv replaces ${VAR} with environment variable values.
// Undefined variables are left as-is (not expanded).
func interpolateEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}

		// If not found, leave the placeholder (will fail validation if required)
		return match
	})
}

// validate performs basic validation on the configuration.
func validate(cfg *Config) error {
	if cfg.Service.Listen == "" {
		return fmt.Errorf("service.listen is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[cfg.Service.LogLevel] {
		return fmt.Errorf("service.log_level must be one of: debug, info, warn, error (got %q)", cfg.Service.LogLevel)
	}

	if cfg.GitHub.WebhookSecret == "" {
		return fmt.Errorf("github.webhook_secret is required")
	}
	if envVarPattern.MatchString(cfg.GitHub.WebhookSecret) {
		matches := envVarPattern.FindStringSubmatch(cfg.GitHub.WebhookSecret)
		return fmt.Errorf("github.webhook_secret: environment variable ${%s} is not set", matches[1])
	}

	for i, cidr := range cfg.GitHub.AllowedSources {
		if _, err := netip.ParsePrefix(cidr); err != nil {
			return fmt.Errorf("github.allowed_sources[%d]: invalid CIDR %q: %w", i, cidr, err)
		}
	}

	if cfg.Misskey.URL == "" {
		return fmt.Errorf("misskey.url is required")
	}
	u, err := url.Parse(cfg.Misskey.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("misskey.url must be an http(s) URL (got %q)", cfg.Misskey.URL)
	}

	if cfg.Misskey.Token == "" {
		return fmt.Errorf("misskey.token is required")
	}
	if envVarPattern.MatchString(cfg.Misskey.Token) {
		matches := envVarPattern.FindStringSubmatch(cfg.Misskey.Token)
		return fmt.Errorf("misskey.token: environment variable ${%s} is not set", matches[1])
	}

	if cfg.Misskey.Timeout < 0 {
		return fmt.Errorf("misskey.timeout must not be negative")
	}

	return nil
}
