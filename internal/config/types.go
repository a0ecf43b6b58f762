package config

import "time"

// Config represents the complete hubnote configuration.
type Config struct {
	Service ServiceConfig   `yaml:"service"`
	GitHub  GitHubConfig    `yaml:"github"`
	Misskey MisskeyConfig   `yaml:"misskey"`
	Hooks   map[string]bool `yaml:"hooks,omitempty"`
}

// ServiceConfig defines core service settings.
type ServiceConfig struct {
	Listen      string `yaml:"listen"`
	LogLevel    string `yaml:"log_level"`
	MaxBodySize int64  `yaml:"max_body_size,omitempty"`
}

// GitHubConfig defines inbound webhook settings.
type GitHubConfig struct {
	// WebhookSecret is the shared HMAC secret configured on the GitHub side.
	WebhookSecret string `yaml:"webhook_secret"`

	// AllowedSources are the CIDR blocks deliveries may originate from.
	// Empty means GitHub's published webhook ranges.
	AllowedSources []string `yaml:"allowed_sources,omitempty"`
}

// MisskeyConfig defines the target instance and outbound client settings.
type MisskeyConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
	Proxy   string        `yaml:"proxy,omitempty"`
}

// Defaults returns a Config with sensible defaults. Hooks default to all
// supported events enabled; an explicit `false` in config disables one.
func Defaults() *Config {
	return &Config{
		Service: ServiceConfig{
			Listen:      "127.0.0.1:3000",
			LogLevel:    "info",
			MaxBodySize: 1048576,
		},
		Misskey: MisskeyConfig{
			Timeout: 10 * time.Second,
		},
	}
}
