package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const minimalConfig = `
github:
  webhook_secret: hunter2
misskey:
  url: https://example.social
  token: note-token
`

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3000", cfg.Service.Listen)
	assert.Equal(t, "info", cfg.Service.LogLevel)
	assert.Equal(t, int64(1048576), cfg.Service.MaxBodySize)
	assert.Equal(t, 10*time.Second, cfg.Misskey.Timeout)
	assert.Nil(t, cfg.Hooks)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
service:
  listen: "0.0.0.0:8080"
  log_level: debug
github:
  webhook_secret: hunter2
  allowed_sources:
    - 192.0.2.0/24
misskey:
  url: https://example.social
  token: note-token
  timeout: 5s
  proxy: http://proxy.internal:3128
hooks:
  watch: false
  fork: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Service.Listen)
	assert.Equal(t, []string{"192.0.2.0/24"}, cfg.GitHub.AllowedSources)
	assert.Equal(t, 5*time.Second, cfg.Misskey.Timeout)
	assert.Equal(t, "http://proxy.internal:3128", cfg.Misskey.Proxy)
	assert.Equal(t, map[string]bool{"watch": false, "fork": true}, cfg.Hooks)
}

func TestLoad_EnvInterpolation(t *testing.T) {
	t.Setenv("HUBNOTE_TEST_SECRET", "from-env")
	path := writeConfig(t, `
github:
  webhook_secret: ${HUBNOTE_TEST_SECRET}
misskey:
  url: https://example.social
  token: note-token
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.GitHub.WebhookSecret)
}

func TestLoad_UnresolvedEnvVarFails(t *testing.T) {
	path := writeConfig(t, `
github:
  webhook_secret: ${HUBNOTE_DEFINITELY_NOT_SET}
misskey:
  url: https://example.social
  token: note-token
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HUBNOTE_DEFINITELY_NOT_SET")
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing secret",
			content: `
misskey:
  url: https://example.social
  token: tok
`,
			wantErr: "github.webhook_secret",
		},
		{
			name: "missing instance url",
			content: `
github:
  webhook_secret: s
misskey:
  token: tok
`,
			wantErr: "misskey.url",
		},
		{
			name: "bad instance url",
			content: `
github:
  webhook_secret: s
misskey:
  url: "ftp://example.social"
  token: tok
`,
			wantErr: "misskey.url",
		},
		{
			name: "missing token",
			content: `
github:
  webhook_secret: s
misskey:
  url: https://example.social
`,
			wantErr: "misskey.token",
		},
		{
			name: "bad cidr",
			content: `
github:
  webhook_secret: s
  allowed_sources: ["not-a-cidr"]
misskey:
  url: https://example.social
  token: tok
`,
			wantErr: "allowed_sources",
		},
		{
			name: "bad log level",
			content: `
service:
  log_level: verbose
github:
  webhook_secret: s
misskey:
  url: https://example.social
  token: tok
`,
			wantErr: "log_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_DirectoryResolvesConfigYAML(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, err := Load(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.GitHub.WebhookSecret)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
