// Package doctor validates hubnote configuration.
package doctor

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/hubnote-dev/hubnote/internal/config"
	"github.com/hubnote-dev/hubnote/internal/github"
)

// Result holds the outcome of a validation run.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
}

// Issue describes a single validation error or warning.
type Issue struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
}

// Doctor validates a loaded configuration.
type Doctor struct {
	cfg *config.Config
}

// New creates a Doctor from a loaded config.
func New(cfg *config.Config) *Doctor {
	return &Doctor{cfg: cfg}
}

// Validate runs all checks and returns a result.
func (d *Doctor) Validate() *Result {
	r := &Result{Valid: true}

	d.validateService(r)
	d.validateGitHub(r)
	d.validateMisskey(r)
	d.validateHooks(r)

	r.Valid = len(r.Errors) == 0
	return r
}

func (d *Doctor) addError(r *Result, category, field, msg string) {
	r.Errors = append(r.Errors, Issue{Category: category, Field: field, Message: msg})
}

func (d *Doctor) addWarning(r *Result, category, field, msg string) {
	r.Warnings = append(r.Warnings, Issue{Category: category, Field: field, Message: msg})
}

func (d *Doctor) validateService(r *Result) {
	if d.cfg.Service.Listen == "" {
		d.addError(r, "service", "service.listen", "listen address is required")
	}
	if d.cfg.Service.MaxBodySize > 0 && d.cfg.Service.MaxBodySize < 4096 {
		d.addWarning(r, "service", "service.max_body_size",
			"max_body_size is very small; GitHub payloads routinely exceed 4KB")
	}
}

func (d *Doctor) validateGitHub(r *Result) {
	if d.cfg.GitHub.WebhookSecret == "" {
		d.addError(r, "github", "github.webhook_secret", "webhook_secret is required")
	}

	for i, cidr := range d.cfg.GitHub.AllowedSources {
		if _, err := netip.ParsePrefix(cidr); err != nil {
			d.addError(r, "github", fmt.Sprintf("github.allowed_sources[%d]", i),
				fmt.Sprintf("invalid CIDR %q: %v", cidr, err))
		}
	}
	if len(d.cfg.GitHub.AllowedSources) == 0 {
		d.addWarning(r, "github", "github.allowed_sources",
			"no source blocks configured; using GitHub's published webhook ranges")
	}
}

func (d *Doctor) validateMisskey(r *Result) {
	if d.cfg.Misskey.URL == "" {
		d.addError(r, "misskey", "misskey.url", "instance url is required")
	} else {
		u, err := url.Parse(d.cfg.Misskey.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			d.addError(r, "misskey", "misskey.url",
				fmt.Sprintf("instance url must be http(s), got %q", d.cfg.Misskey.URL))
		} else if u.Scheme == "http" {
			d.addWarning(r, "misskey", "misskey.url",
				"instance url is plain http; the api token travels unencrypted")
		}
	}

	if d.cfg.Misskey.Token == "" {
		d.addError(r, "misskey", "misskey.token", "api token is required")
	}

	if d.cfg.Misskey.Proxy != "" {
		if _, err := url.Parse(d.cfg.Misskey.Proxy); err != nil {
			d.addError(r, "misskey", "misskey.proxy",
				fmt.Sprintf("invalid proxy url %q: %v", d.cfg.Misskey.Proxy, err))
		}
	}

	if d.cfg.Misskey.Timeout > time.Minute {
		d.addWarning(r, "misskey", "misskey.timeout",
			"timeout exceeds one minute; detached publishes may pile up under slow upstream")
	}
}

func (d *Doctor) validateHooks(r *Result) {
	anyEnabled := len(d.cfg.Hooks) == 0 // no hooks key means all enabled
	for name, enabled := range d.cfg.Hooks {
		if !github.Known(name) {
			d.addWarning(r, "hooks", fmt.Sprintf("hooks.%s", name),
				fmt.Sprintf("unknown event type %q; flag has no effect", name))
			continue
		}
		if enabled {
			anyEnabled = true
		}
	}

	// Events absent from the hooks map default to enabled.
	if !anyEnabled {
		for _, e := range github.SupportedEvents() {
			if _, present := d.cfg.Hooks[string(e)]; !present {
				anyEnabled = true
				break
			}
		}
	}

	if !anyEnabled {
		d.addWarning(r, "hooks", "hooks",
			"every supported event is disabled; no notes will ever be published")
	}
}

// FormatHuman returns a human-readable validation report.
func FormatHuman(r *Result) string {
	var b strings.Builder

	if r.Valid && len(r.Warnings) == 0 {
		b.WriteString("Configuration valid.\n")
		return b.String()
	}

	if r.Valid && len(r.Warnings) > 0 {
		b.WriteString("Configuration valid")
		fmt.Fprintf(&b, " (%d warning(s))\n", len(r.Warnings))
	}

	if !r.Valid {
		fmt.Fprintf(&b, "Configuration invalid (%d error(s), %d warning(s))\n", len(r.Errors), len(r.Warnings))
	}

	for _, e := range r.Errors {
		if e.Field != "" {
			fmt.Fprintf(&b, "  ERROR [%s] %s: %s\n", e.Category, e.Field, e.Message)
		} else {
			fmt.Fprintf(&b, "  ERROR [%s] %s\n", e.Category, e.Message)
		}
	}
	for _, w := range r.Warnings {
		if w.Field != "" {
			fmt.Fprintf(&b, "  WARN  [%s] %s: %s\n", w.Category, w.Field, w.Message)
		} else {
			fmt.Fprintf(&b, "  WARN  [%s] %s\n", w.Category, w.Message)
		}
	}

	return b.String()
}

// FormatJSON returns the result as indented JSON.
func FormatJSON(r *Result) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
