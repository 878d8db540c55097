package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// TapMode selects how the tap route resolves and mutates its target task.
type TapMode string

const (
	// ModeRegistry resolves the target task through the event registry (eid param).
	ModeRegistry TapMode = "registry"
	// ModeMaster mutates one fixed task for every tap (legacy single-event mode).
	ModeMaster TapMode = "master"
	// ModeCreate creates a new task per tap instead of incrementing a counter.
	ModeCreate TapMode = "create"
)

// Config is built once at startup and threaded into each component
// constructor. Handlers never read the environment directly.
type Config struct {
	ClickUpToken  string `env:"CLICKUP_TOKEN" yaml:"-"`
	ClickUpListID string `env:"CLICKUP_LIST_ID" yaml:"clickup_list_id"`
	ClickUpAPIURL string `env:"CLICKUP_API_URL" yaml:"clickup_api_url"`

	WebhookSecret string `env:"WEBHOOK_SECRET" yaml:"-"`
	PortalKey     string `env:"PORTAL_KEY" yaml:"-"`

	MasterTaskID    string `env:"MASTER_TASK_ID" yaml:"master_task_id"`
	TapCountFieldID string `env:"TAP_COUNT_FIELD_ID" yaml:"tap_count_field_id"`
	StatusFieldID   string `env:"STATUS_FIELD_ID" yaml:"status_field_id"`

	TapMode TapMode `env:"TAP_MODE" yaml:"tap_mode"`
	DataDir string  `env:"DATA_DIR" yaml:"data_dir"`
	Port    string  `env:"PORT" yaml:"port"`
}

// MissingError reports every absent required setting at once so an
// operator can fix a deployment in a single pass.
type MissingError struct {
	Settings []string
}

func (e *MissingError) Error() string {
	return "missing required configuration: " + strings.Join(e.Settings, ", ")
}

// Load builds a Config from an optional YAML file overlaid by
// environment variables. Env values win over file values; secrets are
// env-only. An absent file is fine, a malformed one is not.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// no file, env only
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	var fromEnv Config
	if err := env.Parse(&fromEnv); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.overlay(fromEnv)
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) overlay(o Config) {
	if o.ClickUpToken != "" {
		c.ClickUpToken = o.ClickUpToken
	}
	if o.ClickUpListID != "" {
		c.ClickUpListID = o.ClickUpListID
	}
	if o.ClickUpAPIURL != "" {
		c.ClickUpAPIURL = o.ClickUpAPIURL
	}
	if o.WebhookSecret != "" {
		c.WebhookSecret = o.WebhookSecret
	}
	if o.PortalKey != "" {
		c.PortalKey = o.PortalKey
	}
	if o.MasterTaskID != "" {
		c.MasterTaskID = o.MasterTaskID
	}
	if o.TapCountFieldID != "" {
		c.TapCountFieldID = o.TapCountFieldID
	}
	if o.StatusFieldID != "" {
		c.StatusFieldID = o.StatusFieldID
	}
	if o.TapMode != "" {
		c.TapMode = o.TapMode
	}
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.Port != "" {
		c.Port = o.Port
	}
}

func (c *Config) applyDefaults() {
	if c.TapMode == "" {
		c.TapMode = ModeRegistry
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Port == "" {
		c.Port = "3000"
	}
}

// Validate checks the settings the selected tap mode needs. It returns
// a *MissingError naming every absent setting, or a plain error for an
// unknown mode.
func (c *Config) Validate() error {
	switch c.TapMode {
	case ModeRegistry, ModeMaster, ModeCreate:
	default:
		return fmt.Errorf("unknown tap mode %q (want registry, master or create)", c.TapMode)
	}

	var missing []string
	require := func(name, val string) {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, name)
		}
	}

	require("CLICKUP_TOKEN", c.ClickUpToken)
	switch c.TapMode {
	case ModeRegistry:
		require("TAP_COUNT_FIELD_ID", c.TapCountFieldID)
		require("STATUS_FIELD_ID", c.StatusFieldID)
	case ModeMaster:
		require("MASTER_TASK_ID", c.MasterTaskID)
		require("TAP_COUNT_FIELD_ID", c.TapCountFieldID)
		require("STATUS_FIELD_ID", c.StatusFieldID)
	case ModeCreate:
		require("CLICKUP_LIST_ID", c.ClickUpListID)
	}

	if len(missing) > 0 {
		return &MissingError{Settings: missing}
	}
	return nil
}
