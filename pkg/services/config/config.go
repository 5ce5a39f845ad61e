package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/traxovo/fleet-ledger/pkg/models/domain"
	"github.com/traxovo/fleet-ledger/pkg/services/division"
	"github.com/traxovo/fleet-ledger/pkg/services/roles"
)

// Config carries the tunable parts of a run: where files live, how
// headers map to roles, how jobs map to divisions, and the policies
// the design review left open (duplicate-key handling, tolerance).
type Config struct {
	InputDir        string         `mapstructure:"input_dir"`
	ExportDir       string         `mapstructure:"export_dir"`
	Tolerance       float64        `mapstructure:"tolerance"`
	CollisionPolicy string         `mapstructure:"collision_policy"`
	Roles           []RolePattern  `mapstructure:"roles"`
	Divisions       DivisionConfig `mapstructure:"divisions"`
}

type RolePattern struct {
	Role     string   `mapstructure:"role"`
	Contains []string `mapstructure:"contains"`
}

type DivisionConfig struct {
	Default string          `mapstructure:"default"`
	Rules   []division.Spec `mapstructure:"rules"`
}

// Default returns the built-in configuration used when no profile file
// is given.
func Default() *Config {
	return &Config{
		InputDir:        "attached_assets",
		ExportDir:       "exports",
		Tolerance:       0.01,
		CollisionPolicy: string(domain.CollisionOverwrite),
	}
}

// Load reads a YAML profile and overlays it on the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, err := cfg.Collision(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RolePatterns converts configured patterns to the resolver's rule
// table, falling back to the built-in table when none are configured.
func (c *Config) RolePatterns() []roles.Pattern {
	if len(c.Roles) == 0 {
		return roles.DefaultPatterns()
	}
	patterns := make([]roles.Pattern, 0, len(c.Roles))
	for _, rp := range c.Roles {
		patterns = append(patterns, roles.Pattern{
			Role:     domain.ColumnRole(rp.Role),
			Contains: rp.Contains,
		})
	}
	return patterns
}

// DivisionTable compiles the configured assignment rules, or the
// built-in table when none are configured.
func (c *Config) DivisionTable() (*division.Table, error) {
	if len(c.Divisions.Rules) == 0 && c.Divisions.Default == "" {
		return division.Default(), nil
	}
	specs := c.Divisions.Rules
	if len(specs) == 0 {
		specs = division.DefaultSpecs()
	}
	return division.NewTable(specs, c.Divisions.Default)
}

func (c *Config) Collision() (domain.CollisionPolicy, error) {
	return domain.ParseCollisionPolicy(c.CollisionPolicy)
}
