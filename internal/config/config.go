// Package config provides configuration types and loading for marketvet.
package config

import "github.com/kelseyhightower/envconfig"

// Config is the root configuration struct.
type Config struct {
	Paths  PathsConfig  `json:"paths"`
	Limits LimitsConfig `json:"limits"`
}

// PathsConfig groups filesystem layout settings.
type PathsConfig struct {
	// Manifest is the default marketplace manifest path, relative to the
	// invocation directory unless absolute.
	Manifest string `json:"manifest" envconfig:"MANIFEST"`
	// SkillsDir is the name of the skills subtree under the project root
	// scanned for orphaned SKILL.md documents.
	SkillsDir string `json:"skillsDir" envconfig:"SKILLS_DIR"`
}

// LimitsConfig groups content-rule ceilings.
type LimitsConfig struct {
	MaxNameLength        int `json:"maxNameLength" envconfig:"MAX_NAME_LENGTH"`
	MaxDescriptionLength int `json:"maxDescriptionLength" envconfig:"MAX_DESCRIPTION_LENGTH"`
	MaxSkillLines        int `json:"maxSkillLines" envconfig:"MAX_SKILL_LINES"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Manifest:  ".claude-plugin/marketplace.json",
			SkillsDir: "skills",
		},
		Limits: LimitsConfig{
			MaxNameLength:        64,
			MaxDescriptionLength: 1024,
			MaxSkillLines:        500,
		},
	}
}

// Load returns the defaults overridden by MARKETVET_* environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	if err := envconfig.Process("MARKETVET_PATHS", &cfg.Paths); err != nil {
		return nil, err
	}
	if err := envconfig.Process("MARKETVET_LIMITS", &cfg.Limits); err != nil {
		return nil, err
	}
	return cfg, nil
}
