// config/overlay.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// OverlayRules replaces cfg.Rules with the rules section of a standalone
// YAML file, so one rules file can be shared by several configs. Keys not
// present in the file keep their current values.
func OverlayRules(cfg *Config, rulesPath string) error {
	if rulesPath == "" {
		return nil
	}
	b, err := os.ReadFile(rulesPath)
	if err != nil {
		return err
	}

	var rf struct {
		Rules *Rules `yaml:"rules"`
	}
	rf.Rules = &cfg.Rules
	return yaml.Unmarshal(b, &rf)
}
