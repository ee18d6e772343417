// config/config.go
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"postcheck-engine/internal/features"
	"postcheck-engine/internal/rules"
)

const (
	DefaultInput  = "linkedin_job_posts.csv"
	DefaultOutput = "linkedin_job_posts_with_potentially_fake.csv"
)

// Rules overrides the built-in rule configuration. Empty term lists mean
// "use the variant's defaults"; thresholds default to the rules constants.
type Rules struct {
	Thresholds        rules.Thresholds `yaml:"thresholds" json:"thresholds"`
	GenericTerms      []string         `yaml:"generic_terms,omitempty" json:"generic_terms,omitempty"`
	ExtraGenericTerms []string         `yaml:"extra_generic_terms,omitempty" json:"extra_generic_terms,omitempty"`
	ContactTerms      []string         `yaml:"contact_terms,omitempty" json:"contact_terms,omitempty"`
	URLMarkers        []string         `yaml:"url_markers,omitempty" json:"url_markers,omitempty"`
}

type Config struct {
	App struct {
		Input   string `yaml:"input" json:"input"`
		Output  string `yaml:"output" json:"output"`
		Format  string `yaml:"format" json:"format"` // csv | ndjson; empty follows the output extension
		Variant string `yaml:"variant" json:"variant"`
		Workers int    `yaml:"workers" json:"workers"` // 0 = one per CPU
		Summary string `yaml:"summary" json:"summary"` // text | json | none
	} `yaml:"app" json:"app"`

	Normalize struct {
		StripHTML bool `yaml:"strip_html" json:"strip_html"`
	} `yaml:"normalize" json:"normalize"`

	Rules Rules `yaml:"rules" json:"rules"`

	Store struct {
		Path       string `yaml:"path" json:"path"` // empty disables the run store
		RetainDays int    `yaml:"retain_days" json:"retain_days"`
	} `yaml:"store" json:"store"`

	Serve struct {
		Addr      string `yaml:"addr" json:"addr"`
		MaxBodyMB int    `yaml:"max_body_mb" json:"max_body_mb"`
	} `yaml:"serve" json:"serve"`
}

func Default() Config {
	var cfg Config
	cfg.App.Input = DefaultInput
	cfg.App.Output = DefaultOutput
	cfg.App.Variant = string(rules.Basic)
	cfg.App.Summary = "text"
	cfg.Rules.Thresholds = rules.DefaultThresholds()
	cfg.Store.RetainDays = 90
	cfg.Serve.Addr = "127.0.0.1:38471"
	cfg.Serve.MaxBodyMB = 64
	return cfg
}

// Load reads path over Default(). A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// RuleSet builds the rule set the config describes.
func (c Config) RuleSet() (rules.RuleSet, error) {
	v, err := rules.ParseVariant(c.App.Variant)
	if err != nil {
		return rules.RuleSet{}, err
	}
	return rules.New(v, c.Rules.Thresholds, c.Vocabulary(v))
}

// Vocabulary merges the configured term lists with the variant defaults.
func (c Config) Vocabulary(v rules.Variant) features.Vocabulary {
	vocab := rules.DefaultVocabulary(v)
	if len(c.Rules.GenericTerms) > 0 {
		vocab.GenericTerms = append([]string{}, c.Rules.GenericTerms...)
	}
	vocab.GenericTerms = append(vocab.GenericTerms, c.Rules.ExtraGenericTerms...)
	if len(c.Rules.ContactTerms) > 0 {
		vocab.ContactTerms = append([]string{}, c.Rules.ContactTerms...)
	}
	if len(c.Rules.URLMarkers) > 0 {
		vocab.URLMarkers = append([]string{}, c.Rules.URLMarkers...)
	}
	return vocab
}

// Engine builds the labeling engine for the configured variant.
func (c Config) Engine() (rules.Engine, error) {
	rs, err := c.RuleSet()
	if err != nil {
		return rules.Engine{}, err
	}
	return rules.NewEngine(rs, c.Normalize.StripHTML), nil
}
