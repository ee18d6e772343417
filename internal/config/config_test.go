package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postcheck-engine/internal/rules"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, DefaultInput, cfg.App.Input)
	assert.Equal(t, DefaultOutput, cfg.App.Output)
	assert.Equal(t, rules.DefaultThresholds(), cfg.Rules.Thresholds)
}

func TestLoad_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  variant: extended
  workers: 4
rules:
  thresholds:
    short_description_length: 80
  extra_generic_terms: ["  Wire Transfer "]
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "extended", cfg.App.Variant)
	assert.Equal(t, 4, cfg.App.Workers)
	assert.Equal(t, DefaultInput, cfg.App.Input)
	assert.Equal(t, 80, cfg.Rules.Thresholds.ShortDescriptionLength)
	assert.Equal(t, rules.LowWordCount, cfg.Rules.Thresholds.LowWordCount)

	norm, vr := NormalizeAndValidate(cfg)
	assert.True(t, vr.OK(), vr.Errors)
	assert.NotEmpty(t, vr.Warnings)
	assert.Equal(t, []string{"wire transfer"}, norm.Rules.ExtraGenericTerms)

	rs, err := norm.RuleSet()
	require.NoError(t, err)
	assert.Equal(t, rules.Extended, rs.Variant)
	assert.Contains(t, rs.Vocabulary.GenericTerms, "easy money")
	assert.Contains(t, rs.Vocabulary.GenericTerms, "wire transfer")
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeAndValidate_Errors(t *testing.T) {
	cfg := Default()
	cfg.App.Variant = "deluxe"
	cfg.App.Format = "xml"
	cfg.App.Workers = -1
	cfg.Rules.Thresholds.MaxSimilarity = 1.5
	cfg.Serve.MaxBodyMB = 0

	_, vr := NormalizeAndValidate(cfg)
	assert.False(t, vr.OK())
	assert.Len(t, vr.Errors, 5)
	assert.Error(t, Validate(cfg))
}

func TestNormalizeAndValidate_DefaultsAreClean(t *testing.T) {
	_, vr := NormalizeAndValidate(Default())
	assert.Empty(t, vr.Errors)
	assert.Empty(t, vr.Warnings)
}

func TestVocabulary_ReplacesAndExtends(t *testing.T) {
	cfg := Default()
	cfg.Rules.GenericTerms = []string{"crypto"}
	cfg.Rules.ExtraGenericTerms = []string{"bonus"}
	cfg.Rules.URLMarkers = []string{"https"}

	v := cfg.Vocabulary(rules.Basic)
	assert.Equal(t, []string{"crypto", "bonus"}, v.GenericTerms)
	assert.Equal(t, rules.ContactTerms, v.ContactTerms)
	assert.Equal(t, []string{"https"}, v.URLMarkers)

	// package defaults stay untouched
	assert.Equal(t, "work from home", rules.BasicGenericTerms[0])
}

func TestEngine_StripHTML(t *testing.T) {
	cfg := Default()
	cfg.Normalize.StripHTML = true
	e, err := cfg.Engine()
	require.NoError(t, err)
	assert.True(t, e.Extractor.StripHTML)
	assert.False(t, e.Extractor.Extended)
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yml")

	cfg := Default()
	cfg.App.Variant = "extended"
	require.NoError(t, SaveAtomic(path, cfg))
	cfg.App.Workers = 2
	require.NoError(t, SaveAtomic(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.FileExists(t, path+".bak")
	assert.NoFileExists(t, path+".tmp")
}

func TestSaveAtomic_RejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.App.Variant = "nope"
	path := filepath.Join(t.TempDir(), "config.yml")
	assert.Error(t, SaveAtomic(path, cfg))
	assert.NoFileExists(t, path)
}

func TestEnsureUserConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	created, err := EnsureUserConfig(path)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureUserConfig(path)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestOverlayRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  thresholds:
    max_exclamations: 9
  contact_terms: [whatsapp]
`), 0o644))

	cfg := Default()
	require.NoError(t, OverlayRules(&cfg, path))
	assert.Equal(t, 9, cfg.Rules.Thresholds.MaxExclamations)
	assert.Equal(t, rules.MaxSpecialChars, cfg.Rules.Thresholds.MaxSpecialChars)
	assert.Equal(t, []string{"whatsapp"}, cfg.Rules.ContactTerms)

	assert.NoError(t, OverlayRules(&cfg, ""))
	assert.Error(t, OverlayRules(&cfg, filepath.Join(t.TempDir(), "missing.yml")))
}
