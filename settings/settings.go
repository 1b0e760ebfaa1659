// ABOUTME: Settings supply the board's capacity limit and generation parameters.
// ABOUTME: The file source re-reads on every access so edits are observable on the next insert.
package settings

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultMaxCards is the live-collection capacity when nothing is configured.
const DefaultMaxCards = 1

// Generation holds parameters for the AI text collaborator.
type Generation struct {
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	System      string  `yaml:"system"`
}

// Settings is the full configuration snapshot read by the board.
type Settings struct {
	MaxCards     int        `yaml:"max_cards"`
	TypingTickMs int        `yaml:"typing_tick_ms"`
	MaxAnimated  int        `yaml:"max_animated"`
	AudioEnabled bool       `yaml:"audio_enabled"`
	ExportDir    string     `yaml:"export_dir"`
	Generation   Generation `yaml:"generation"`
}

// Defaults returns the settings used when no file or env overrides exist.
func Defaults() Settings {
	return Settings{
		MaxCards:     DefaultMaxCards,
		TypingTickMs: 35,
		MaxAnimated:  280,
		AudioEnabled: true,
		ExportDir:    "",
		Generation: Generation{
			Model:       "gpt-5.2",
			MaxTokens:   256,
			Temperature: 1.0,
		},
	}
}

// Source yields the current settings. The board reads MaxCards through a
// Source once per insert rather than caching it, so a changed value takes
// effect on the next operation.
type Source interface {
	Current() Settings
}

// Static is a fixed Source, useful for tests and for the no-config case.
type Static struct {
	S Settings
}

// Current returns the fixed settings.
func (s Static) Current() Settings {
	return s.S
}

// FileSource reads a YAML settings file on every Current call, then applies
// CARDPRESS_* environment overrides. Read or parse failures fall back to the
// last good snapshot (initially the defaults); configuration problems never
// break an insert.
type FileSource struct {
	Path string
	last Settings
}

// NewFileSource creates a FileSource seeded with defaults.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, last: Defaults()}
}

// Current implements Source.
func (f *FileSource) Current() Settings {
	s, err := Load(f.Path)
	if err != nil {
		s = f.last
	} else {
		f.last = s
	}
	return applyEnv(s)
}

// Load parses the YAML settings file at path on top of the defaults.
func Load(path string) (Settings, error) {
	s := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Defaults(), fmt.Errorf("parse settings: %w", err)
	}
	return normalize(s), nil
}

// applyEnv layers CARDPRESS_* environment variables over the settings.
func applyEnv(s Settings) Settings {
	if v := os.Getenv("CARDPRESS_MAX_CARDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.MaxCards = n
		}
	}
	if v := os.Getenv("CARDPRESS_MODEL"); v != "" {
		s.Generation.Model = v
	}
	if v := os.Getenv("CARDPRESS_BASE_URL"); v != "" {
		s.Generation.BaseURL = v
	}
	if v := os.Getenv("CARDPRESS_AUDIO"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.AudioEnabled = b
		}
	}
	if v := os.Getenv("CARDPRESS_EXPORT_DIR"); v != "" {
		s.ExportDir = v
	}
	return normalize(s)
}

// normalize clamps values that must stay positive.
func normalize(s Settings) Settings {
	if s.MaxCards < 1 {
		s.MaxCards = DefaultMaxCards
	}
	if s.TypingTickMs < 1 {
		s.TypingTickMs = Defaults().TypingTickMs
	}
	if s.MaxAnimated < 1 {
		s.MaxAnimated = Defaults().MaxAnimated
	}
	return s
}
