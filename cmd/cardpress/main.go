// ABOUTME: CLI entrypoint for the cardpress board: flags, settings wiring, and collaborator setup.
// ABOUTME: Detects an OpenAI API key for live generation, falling back to an offline generator.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/cardpress/audio"
	"github.com/2389-research/cardpress/llm"
	"github.com/2389-research/cardpress/prompts"
	"github.com/2389-research/cardpress/settings"
	"github.com/2389-research/cardpress/tui"
)

var version = "dev"

// config holds all CLI configuration parsed from flags.
type config struct {
	settingsFile string
	promptsDB    string
	dataDir      string
	maxCards     int
	model        string
	baseURL      string
	exportDir    string
	noAudio      bool
	showVersion  bool
}

func main() {
	loadDotEnvAuto()

	cfg := parseFlags()

	if cfg.showVersion {
		fmt.Printf("cardpress %s\n", version)
		os.Exit(0)
	}

	os.Exit(run(cfg))
}

// parseFlags parses command-line flags and returns a populated config.
func parseFlags() config {
	var cfg config

	fs := flag.NewFlagSet("cardpress", flag.ContinueOnError)
	fs.StringVar(&cfg.settingsFile, "settings", "", "Settings YAML file (default: $XDG_CONFIG_HOME/cardpress/settings.yaml)")
	fs.StringVar(&cfg.promptsDB, "prompts-db", "", "Prompt template database (default: <data-dir>/prompts.db)")
	fs.StringVar(&cfg.dataDir, "data-dir", "", "Data directory for persistent state (default: $XDG_DATA_HOME/cardpress)")
	fs.IntVar(&cfg.maxCards, "max-cards", 0, "Live card capacity; overrides the settings file")
	fs.StringVar(&cfg.model, "model", "", "Generation model; overrides the settings file")
	fs.StringVar(&cfg.baseURL, "base-url", "", "Custom API base URL for an OpenAI-compatible provider")
	fs.StringVar(&cfg.exportDir, "export-dir", "", "Directory for card snapshot exports")
	fs.BoolVar(&cfg.noAudio, "no-audio", false, "Disable typewriter sound effects")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	return cfg
}

// run wires the collaborators and hands the terminal to Bubble Tea.
// Returns an exit code: 0 for success, 1 for failure.
func run(cfg config) int {
	// TUI owns stdout; keep log output away from the alt screen.
	log.SetOutput(os.Stderr)

	src, err := buildSettingsSource(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	s := src.Current()

	library := openPromptLibrary(cfg)
	if library != nil {
		defer library.Close()
	}

	clicker := audio.NewClicker()
	clicker.Init(s.AudioEnabled)
	defer clicker.Close()

	model := tui.NewAppModel(src, buildGenerator(s), clicker, library)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// buildSettingsSource resolves the settings file and layers flag overrides on
// top. With no file anywhere, the source is the static defaults plus overrides.
func buildSettingsSource(cfg config) (settings.Source, error) {
	path := cfg.settingsFile
	if path == "" {
		configDir, err := defaultConfigDir()
		if err == nil {
			candidate := filepath.Join(configDir, "settings.yaml")
			if _, statErr := os.Stat(candidate); statErr == nil {
				path = candidate
			}
		}
	}

	var base settings.Source
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("settings file: %w", err)
		}
		base = settings.NewFileSource(path)
	} else {
		base = settings.Static{S: settings.Defaults()}
	}

	return overlaySource{base: base, cfg: cfg}, nil
}

// overlaySource applies flag overrides on top of another settings source.
type overlaySource struct {
	base settings.Source
	cfg  config
}

// Current implements settings.Source.
func (o overlaySource) Current() settings.Settings {
	s := o.base.Current()
	if o.cfg.maxCards > 0 {
		s.MaxCards = o.cfg.maxCards
	}
	if o.cfg.model != "" {
		s.Generation.Model = o.cfg.model
	}
	if o.cfg.baseURL != "" {
		s.Generation.BaseURL = o.cfg.baseURL
	}
	if o.cfg.exportDir != "" {
		s.ExportDir = o.cfg.exportDir
	}
	if o.cfg.noAudio {
		s.AudioEnabled = false
	}
	return s
}

// openPromptLibrary opens the template database, creating the data directory
// as needed. Failures degrade to a nil library; the board runs without one.
func openPromptLibrary(cfg config) *prompts.Store {
	path := cfg.promptsDB
	if path == "" {
		dataDir, err := resolveDataDir(cfg.dataDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not resolve data dir: %v\n", err)
			return nil
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not create data dir: %v\n", err)
			return nil
		}
		path = filepath.Join(dataDir, "prompts.db")
	}

	library, err := prompts.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: prompt library unavailable: %v\n", err)
		return nil
	}
	return library
}

// buildGenerator returns a live OpenAI generator when an API key is present,
// an offline generator otherwise.
func buildGenerator(s settings.Settings) llm.Generator {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		fmt.Fprintln(os.Stderr, "no OPENAI_API_KEY found; ctrl+g will produce placeholder text")
		return llm.Static{}
	}

	opts := []llm.OpenAIOption{
		llm.WithMaxTokens(s.Generation.MaxTokens),
		llm.WithTemperature(s.Generation.Temperature),
	}
	if s.Generation.System != "" {
		opts = append(opts, llm.WithSystem(s.Generation.System))
	}
	return llm.NewOpenAIGenerator(key, s.Generation.Model, s.Generation.BaseURL, opts...)
}

// resolveDataDir returns the data directory to use, preferring an explicit
// override and falling back to the XDG-based default.
func resolveDataDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return defaultDataDir()
}
