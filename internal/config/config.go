package config

import (
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/pelletier/go-toml"

	"awesome-dragon.science/go/mcmotd/pkg/log"
	"awesome-dragon.science/go/mcmotd/pkg/obfuscate"
)

// Config is the main config struct
type Config struct {
	OriginalPath string `toml:"-"`

	LogLevel  string    `toml:"log_level"`
	Obfuscate Obfuscate `toml:"obfuscate"`
	Page      Page      `toml:"page"`
}

// Obfuscate configures the obfuscation scheduler
type Obfuscate struct {
	IntervalMS int `toml:"interval_ms"`
	MinRune    int `toml:"min_rune"`
	MaxRune    int `toml:"max_rune"`
}

// Page names the document and the elements text is read from and rendered into
type Page struct {
	File     string `toml:"file"`
	SourceID string `toml:"source_id"`
	TargetID string `toml:"target_id"`
}

// Default values for anything left unset
const (
	DefaultLogLevel = "info"
	DefaultSourceID = "input"
	DefaultTargetID = "output"
)

// Default returns a Config with every default applied
func Default() *Config {
	c := new(Config)
	c.setDefaults()

	return c
}

func (c *Config) setDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	if c.Obfuscate.IntervalMS == 0 {
		c.Obfuscate.IntervalMS = int(obfuscate.DefaultInterval / time.Millisecond)
	}

	if c.Obfuscate.MinRune == 0 && c.Obfuscate.MaxRune == 0 {
		c.Obfuscate.MinRune = obfuscate.DefaultMinRune
		c.Obfuscate.MaxRune = obfuscate.DefaultMaxRune
	}

	if c.Page.SourceID == "" {
		c.Page.SourceID = DefaultSourceID
	}

	if c.Page.TargetID == "" {
		c.Page.TargetID = DefaultTargetID
	}
}

// GetConfig fetches the config located at the given path
func GetConfig(path string) (*Config, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read or parse config file: %w", err)
	}

	out, err := makeConfig(tree)
	if err != nil {
		return nil, err
	}

	out.OriginalPath = path

	return out, nil
}

func makeConfig(tree *toml.Tree) (*Config, error) {
	out := new(Config)
	if err := tree.Unmarshal(out); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	out.setDefaults()

	if err := validateConfig(out); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return out, nil
}

func validateConfig(c *Config) error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.Obfuscate.IntervalMS < 0 {
		return fmt.Errorf("obfuscate.interval_ms cannot be negative (got %d)", c.Obfuscate.IntervalMS)
	}

	if c.Obfuscate.MaxRune > unicode.MaxRune || c.Obfuscate.MinRune < 0 {
		return fmt.Errorf("obfuscate: rune range [%d, %d] is out of bounds", c.Obfuscate.MinRune, c.Obfuscate.MaxRune)
	}

	if err := obfuscate.CheckRange(rune(c.Obfuscate.MinRune), rune(c.Obfuscate.MaxRune)); err != nil {
		return fmt.Errorf("obfuscate: %w", err)
	}

	if c.Page.SourceID == c.Page.TargetID {
		return errors.New("page.source_id and page.target_id must differ")
	}

	return nil
}

// Level returns the configured log level. The config has been validated, so the level always parses
func (c *Config) Level() log.Level {
	lvl, _ := log.ParseLevel(c.LogLevel)
	return lvl
}

// SchedulerOptions converts the obfuscate section into scheduler options
func (c *Config) SchedulerOptions() obfuscate.Options {
	return obfuscate.Options{
		Interval: time.Duration(c.Obfuscate.IntervalMS) * time.Millisecond,
		MinRune:  rune(c.Obfuscate.MinRune),
		MaxRune:  rune(c.Obfuscate.MaxRune),
	}
}
