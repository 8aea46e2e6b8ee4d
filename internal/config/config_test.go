package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml"

	"awesome-dragon.science/go/mcmotd/pkg/log"
)

var tests = []struct {
	name          string
	tomlStr       string
	IsValid       bool
	expectedError string
	expectedConf  *Config
}{
	{
		name:         "empty",
		IsValid:      true,
		expectedConf: Default(),
	},
	{
		name:    "full",
		IsValid: true,
		tomlStr: `
		log_level = "trace"

		[obfuscate]
		interval_ms = 100
		min_rune = 33
		max_rune = 126

		[page]
		file = "motd.html"
		source_id = "raw"
		target_id = "pretty"
		`,
		expectedConf: &Config{
			LogLevel:  "trace",
			Obfuscate: Obfuscate{IntervalMS: 100, MinRune: 33, MaxRune: 126},
			Page:      Page{File: "motd.html", SourceID: "raw", TargetID: "pretty"},
		},
	},
	{
		name:    "partial",
		IsValid: true,
		tomlStr: `
		[page]
		source_id = "raw"
		`,
		expectedConf: &Config{
			LogLevel:  DefaultLogLevel,
			Obfuscate: Obfuscate{IntervalMS: 50, MinRune: 64, MaxRune: 95},
			Page:      Page{SourceID: "raw", TargetID: DefaultTargetID},
		},
	},
	{
		name:          "bad level",
		tomlStr:       `log_level = "loud"`,
		expectedError: `invalid config: unknown log level "LOUD"`,
	},
	{
		name: "negative interval",
		tomlStr: `
		[obfuscate]
		interval_ms = -5
		`,
		expectedError: "invalid config: obfuscate.interval_ms cannot be negative (got -5)",
	},
	{
		name: "backwards range",
		tomlStr: `
		[obfuscate]
		min_rune = 100
		max_rune = 50
		`,
		expectedError: "invalid config: obfuscate: rune range [100, 50] is backwards",
	},
	{
		name: "control characters",
		tomlStr: `
		[obfuscate]
		min_rune = 0
		max_rune = 31
		`,
		expectedError: "invalid config: obfuscate: rune range [0, 31] includes control characters",
	},
	{
		name: "surrogates",
		tomlStr: `
		[obfuscate]
		min_rune = 55296
		max_rune = 57343
		`,
		expectedError: "invalid config: obfuscate: rune range [55296, 57343] overlaps the surrogate block",
	},
	{
		name: "past max rune",
		tomlStr: `
		[obfuscate]
		min_rune = 1114112
		max_rune = 1114200
		`,
		expectedError: "invalid config: obfuscate: rune range [1114112, 1114200] is out of bounds",
	},
	{
		name: "ends on delete",
		tomlStr: `
		[obfuscate]
		min_rune = 64
		max_rune = 127
		`,
		expectedError: "invalid config: obfuscate: rune range [64, 127] does not start and end on printable characters",
	},
	{
		name:    "wide printable range",
		IsValid: true,
		tomlStr: `
		[obfuscate]
		min_rune = 32
		max_rune = 126
		`,
		expectedConf: &Config{
			LogLevel:  DefaultLogLevel,
			Obfuscate: Obfuscate{IntervalMS: 50, MinRune: 32, MaxRune: 126},
			Page:      Page{SourceID: DefaultSourceID, TargetID: DefaultTargetID},
		},
	},
	{
		name: "same ids",
		tomlStr: `
		[page]
		source_id = "x"
		target_id = "x"
		`,
		expectedError: "invalid config: page.source_id and page.target_id must differ",
	},
}

func TestMakeConfig(t *testing.T) {
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tree, err := toml.Load(tt.tomlStr)
			if err != nil {
				t.Fatalf("could not load test TOML: %s", err)
			}

			res, err := makeConfig(tree)
			if tt.IsValid {
				if err != nil {
					t.Fatalf("unexpected error: %s", err)
				}

				if !reflect.DeepEqual(res, tt.expectedConf) {
					t.Errorf("makeConfig() = %#v, want %#v", res, tt.expectedConf)
				}

				return
			}

			if err == nil {
				t.Fatalf("expected error %q, got nil", tt.expectedError)
			}

			if err.Error() != tt.expectedError {
				t.Errorf("got error %q, want %q", err, tt.expectedError)
			}
		})
	}
}

func TestGetConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("log_level = \"debug\"\n[obfuscate]\ninterval_ms = 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	conf, err := GetConfig(path)
	if err != nil {
		t.Fatalf("GetConfig() error: %s", err)
	}

	if conf.OriginalPath != path {
		t.Errorf("OriginalPath = %q, want %q", conf.OriginalPath, path)
	}

	if conf.Level() != log.DEBUG {
		t.Errorf("Level() = %v, want %v", conf.Level(), log.DEBUG)
	}

	opts := conf.SchedulerOptions()
	if opts.Interval != 20*time.Millisecond || opts.MinRune != 64 || opts.MaxRune != 95 {
		t.Errorf("SchedulerOptions() = %+v", opts)
	}

	_, err = GetConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.HasPrefix(err.Error(), "could not read or parse config file") {
		t.Errorf("GetConfig() on missing file returned %v", err)
	}
}
