// Package config loads .herb.yml with koanf.
//
// Layers, lowest to highest priority: built-in defaults, the config file,
// HERB_* environment variables and explicitly set command-line flags.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/herb/pkg/core"
)

// FileNames are the config file names, in lookup order.
var FileNames = []string{".herb.yml", ".herb.yaml"}

// EnvPrefix prefixes environment overrides, e.g. HERB_LINTER_CONCURRENCY=4.
const EnvPrefix = "HERB_"

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"concurrency":      "linter.concurrency",
	"custom-rules-dir": "linter.custom_rules_dir",
}

// loggerKey is used to store logger in context.
type loggerKey struct{}

// configKey is used to store the loaded config in context.
type configKey struct{}

// Loaded is a resolved configuration.
type Loaded struct {
	*core.Config
	File string // config file used, empty when none was found
	Root string // directory relative paths are resolved against
}

// FindConfigFile searches startDir and its parents for a config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func FindConfigFile(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Load resolves the configuration. cfgFile, when set, must exist; otherwise
// the config file is searched upward from the working directory. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Loaded, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	// 2. Config file
	loaded := &Loaded{Root: cwd}
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
		}
		loaded.File = cfgFile
	} else {
		loaded.File = FindConfigFile(cwd)
	}
	if loaded.File != "" {
		if err := k.Load(file.Provider(loaded.File), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", loaded.File, err)
		}
		if abs, err := filepath.Abs(filepath.Dir(loaded.File)); err == nil {
			loaded.Root = abs
		}
	}

	// 3. Environment variables
	// Transform: HERB_LINTER_CUSTOM_RULES_DIR -> linter.custom_rules_dir
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal and validate
	var cfg core.Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", describe(loaded.File), err)
	}
	cfg.Linter.CustomRulesDir = resolvePathRelativeTo(cfg.Linter.CustomRulesDir, loaded.Root)

	loaded.Config = &cfg
	return loaded, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func describe(file string) string {
	if file == "" {
		return "defaults"
	}
	return file
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// WithConfig returns ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Loaded) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the loaded config from the command context, falling
// back to the defaults rooted at the working directory.
func GetConfig(ctx context.Context) *Loaded {
	if c, ok := ctx.Value(configKey{}).(*Loaded); ok {
		return c
	}
	root, _ := os.Getwd()
	cfg := Default()
	cfg.Linter.CustomRulesDir = resolvePathRelativeTo(cfg.Linter.CustomRulesDir, root)
	return &Loaded{Config: cfg, Root: root}
}
