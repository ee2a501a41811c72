package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apiforge/semdiff/internal/simplelogger"
	"github.com/apiforge/semdiff/semdiff"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultAlgorithm = "myers"
	defaultStyle     = "auto"
	defaultFormat    = "json"
	envPrefix        = "SEMDIFF"
)

// Config is semdiff's configuration. Sources, lowest precedence first: built-in defaults, the config file, SEMDIFF_* environment variables (ex: SEMDIFF_MAX_BYTES),
// and command-line flags.
type Config struct {
	Semantic  bool          `mapstructure:"semantic"`
	Format    string        `mapstructure:"format"`    // json, yaml, or auto
	Context   int           `mapstructure:"context"`   // lines of context around each change
	Algorithm string        `mapstructure:"algorithm"` // myers or difflib
	Timeout   time.Duration `mapstructure:"timeout"`   // 0 means exact
	Style     string        `mapstructure:"style"`     // plain, unified, pretty, or auto
	Width     int           `mapstructure:"width"`     // pretty only; 0 means terminal width
	MaxBytes  int64         `mapstructure:"max_bytes"` // 0 means no limit
}

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"semantic":  "semantic",
	"format":    "format",
	"context":   "context",
	"algorithm": "algorithm",
	"timeout":   "timeout",
	"style":     "style",
	"width":     "width",
	"max_bytes": "max-bytes",
}

// loadConfig loads Config. If path is empty, the default config file is used if it exists; an explicit path must exist.
func loadConfig(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("semantic", false)
	v.SetDefault("format", defaultFormat)
	v.SetDefault("context", semdiff.DefaultContext)
	v.SetDefault("algorithm", defaultAlgorithm)
	v.SetDefault("timeout", "0s")
	v.SetDefault("style", defaultStyle)
	v.SetDefault("width", 0)
	v.SetDefault("max_bytes", 0)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	// Read config file (optional - won't error if missing)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("load configuration: %w", err)
		}
	} else {
		simplelogger.Log("cli: using config file %s", v.ConfigFileUsed())
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, name := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("load configuration: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("load configuration: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	if simplelogger.Enabled() {
		simplelogger.Log("cli: effective config %+v", cfg)
	}
	return cfg, nil
}

// configDir returns the directory holding the default config file: $XDG_CONFIG_HOME/semdiff, or ~/.config/semdiff.
func configDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "semdiff"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "semdiff"), nil
}

func validateConfig(cfg Config) error {
	if cfg.Context < 0 {
		return fmt.Errorf("invalid config: context must be >= 0 (got %d)", cfg.Context)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("invalid config: timeout must be >= 0 (got %s)", cfg.Timeout)
	}
	if cfg.Width < 0 {
		return fmt.Errorf("invalid config: width must be >= 0 (got %d)", cfg.Width)
	}
	if cfg.MaxBytes < 0 {
		return fmt.Errorf("invalid config: max_bytes must be >= 0 (got %d)", cfg.MaxBytes)
	}
	if _, err := semdiff.ParseAlgorithm(cfg.Algorithm); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := semdiff.ParseFormat(cfg.Format); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := parseStyle(cfg.Style, terminal{}); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// parseStyle is semdiff.ParseStyle plus "auto", which picks pretty for a terminal and plain otherwise.
func parseStyle(s string, out terminal) (semdiff.Style, error) {
	if strings.EqualFold(strings.TrimSpace(s), "auto") {
		if out.isTTY {
			return semdiff.StylePretty, nil
		}
		return semdiff.StylePlain, nil
	}
	return semdiff.ParseStyle(s)
}

// options converts cfg to semdiff.Options for output to out. cfg must have passed validateConfig.
func (cfg Config) options(out terminal) (semdiff.Options, error) {
	opts := semdiff.DefaultOptions()
	opts.Context = cfg.Context
	opts.Timeout = cfg.Timeout

	var err error
	if opts.Algorithm, err = semdiff.ParseAlgorithm(cfg.Algorithm); err != nil {
		return semdiff.Options{}, err
	}
	if opts.Format, err = semdiff.ParseFormat(cfg.Format); err != nil {
		return semdiff.Options{}, err
	}
	if opts.Style, err = parseStyle(cfg.Style, out); err != nil {
		return semdiff.Options{}, err
	}

	opts.Width = cfg.Width
	if opts.Width == 0 && opts.Style == semdiff.StylePretty {
		opts.Width = out.width
	}
	return opts, nil
}
