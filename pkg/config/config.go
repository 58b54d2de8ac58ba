package config

import (
	"fmt"
	"strings"

	"github.com/japaniel/vocabdrill/pkg/answer"
	"github.com/japaniel/vocabdrill/pkg/session"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. VOCABDRILL_DB.
const EnvPrefix = "VOCABDRILL"

// Config holds application configuration.
type Config struct {
	DBPath      string
	Threshold   float64
	QuitCommand string
	Seed        uint64 // 0 means seed from the clock
	Hints       bool
}

// flag name -> viper key
var flagKeys = map[string]string{
	"db":           "db",
	"threshold":    "threshold",
	"quit-command": "quit_command",
	"seed":         "seed",
	"hints":        "hints",
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("db", "words.db")
	v.SetDefault("threshold", answer.DefaultThreshold)
	v.SetDefault("quit_command", session.DefaultQuitCommand)
	v.SetDefault("seed", 0)
	v.SetDefault("hints", true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// AddFlags registers the settings as flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.String("db", "words.db", "Path to SQLite database")
	fs.Float64("threshold", answer.DefaultThreshold, "Largest distance accepted as a correct answer (0-1)")
	fs.String("quit-command", session.DefaultQuitCommand, "Input line that ends the drill")
	fs.Uint64("seed", 0, "Random seed for card selection (0 picks one from the clock)")
	fs.Bool("hints", true, "Show readings and spelling hints")
}

// BindFlags makes flags on fs override the other sources in v.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the optional config file and returns the validated settings.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	cfg := Config{
		DBPath:      v.GetString("db"),
		Threshold:   v.GetFloat64("threshold"),
		QuitCommand: strings.TrimSpace(v.GetString("quit_command")),
		Seed:        v.GetUint64("seed"),
		Hints:       v.GetBool("hints"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path must be set")
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be between 0 and 1, got %v", c.Threshold)
	}
	if strings.TrimSpace(c.QuitCommand) == "" {
		return fmt.Errorf("quit command must be non-empty")
	}
	return nil
}
