// Package config loads the bot's settings from defaults, an optional YAML
// file, SCRABBLEBOT_* environment variables, and --key=value arguments, in
// increasing order of precedence.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	ConfigDebug               = "debug"
	ConfigLogLevel            = "log-level"
	ConfigConfigFile          = "config-file"
	ConfigDataPath            = "data-path"
	ConfigStore               = "store"
	ConfigSqlitePath          = "sqlite-path"
	ConfigDictionary          = "dictionary"
	ConfigDictionaryPath      = "dictionary-path"
	ConfigLexicon             = "lexicon"
	ConfigKWGPath             = "kwg-path"
	ConfigNatsURL             = "nats-url"
	ConfigNatsSubject         = "nats-subject"
	ConfigNatsOutboundSubject = "nats-outbound-subject"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreSqlite = "sqlite"
	StoreMemory = "memory"
)

// Dictionary kinds.
const (
	DictionaryWordList = "wordlist"
	DictionaryKWG      = "kwg"
)

type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config with every default set and nothing else.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigLogLevel, "info")
	c.SetDefault(ConfigDataPath, "./data")
	c.SetDefault(ConfigStore, StoreFile)
	c.SetDefault(ConfigSqlitePath, "./data/scrabble.db")
	c.SetDefault(ConfigDictionary, DictionaryWordList)
	c.SetDefault(ConfigDictionaryPath, "./data/scrabble-words.txt")
	c.SetDefault(ConfigLexicon, "CSW21")
	c.SetDefault(ConfigKWGPath, "./data")
	c.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	c.SetDefault(ConfigNatsSubject, "scrabblebot.commands")
	c.SetDefault(ConfigNatsOutboundSubject, "scrabblebot.messages")
}

// Load reads the environment and the given command-line arguments. A
// config-file setting, from either source, is read before the arguments are
// applied.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()
	c.SetEnvPrefix("scrabblebot")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	overrides := map[string]string{}
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			return fmt.Errorf("unexpected argument %q; use --key=value", arg)
		}
		key, val, found := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if !found {
			// a bare flag is a boolean switch
			val = "true"
		}
		overrides[key] = val
	}

	cfgFile := c.GetString(ConfigConfigFile)
	if f, ok := overrides[ConfigConfigFile]; ok {
		cfgFile = f
	}
	if cfgFile != "" {
		c.SetConfigFile(cfgFile)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	for k, v := range overrides {
		c.Set(k, v)
	}
	return nil
}

// AdjustRelativePaths makes the path settings that start with ./ relative to
// basePath, typically the directory of the executable.
func (c *Config) AdjustRelativePaths(basePath string) {
	for _, key := range []string{ConfigDataPath, ConfigSqlitePath, ConfigDictionaryPath, ConfigKWGPath} {
		p := c.GetString(key)
		if strings.HasPrefix(p, "./") {
			c.Set(key, filepath.Join(basePath, p))
		}
	}
}

// SanitizedSettings returns the settings with anything secret masked, for
// logging.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	if u, ok := settings[ConfigNatsURL].(string); ok && strings.Contains(u, "@") {
		settings[ConfigNatsURL] = "***"
	}
	return settings
}

// LogLevel is the level set by log-level, or debug if the debug switch is
// on. An unknown level name means info.
func (c *Config) LogLevel() zerolog.Level {
	if c.GetBool(ConfigDebug) {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(c.GetString(ConfigLogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
