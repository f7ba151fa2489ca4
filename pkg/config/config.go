package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DefaultPath         = "~/.devo.db"
	DefaultBackend      = "diskv"
	DefaultKey          = "journalEntries"
	DefaultLocale       = "en-US"
	DefaultServerAddr   = ":8000"
	DefaultServerRate   = "30-M"
	DefaultAssistantURL = "https://api.groq.com/openai/v1/chat/completions"
	DefaultModel        = "llama3-70b-8192"
)

// Config is the resolved devo configuration.
type Config struct {
	Path     string
	Backend  string
	Key      string
	RedisURL string
	Debug    bool
	LogDir   string

	Assistant Assistant
	Voice     Voice
	Server    Server
}

// Assistant configures the chat completion endpoint behind the ask features.
type Assistant struct {
	URL    string
	APIKey string
	Model  string
}

// Voice configures the terminal speech adapters.
type Voice struct {
	Locale        string
	Preferred     []string
	SpeechCommand string
}

type Server struct {
	Addr string
	Rate string
}

// Load reads .env, the optional .devo.yaml and DEVO_* environment variables.
func Load() (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(".devo") // .yaml is implicit
	v.SetEnvPrefix("DEVO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("DEVO_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("path", DefaultPath)
	v.SetDefault("backend", DefaultBackend)
	v.SetDefault("key", DefaultKey)
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("debug", false)
	v.SetDefault("log_dir", "")
	v.SetDefault("assistant.url", DefaultAssistantURL)
	v.SetDefault("assistant.api_key", "")
	v.SetDefault("assistant.model", DefaultModel)
	v.SetDefault("voice.locale", DefaultLocale)
	v.SetDefault("voice.preferred", []string{"female", "Google", "Microsoft Zira", "Samantha"})
	v.SetDefault("voice.speech_command", "")
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.rate", DefaultServerRate)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Path:     v.GetString("path"),
		Backend:  strings.ToLower(v.GetString("backend")),
		Key:      v.GetString("key"),
		RedisURL: v.GetString("redis_url"),
		Debug:    v.GetBool("debug"),
		LogDir:   v.GetString("log_dir"),
		Assistant: Assistant{
			URL:    v.GetString("assistant.url"),
			APIKey: v.GetString("assistant.api_key"),
			Model:  v.GetString("assistant.model"),
		},
		Voice: Voice{
			Locale:        v.GetString("voice.locale"),
			Preferred:     v.GetStringSlice("voice.preferred"),
			SpeechCommand: v.GetString("voice.speech_command"),
		},
		Server: Server{
			Addr: v.GetString("server.addr"),
			Rate: v.GetString("server.rate"),
		},
	}

	switch cfg.Backend {
	case "diskv", "redis", "sqlite", "memory":
	default:
		return nil, fmt.Errorf("config: unsupported backend %q", cfg.Backend)
	}
	if strings.TrimSpace(cfg.Key) == "" {
		return nil, errors.New("config: storage key must not be empty")
	}
	return cfg, nil
}

// BasePath is the expanded storage directory.
func (c *Config) BasePath() string {
	p, err := homedir.Expand(c.Path)
	if err != nil {
		return c.Path
	}
	return p
}

func (c *Config) StorageBackend() string { return c.Backend }

func (c *Config) StorageKey() string { return c.Key }

func (c *Config) RedisAddr() string { return c.RedisURL }

// LogPath resolves the log directory, defaulting to a logs folder next to
// the store.
func (c *Config) LogPath() string {
	if c.LogDir != "" {
		if p, err := homedir.Expand(c.LogDir); err == nil {
			return p
		}
		return c.LogDir
	}
	return filepath.Join(filepath.Dir(c.BasePath()), ".devo-logs")
}
