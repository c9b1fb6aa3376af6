package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "IFACEX"
	AppName   = "ifacex"
)

const (
	BackendKeyring = "keyring"
	BackendFile    = "file"
	BackendRedis   = "redis"
	BackendMemory  = "memory"
)

type Config struct {
	Poll    Poll    `mapstructure:"poll"`
	Login   Login   `mapstructure:"login"`
	Storage Storage `mapstructure:"storage"`
	Log     Log     `mapstructure:"log"`
	UI      UI      `mapstructure:"ui"`
}

type (
	Poll struct {
		Interval time.Duration `mapstructure:"interval"`
		Timeout  time.Duration `mapstructure:"timeout"`
		Flash    time.Duration `mapstructure:"flash"`
	}

	Login struct {
		Timeout time.Duration `mapstructure:"timeout"`
		// AuthStatusCodes are the probe statuses reported as "Invalid API Key or URL.".
		AuthStatusCodes []int `mapstructure:"auth_status_codes"`
	}

	Storage struct {
		Backend string      `mapstructure:"backend"`
		Service string      `mapstructure:"service"`
		File    FileStorage `mapstructure:"file"`
		Redis   Redis       `mapstructure:"redis"`
	}

	FileStorage struct {
		Path       string `mapstructure:"path"`
		Passphrase string `mapstructure:"passphrase"`
	}

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
		Prefix   string `mapstructure:"prefix"`
	}

	Log struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	}

	UI struct {
		Sound bool `mapstructure:"sound"`
	}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("poll.interval", 60*time.Second)
	v.SetDefault("poll.timeout", 3*time.Second)
	v.SetDefault("poll.flash", 3*time.Second)
	v.SetDefault("login.timeout", 3*time.Second)
	v.SetDefault("login.auth_status_codes", []int{401, 403, 500})
	v.SetDefault("storage.backend", BackendKeyring)
	v.SetDefault("storage.service", "ifacex-watch")
	v.SetDefault("storage.file.path", filepath.Join(configDir(), "credentials.bin"))
	v.SetDefault("storage.file.passphrase", "")
	v.SetDefault("storage.redis.addr", "127.0.0.1:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "ifacex__")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("ui.sound", true)
}

// Load reads the optional config file, then environment overrides. An empty
// path searches the working directory and the user config directory.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(configDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func Default() *Config {
	v := viper.New()
	setDefaults(v)
	conf := &Config{}
	_ = v.Unmarshal(conf)
	return conf
}

func (c *Config) Validate() error {
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be positive, got %v", c.Poll.Interval)
	}
	if c.Poll.Timeout <= 0 || c.Login.Timeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	switch c.Storage.Backend {
	case BackendKeyring, BackendFile, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	return nil
}

// AuthCodes returns the configured auth-failure statuses as a set.
func (c *Config) AuthCodes() map[int]bool {
	set := make(map[int]bool, len(c.Login.AuthStatusCodes))
	for _, code := range c.Login.AuthStatusCodes {
		set[code] = true
	}
	return set
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, AppName)
	}
	return "."
}
