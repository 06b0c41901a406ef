package config

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver  string `mapstructure:"driver"` // sqlite / postgres
	Path    string `mapstructure:"path"`   // sqlite file
	DSN     string `mapstructure:"dsn"`    // postgres dsn
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// TTL returns the session lifetime, 30 days when unset.
func (c JWTConfig) TTL() time.Duration {
	if c.ExpireHours <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(c.ExpireHours) * time.Hour
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"` // info / debug
}

// Flags returns the std log flags for the level; debug adds file:line.
func (c LogConfig) Flags() int {
	if strings.EqualFold(c.Level, "debug") {
		return log.LstdFlags | log.Lmicroseconds | log.Lshortfile
	}
	return log.LstdFlags
}

// AppSubConfig holds the placeholders substituted for unset profile fields.
type AppSubConfig struct {
	DefaultAvatar       string `mapstructure:"default_avatar"`
	DefaultCover        string `mapstructure:"default_cover"`
	DefaultIntroduction string `mapstructure:"default_introduction"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	Log      LogConfig      `mapstructure:"log"`
	App      AppSubConfig   `mapstructure:"app"`
}

var (
	appConfig *Config
	loadErr   error
	once      sync.Once
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/twitter.db")
	v.SetDefault("jwt.issuer", "twitter-api")
	v.SetDefault("jwt.expire_hours", 30*24)
	v.SetDefault("security.bcrypt_cost", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("app.default_avatar", "https://i.imgur.com/TGuHpHB.jpg")
	v.SetDefault("app.default_cover", "https://i.imgur.com/vzIPHQ6.png")
	v.SetDefault("app.default_introduction", "Hello! Nice to meet you.")
}

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
// Only the first call reads the file; later calls return the same result,
// including a failed one.
func Load(path string) (*Config, error) {
	once.Do(func() {
		appConfig, loadErr = load(path)
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return appConfig, nil
}

func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. TWT_JWT_SECRET=xxx
	v.SetEnvPrefix("TWT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// keys without defaults are only visible to Unmarshal once bound
	_ = v.BindEnv("jwt.secret")
	_ = v.BindEnv("database.dsn")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required")
	}
	return &c, nil
}
