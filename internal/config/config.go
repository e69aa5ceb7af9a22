package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at configPath, applies defaults and MOODIFY_* env overrides.
// A missing file at the default path is not an error: defaults plus env are used.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultConfigPath:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnv(&cfg, os.LookupEnv)
	cfg = normalize(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:  defaultPort,
		Env:   defaultEnv,
		Store: defaultStoreDriver,
		Mongo: MongoConfig{
			Host:     defaultMongoHost,
			Port:     defaultMongoPort,
			Database: defaultMongoDatabase,
			Timeout:  defaultMongoTimeout,
		},
		Redis: RedisConfig{
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		JWT: JWTConfig{TTL: defaultJWTTTL},
		AI: AIProvider{
			Type:    defaultAIProvider,
			Timeout: defaultAITimeout,
		},
		Emotion: EmotionConfig{
			Timeout:     defaultEmotionTimeout,
			MaxUploadMB: defaultEmotionUploadMB,
		},
		Playlist: PlaylistConfig{MaxPerUser: defaultPlaylistMax},
		Cron: CronConfig{
			ReconcileInterval: defaultReconcileEvery,
			ReconcileWindow:   defaultReconcileWindow,
		},
		RateLimit: RateLimitConfig{
			AuthRPS:   defaultAuthRateLimitRPS,
			AuthBurst: defaultAuthRateBurst,
		},
	}
}

// Validate rejects values the server cannot start with.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	switch c.Store {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("invalid store %q, expected %q or %q", c.Store, StoreMongo, StoreMemory)
	}
	if c.Store == StoreMongo && (c.Mongo.Port < 1 || c.Mongo.Port > 65535) {
		return fmt.Errorf("invalid mongo.port %d, expected 1-65535", c.Mongo.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("invalid redis.db %d, expected >= 0", c.Redis.DB)
	}
	if c.Playlist.MaxPerUser < 1 {
		return fmt.Errorf("invalid playlist.max_per_user %d, expected >= 1", c.Playlist.MaxPerUser)
	}
	if !c.IsDev() && c.JWT.Secret == "" {
		return errors.New("jwt.secret is required outside development")
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Addr returns the listen address.
func (c *AppConfig) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// RedisEnabled reports whether a redis endpoint was configured.
func (c *AppConfig) RedisEnabled() bool {
	return c.Redis.URL != "" || c.Redis.Host != ""
}

// ArchiveEnabled reports whether uploaded media should be copied to object storage.
func (c *AppConfig) ArchiveEnabled() bool {
	return c.Archive.Bucket != ""
}

// EmotionEnabled reports whether media analysis is available.
func (c *AppConfig) EmotionEnabled() bool {
	return c.Emotion.BaseURL != ""
}
