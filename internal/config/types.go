package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML and MOODIFY_* env vars.
type AppConfig struct {
	Port           int             `yaml:"port"`
	Env            string          `yaml:"env"` // "development" | "production"
	AllowedOrigins []string        `yaml:"allowed_origins"`
	Store          string          `yaml:"store"` // "mongo" | "memory"
	Mongo          MongoConfig     `yaml:"mongo"`
	Redis          RedisConfig     `yaml:"redis"`
	JWT            JWTConfig       `yaml:"jwt"`
	AI             AIProvider      `yaml:"ai"`
	Emotion        EmotionConfig   `yaml:"emotion"`
	Archive        S3Options       `yaml:"archive"`
	Playlist       PlaylistConfig  `yaml:"playlist"`
	Cron           CronConfig      `yaml:"cron"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

type MongoConfig struct {
	URI      string        `yaml:"uri"`
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Database string        `yaml:"database"`
	Timeout  time.Duration `yaml:"timeout"`
}

// RedisConfig is optional. An empty URL and host disables redis.
type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// AIProvider configures the language-model mood classifier.
type AIProvider struct {
	Enabled  bool          `yaml:"enabled"`
	Type     string        `yaml:"type"` // openai | anthropic | openai-compatible
	Endpoint string        `yaml:"endpoint"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
	Timeout  time.Duration `yaml:"timeout"`
}

// EmotionConfig points at the image/video emotion analysis service.
type EmotionConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxUploadMB int           `yaml:"max_upload_mb"`
}

// S3Options configures optional archiving of uploaded media.
type S3Options struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Prefix          string `yaml:"prefix"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

type PlaylistConfig struct {
	MaxPerUser int `yaml:"max_per_user"`
}

type CronConfig struct {
	ReconcileInterval time.Duration `yaml:"reconcile_interval"`
	ReconcileWindow   time.Duration `yaml:"reconcile_window"`
}

type RateLimitConfig struct {
	AuthRPS   float64 `yaml:"auth_rps"`
	AuthBurst int     `yaml:"auth_burst"`
}
