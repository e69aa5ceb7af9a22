package config

import (
	"strconv"
	"strings"
	"time"
)

const envPrefix = "MOODIFY_"

type lookupFunc func(key string) (string, bool)

// applyEnv overrides file values with MOODIFY_* environment variables.
// Secrets are usually supplied this way rather than committed in config.yml.
func applyEnv(cfg *AppConfig, lookup lookupFunc) {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(envPrefix + key); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(envPrefix + key); ok {
			if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
				*dst = d
			}
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(envPrefix + key); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				*dst = b
			}
		}
	}

	num("PORT", &cfg.Port)
	str("ENV", &cfg.Env)
	str("STORE", &cfg.Store)
	if v, ok := lookup(envPrefix + "ALLOWED_ORIGINS"); ok && strings.TrimSpace(v) != "" {
		cfg.AllowedOrigins = strings.Split(v, ",")
	}

	str("MONGO_URI", &cfg.Mongo.URI)
	str("MONGO_DB", &cfg.Mongo.Database)
	dur("MONGO_TIMEOUT", &cfg.Mongo.Timeout)

	str("REDIS_URL", &cfg.Redis.URL)

	str("JWT_SECRET", &cfg.JWT.Secret)
	dur("JWT_TTL", &cfg.JWT.TTL)

	flag("AI_ENABLED", &cfg.AI.Enabled)
	str("AI_TYPE", &cfg.AI.Type)
	str("AI_ENDPOINT", &cfg.AI.Endpoint)
	str("AI_MODEL", &cfg.AI.Model)
	str("AI_API_KEY", &cfg.AI.APIKey)

	str("EMOTION_URL", &cfg.Emotion.BaseURL)

	str("S3_BUCKET", &cfg.Archive.Bucket)
	str("S3_REGION", &cfg.Archive.Region)
	str("S3_ENDPOINT", &cfg.Archive.Endpoint)
	str("S3_ACCESS_KEY_ID", &cfg.Archive.AccessKeyID)
	str("S3_SECRET_ACCESS_KEY", &cfg.Archive.SecretAccessKey)
}
