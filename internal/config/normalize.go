package config

import "strings"

func normalize(cfg AppConfig) AppConfig {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if cfg.Store == "" {
		cfg.Store = defaultStoreDriver
	}
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.Mongo = normalizeMongoConfig(cfg.Mongo)
	cfg.Redis = normalizeRedisConfig(cfg.Redis)
	cfg.JWT.Secret = strings.TrimSpace(cfg.JWT.Secret)
	if cfg.JWT.TTL <= 0 {
		cfg.JWT.TTL = defaultJWTTTL
	}
	cfg.AI = normalizeAIProvider(cfg.AI)
	cfg.Emotion.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Emotion.BaseURL), "/")
	if cfg.Emotion.Timeout <= 0 {
		cfg.Emotion.Timeout = defaultEmotionTimeout
	}
	if cfg.Emotion.MaxUploadMB <= 0 {
		cfg.Emotion.MaxUploadMB = defaultEmotionUploadMB
	}
	cfg.Archive = normalizeS3Options(cfg.Archive)
	if cfg.Cron.ReconcileInterval <= 0 {
		cfg.Cron.ReconcileInterval = defaultReconcileEvery
	}
	if cfg.Cron.ReconcileWindow <= 0 {
		cfg.Cron.ReconcileWindow = defaultReconcileWindow
	}
	if cfg.RateLimit.AuthRPS <= 0 {
		cfg.RateLimit.AuthRPS = defaultAuthRateLimitRPS
	}
	if cfg.RateLimit.AuthBurst <= 0 {
		cfg.RateLimit.AuthBurst = defaultAuthRateBurst
	}
	return cfg
}

func normalizeMongoConfig(cfg MongoConfig) MongoConfig {
	cfg.URI = strings.TrimSpace(cfg.URI)
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.Username = strings.TrimSpace(cfg.Username)
	cfg.Password = strings.TrimSpace(cfg.Password)
	cfg.Database = strings.TrimSpace(cfg.Database)
	if cfg.Host == "" {
		cfg.Host = defaultMongoHost
	}
	if cfg.Port == 0 {
		cfg.Port = defaultMongoPort
	}
	if cfg.Database == "" {
		cfg.Database = defaultMongoDatabase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultMongoTimeout
	}
	return cfg
}

func normalizeRedisConfig(cfg RedisConfig) RedisConfig {
	cfg.URL = normalizeRedisRawURL(cfg.URL)
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.Password = strings.TrimSpace(cfg.Password)
	if cfg.Port == 0 {
		cfg.Port = defaultRedisPort
	}
	if cfg.DB < 0 {
		cfg.DB = defaultRedisDB
	}
	return cfg
}

func normalizeRedisRawURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "redis://") || strings.HasPrefix(trimmed, "rediss://") {
		return trimmed
	}
	return "redis://" + trimmed
}

func normalizeAIProvider(p AIProvider) AIProvider {
	p.Type = strings.ToLower(strings.TrimSpace(p.Type))
	p.Type = strings.ReplaceAll(p.Type, "_", "-")
	if p.Type == "" {
		p.Type = defaultAIProvider
	}
	p.Endpoint = strings.TrimSpace(p.Endpoint)
	p.Model = strings.TrimSpace(p.Model)
	p.APIKey = strings.TrimSpace(p.APIKey)
	if p.Timeout <= 0 {
		p.Timeout = defaultAITimeout
	}
	return p
}

func normalizeS3Options(opts S3Options) S3Options {
	opts.Bucket = strings.TrimSpace(opts.Bucket)
	opts.Region = strings.TrimSpace(opts.Region)
	opts.Endpoint = strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	opts.AccessKeyID = strings.TrimSpace(opts.AccessKeyID)
	opts.SecretAccessKey = strings.TrimSpace(opts.SecretAccessKey)
	opts.Prefix = strings.Trim(strings.TrimSpace(opts.Prefix), "/")
	if opts.Region == "" && opts.Bucket != "" {
		opts.Region = "us-east-1"
	}
	return opts
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}
