package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort             = 3000
	defaultEnv              = "development"
	defaultStoreDriver      = StoreMongo
	defaultMongoHost        = "127.0.0.1"
	defaultMongoPort        = 27017
	defaultMongoDatabase    = "userinfo"
	defaultMongoTimeout     = 10 * time.Second
	defaultRedisPort        = 6379
	defaultRedisDB          = 0
	defaultJWTTTL           = 7 * 24 * time.Hour
	defaultAIProvider       = "openai"
	defaultAITimeout        = 20 * time.Second
	defaultEmotionTimeout   = 60 * time.Second
	defaultEmotionUploadMB  = 50
	defaultPlaylistMax      = 5
	defaultReconcileEvery   = 6 * time.Hour
	defaultReconcileWindow  = 48 * time.Hour
	defaultAuthRateLimitRPS = 1
	defaultAuthRateBurst    = 10

	// StoreMongo persists to MongoDB.
	StoreMongo = "mongo"
	// StoreMemory keeps everything in process memory. Development only.
	StoreMemory = "memory"
)
