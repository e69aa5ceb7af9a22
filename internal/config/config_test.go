package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, StoreMongo, cfg.Store)
	assert.Equal(t, "userinfo", cfg.Mongo.Database)
	assert.Equal(t, 5, cfg.Playlist.MaxPerUser)
	assert.Equal(t, defaultJWTTTL, cfg.JWT.TTL)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.EmotionEnabled())
	assert.False(t, cfg.ArchiveEnabled())
	assert.Equal(t, "mongodb://127.0.0.1:27017/", cfg.Mongo.URIValue())
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
port: 8081
env: Production
store: Memory
allowed_origins: [" https://moodify.app ", ""]
jwt:
  secret: s3cret
  ttl: 2h
ai:
  enabled: true
  type: OpenAI_Compatible
  endpoint: http://llm.local
emotion:
  base_url: http://emotion:8000/
playlist:
  max_per_user: 8
archive:
  bucket: uploads
  access_key_id: key
  secret_access_key: secret
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, ":8081", cfg.Addr())
	assert.False(t, cfg.IsDev())
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, []string{"https://moodify.app"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "openai-compatible", cfg.AI.Type)
	assert.Equal(t, "http://emotion:8000", cfg.Emotion.BaseURL)
	assert.Equal(t, 8, cfg.Playlist.MaxPerUser)
	assert.True(t, cfg.ArchiveEnabled())
	assert.Equal(t, "us-east-1", cfg.Archive.Region)
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(writeConfig(t, "prot: 1\n"))
	assert.Error(t, err)
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MOODIFY_PORT", "9000")
	t.Setenv("MOODIFY_MONGO_URI", "mongodb+srv://cluster.example/db")
	t.Setenv("MOODIFY_REDIS_URL", "cache:6379/1")
	t.Setenv("MOODIFY_JWT_TTL", "30m")

	cfg, err := Load(writeConfig(t, "port: 1234\n"))
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "mongodb+srv://cluster.example/db", cfg.Mongo.URIValue())
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URLValue())
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
}

func TestApplyEnv_IgnoresMalformed(t *testing.T) {
	cfg := defaultAppConfig()
	env := map[string]string{
		"MOODIFY_PORT":       "not-a-number",
		"MOODIFY_AI_ENABLED": "true",
		"MOODIFY_AI_API_KEY": "  sk-test  ",
		"MOODIFY_JWT_TTL":    "forever",
	}
	applyEnv(&cfg, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})

	assert.Equal(t, defaultPort, cfg.Port)
	assert.True(t, cfg.AI.Enabled)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, defaultJWTTTL, cfg.JWT.TTL)
}

func TestValidate(t *testing.T) {
	cfg := normalize(defaultAppConfig())
	require.NoError(t, cfg.Validate())

	prod := cfg
	prod.Env = "production"
	assert.Error(t, prod.Validate(), "production needs a jwt secret")
	prod.JWT.Secret = "x"
	assert.NoError(t, prod.Validate())

	bad := cfg
	bad.Store = "sqlite"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Port = 70000
	assert.Error(t, bad.Validate())
}

func TestRedisURLValue(t *testing.T) {
	assert.Equal(t, "", RedisConfig{}.URLValue())
	assert.Equal(t, "rediss://:pw@cache:6380/2", RedisConfig{Host: "cache", Port: 6380, DB: 2, Password: "pw", TLS: true}.URLValue())
}
