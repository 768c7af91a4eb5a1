package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"MONGODB_URI", "MONGO_DB", "PORT", "TOKEN_TTL", "REQUEST_TIMEOUT", "RATE_LIMIT_WINDOW"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "hoagiehub", cfg.MongoDB)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, 3, cfg.RateLimits[BucketUserCreation])
	assert.Equal(t, 5, cfg.RateLimits[BucketHoagieCreation])
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "test")
	t.Setenv("PORT", "8080")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")

	cfg := LoadConfig()

	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "test", cfg.MongoDB)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}
