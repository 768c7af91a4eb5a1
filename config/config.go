package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Named rate-limit buckets. Each bucket gets its own counter per client.
const (
	BucketUserCreation    = "userCreation"
	BucketLogin           = "short"
	BucketUserSearch      = "userSearch"
	BucketHoagieCreation  = "hoagieCreation"
	BucketHoagieUpdate    = "hoagieUpdate"
	BucketCommentCreation = "commentCreation"
	BucketCommentDeletion = "commentDeletion"
)

type Config struct {
	MongoURI       string
	MongoDB        string
	Port           string
	JWTSecret      string
	TokenTTL       time.Duration
	RequestTimeout time.Duration
	CORSOrigins    string
	RateWindow     time.Duration
	RateLimits     map[string]int
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("config: invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

// DefaultRateLimits returns the per-window request budget of every bucket.
func DefaultRateLimits() map[string]int {
	return map[string]int{
		BucketUserCreation:    3,
		BucketLogin:           10,
		BucketUserSearch:      20,
		BucketHoagieCreation:  5,
		BucketHoagieUpdate:    10,
		BucketCommentCreation: 10,
		BucketCommentDeletion: 10,
	}
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("config: .env file not found, using system environment variables")
	}

	return Config{
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "hoagiehub"),
		Port:           getEnv("PORT", "3000"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       getDuration("TOKEN_TTL", 72*time.Hour),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 5*time.Second),
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
		RateWindow:     getDuration("RATE_LIMIT_WINDOW", time.Minute),
		RateLimits:     DefaultRateLimits(),
	}
}
