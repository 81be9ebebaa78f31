package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "roamly"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// DefaultJWTSecret is an insecure development fallback. Startup logs a
	// warning whenever it is in use; production deployments must set
	// JWT_SECRET.
	DefaultJWTSecret  = "roamly-dev-secret-change-me"
	DefaultTokenTTL   = 24 * time.Hour
	DefaultBcryptCost = 10

	DefaultCORSAllowedOrigins = "*"

	DefaultRateLimitRPS   = 10
	DefaultRateLimitBurst = 20

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB
	DefaultMaxListLimit   = 100

	DefaultIdempotencyTTL = 24 * time.Hour

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultKafkaTopic = "roamly.content-events"

	DefaultCurrency = "INR"

	AuthCookieName = "admin_token"
)
