package config

import "time"

const defaultJWTSecret = "your-secret-key-change-this-in-production"

type JWTConfig struct {
	Secret     []byte
	Expiration time.Duration
}

func loadJWT() JWTConfig {
	return JWTConfig{
		Secret:     []byte(getEnv("JWT_SECRET", defaultJWTSecret)),
		Expiration: getEnvDuration("JWT_EXPIRATION_HOURS", 24*time.Hour),
	}
}
