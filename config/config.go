package config

import "os"

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	DatabaseURL  string
	JWTSecret    string
	GeminiAPIKey string
	ListenAddr   string
}

// AppConfig holds the application-wide configuration
var AppConfig Config

// Load populates AppConfig from environment variables. Call after
// godotenv.Load (see main.go).
func Load() {
	AppConfig = Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		ListenAddr:   ":" + envOr("PORT", "3000"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
