package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress  string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	SendGridAPIKey string
	FromEmail      string
	OperatorEmail  string
}

// Load reads configuration from the environment, after loading a local
// .env file if one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerAddress:  getEnv("SERVER_ADDRESS", ":8080"),
		MongoURI:       getEnv("MONGODB_URL", "mongodb://127.0.0.1:27017"),
		MongoDB:        getEnv("MONGODB_DATABASE", "blaze"),
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		FromEmail:      getEnv("CONTACT_FROM_EMAIL", ""),
		OperatorEmail:  getEnv("CONTACT_OPERATOR_EMAIL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
