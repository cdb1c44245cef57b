package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	JWTSecret       string
	JWTAlgorithm    string
	TokenTTLMinutes int
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "taskflow_user"),
		DBPassword: getEnv("DB_PASSWORD", "taskflow_pass"),
		DBName:     getEnv("DB_NAME", "taskflow_db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		JWTSecret:       getEnv("SECRET_KEY", "supersecretkey"),
		JWTAlgorithm:    getEnv("ALGORITHM", "HS256"),
		TokenTTLMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid value for %s, falling back to %d", key, defaultVal)
		return defaultVal
	}
	return n
}
