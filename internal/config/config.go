package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string // Application port
	DBUser         string // Database user
	DBPassword     string // Database password
	DBHost         string // Database host
	DBPort         string // Database port
	DBName         string // Database name
	JWTSecret      string // JWT secret key
	RedisAddr      string // Redis server address
	RedisPass      string // Redis password
	RedisDB        int    // Redis database number
	RemoteURL      string // Remote user-lookup base URL (empty disables the fallback)
	RemoteAPIKey   string // Remote user-lookup API key
	GenAIURL       string // Generative match-source base URL (empty disables it)
	GenAIKey       string // Generative match-source API key
	WhatsAppNumber string // Destination of storefront deep links
	RoundFixture   string // Optional YAML file with the fallback round
	IsProd         bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:        os.Getenv("APP_PORT"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBName:         os.Getenv("DB_NAME"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPass:      os.Getenv("REDIS_PASS"),
		RedisDB:        redisDB,
		RemoteURL:      os.Getenv("REMOTE_URL"),
		RemoteAPIKey:   os.Getenv("REMOTE_API_KEY"),
		GenAIURL:       os.Getenv("GENAI_URL"),
		GenAIKey:       os.Getenv("GENAI_API_KEY"),
		WhatsAppNumber: os.Getenv("WHATSAPP_NUMBER"),
		RoundFixture:   os.Getenv("ROUND_FIXTURE"),
		IsProd:         os.Getenv("IS_PROD") == "true",
	}
}

// DSN builds the MySQL data source name from the DB fields
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}
