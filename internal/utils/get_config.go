package utils

import (
	"log"
	"os"
	"sync"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort string `yaml:"APP_PORT"`
	AppURL  string `yaml:"APP_URL"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBTimeZone string `yaml:"DB_TIMEZONE"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Change feed broker, empty keeps the feed in-process
	RabbitMQURL string `yaml:"RABBITMQ_URL"`

	// Google OAuth
	GoogleClientID     string `yaml:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `yaml:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `yaml:"GOOGLE_REDIRECT_URL"`
}

var (
	config     Config
	configOnce sync.Once
)

// LoadConfig reads config.yaml once. A missing file is not fatal, every key
// can also come from the environment.
func LoadConfig() {
	configOnce.Do(func() {
		path := os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "config.yaml"
		}
		file, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Error reading YAML file: %s\n", err)
			return
		}

		if err := yaml.Unmarshal(file, &config); err != nil {
			log.Printf("Error parsing YAML file: %s\n", err)
		}
	})
}

// GetConfig returns the environment value for key when set, otherwise the
// value from config.yaml.
func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_TIMEZONE":
		return config.DBTimeZone
	case "JWT_SECRET":
		return config.JWTSecret
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "RABBITMQ_URL":
		return config.RabbitMQURL
	case "GOOGLE_CLIENT_ID":
		return config.GoogleClientID
	case "GOOGLE_CLIENT_SECRET":
		return config.GoogleClientSecret
	case "GOOGLE_REDIRECT_URL":
		return config.GoogleRedirectURL
	default:
		return ""
	}
}

func GetConfigDefault(key, fallback string) string {
	if v := GetConfig(key); v != "" {
		return v
	}
	return fallback
}
