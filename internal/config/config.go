package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string
	DatabaseURL   string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Clinic scheduling
	ClinicTimezone string

	// Assistant chat widget
	AssistantTriageFreeText bool
	AssistantWelcomeDelay   time.Duration
	AssistantTypingDelay    time.Duration

	// Email notifications
	EmailProvider     string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	ClinicEmail       string

	// AWS (S3 medical file uploads, SES email)
	AWSRegion           string
	AWSEndpointOverride string
	MedicalFilesBucket  string
	UploadURLTTL        time.Duration

	// Rate limiting for public write endpoints
	RateLimitPerSecond float64
	RateLimitBurst     int

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		ClinicTimezone: getEnv("CLINIC_TZ", "Asia/Jerusalem"),

		AssistantTriageFreeText: getEnvAsBool("ASSISTANT_TRIAGE_FREETEXT", false),
		AssistantWelcomeDelay:   getEnvAsDuration("ASSISTANT_WELCOME_DELAY", 500*time.Millisecond),
		AssistantTypingDelay:    getEnvAsDuration("ASSISTANT_TYPING_DELAY", 800*time.Millisecond),

		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "auto"))),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Bramli Clinic"),
		ClinicEmail:       getEnv("CLINIC_EMAIL", ""),

		AWSRegion:           getEnv("AWS_REGION", "eu-central-1"),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
		MedicalFilesBucket:  getEnv("MEDICAL_FILES_BUCKET", ""),
		UploadURLTTL:        getEnvAsDuration("UPLOAD_URL_TTL", 15*time.Minute),

		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 2),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),

		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsSlice(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
