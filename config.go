package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"agrilink/conditions"
	"agrilink/suggest"

	"github.com/joho/godotenv"
)

type Config struct {
	Env               string
	MongoURI          string
	MongoDB           string
	JWTSecret         string
	Port              string
	GeminiAPIKey      string
	GeminiModel       string
	PlaceholderFarmID string
	CORSOrigins       []string
	RequestTimeout    time.Duration
	PageLimitMax      int64
}

// mustConfig reads the environment, loading a local .env first if present.
// Variables already set in the environment win over the file.
func mustConfig() Config {
	_ = godotenv.Load()

	return Config{
		Env:               getenv("APP_ENV", "dev"),
		MongoURI:          getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           getenv("MONGO_DB", "agrilink"),
		JWTSecret:         getenv("JWT_SECRET", "change_me"),
		Port:              getenv("PORT", "8080"),
		GeminiAPIKey:      getenv("GEMINI_API_KEY", ""),
		GeminiModel:       getenv("GEMINI_MODEL", suggest.DefaultModel),
		PlaceholderFarmID: lookupenv("PLACEHOLDER_FARM_ID", conditions.DefaultPlaceholderFarmID),
		CORSOrigins:       splitList(getenv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		RequestTimeout:    getduration("REQUEST_TIMEOUT", 5*time.Second),
		PageLimitMax:      getint("PAGE_LIMIT_MAX", 100),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// lookupenv is getenv for keys where a set but empty value is meaningful.
func lookupenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return strings.TrimSpace(v)
	}
	return def
}

func getint(k string, def int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(k)), 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getduration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(k)))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
