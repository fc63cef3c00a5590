package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the dashboard service.
type Config struct {
	Port      string
	TitlesCSV string
	ImdbCSV   string

	UserStore UserStoreConfig
	DB        DBConfig
	Redis     RedisConfig
	TMDB      TMDBConfig
	Predictor PredictorConfig

	RateLimitMax           int
	RateLimitWindowSeconds int
}

// UserStoreConfig selects and configures the user-record store backend.
type UserStoreConfig struct {
	Backend string // "file" or "postgres"
	Path    string // file backend only
}

// DBConfig holds PostgreSQL configuration (postgres user-store backend).
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TMDBConfig holds metadata API configuration.
type TMDBConfig struct {
	APIKey  string
	BaseURL string
}

// PredictorConfig locates the offline classifier artifacts.
type PredictorConfig struct {
	ModelPath   string
	EncoderPath string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	rateMax, _ := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "120"))
	rateWindow, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))

	backend := getEnv("USER_STORE_BACKEND", "file")
	if backend != "file" && backend != "postgres" {
		return nil, fmt.Errorf("invalid USER_STORE_BACKEND %q (want file or postgres)", backend)
	}

	cfg := &Config{
		Port:      getEnv("SERVER_PORT", "8080"),
		TitlesCSV: getEnv("TITLES_CSV", "data/netflix_titles.csv"),
		ImdbCSV:   getEnv("IMDB_CSV", "data/imdb_top_1000.csv"),
		UserStore: UserStoreConfig{
			Backend: backend,
			Path:    getEnv("USER_STORE_PATH", "users.json"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "movie_trends"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		TMDB: TMDBConfig{
			APIKey:  getEnv("TMDB_API_KEY", ""),
			BaseURL: getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		},
		Predictor: PredictorConfig{
			ModelPath:   getEnv("PREDICTOR_MODEL_PATH", "artifacts/success_predictor_model.json"),
			EncoderPath: getEnv("PREDICTOR_ENCODER_PATH", "artifacts/genre_encoder.json"),
		},
		RateLimitMax:           rateMax,
		RateLimitWindowSeconds: rateWindow,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
