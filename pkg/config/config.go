package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every setting the service reads from the environment.
// It is loaded once at process start and validated eagerly so a missing
// key fails the boot instead of the first request that needs it.
type Config struct {
	Port string

	PostgresURL string
	RedisURL    string

	TourAPIKey         string
	GooglePlacesAPIKey string
	KakaoRESTAPIKey    string
	NaverClientID      string
	NaverClientSecret  string

	ComposerProvider string // "gemini" or "openai"
	GeminiAPIKey     string
	GeminiModel      string
	OpenAIAPIKey     string
	OpenAIModel      string

	JWTSecret string

	TourAPIBaseURL      string
	GooglePlacesBaseURL string
	KakaoLocalBaseURL   string
	KakaoNaviBaseURL    string
	NaverSearchBaseURL  string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	cfg := &Config{
		Port:        getEnvWithDefault("PORT", "4000"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		RedisURL:    getEnvWithDefault("REDIS_URL", "redis://localhost:6379"),

		TourAPIKey:         os.Getenv("TOUR_API_KEY"),
		GooglePlacesAPIKey: os.Getenv("GOOGLE_PLACES_API_KEY"),
		KakaoRESTAPIKey:    os.Getenv("KAKAO_REST_API_KEY"),
		NaverClientID:      os.Getenv("NAVER_CLIENT_ID"),
		NaverClientSecret:  os.Getenv("NAVER_CLIENT_SECRET"),

		ComposerProvider: getEnvWithDefault("COMPOSER_PROVIDER", "gemini"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		TourAPIBaseURL:      getEnvWithDefault("TOUR_API_BASE_URL", "http://apis.data.go.kr/B551011/KorService1"),
		GooglePlacesBaseURL: getEnvWithDefault("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		KakaoLocalBaseURL:   getEnvWithDefault("KAKAO_LOCAL_BASE_URL", "https://dapi.kakao.com/v2/local"),
		KakaoNaviBaseURL:    getEnvWithDefault("KAKAO_NAVI_BASE_URL", "https://apis-navi.kakaomobility.com/v1"),
		NaverSearchBaseURL:  getEnvWithDefault("NAVER_SEARCH_BASE_URL", "https://openapi.naver.com/v1/search"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing required key at once so operators do not
// fix them one restart at a time.
func (c *Config) Validate() error {
	required := map[string]string{
		"POSTGRES_URL":          c.PostgresURL,
		"TOUR_API_KEY":          c.TourAPIKey,
		"GOOGLE_PLACES_API_KEY": c.GooglePlacesAPIKey,
		"KAKAO_REST_API_KEY":    c.KakaoRESTAPIKey,
		"NAVER_CLIENT_ID":       c.NaverClientID,
		"NAVER_CLIENT_SECRET":   c.NaverClientSecret,
		"JWT_SECRET":            c.JWTSecret,
	}

	var missing []string
	for key, value := range required {
		if value == "" {
			missing = append(missing, key)
		}
	}

	switch strings.ToLower(c.ComposerProvider) {
	case "gemini":
		if c.GeminiAPIKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("unsupported COMPOSER_PROVIDER: %s. Use 'gemini' or 'openai'", c.ComposerProvider)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
