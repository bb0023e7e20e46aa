package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type MySQLConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type BunnyConfig struct {
	StorageZone string
	StorageKey  string
	Endpoint    string
}

func (b BunnyConfig) Enabled() bool {
	return strings.TrimSpace(b.StorageZone) != "" && strings.TrimSpace(b.StorageKey) != ""
}

type RateLimits struct {
	Global       int
	Login        int
	Contact      int
	GlobalEvery  time.Duration
	LoginEvery   time.Duration
	ContactEvery time.Duration
}

type Config struct {
	Addr        string
	Env         string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string

	AdminEmail    string
	AdminPassword string
	AdminName     string

	DataDir    string
	UploadsDir string
	AssetsDir  string
	AdminDir   string
	SiteDir    string

	StorageBackend     string
	SQLitePath         string
	MySQL              MySQLConfig
	AdminOnlyResources []string

	Bunny      BunnyConfig
	RateLimits RateLimits
}

// Load reads .env when present and then the process environment.
func Load() Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("[config] .env ignored: %v", err)
		}
	}

	port := getenv("PORT", "3001")

	return Config{
		Addr:          ":" + port,
		Env:           getenv("APP_ENV", "development"),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:      time.Duration(getenvInt("TOKEN_TTL_HOURS", 24, 1, 24*30)) * time.Hour,
		CORSOrigins:   splitList(getenv("CORS_ORIGINS", "http://localhost:3001")),
		AdminEmail:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminName:     getenv("ADMIN_NAME", "Administrador"),

		DataDir:    getenv("DATA_DIR", "data"),
		UploadsDir: getenv("UPLOADS_DIR", "uploads"),
		AssetsDir:  os.Getenv("ASSETS_DIR"),
		AdminDir:   os.Getenv("ADMIN_DIR"),
		SiteDir:    os.Getenv("SITE_DIR"),

		StorageBackend: strings.ToLower(getenv("STORAGE_BACKEND", "file")),
		SQLitePath:     getenv("SQLITE_PATH", "data/combita.db"),
		MySQL: MySQLConfig{
			Host:     getenv("DB_HOST", "127.0.0.1"),
			Port:     getenv("DB_PORT", "3306"),
			User:     getenv("DB_USER", "combita"),
			Password: getenv("DB_PASSWORD", "combita"),
			DBName:   getenv("DB_NAME", "combita"),
		},
		AdminOnlyResources: splitList(getenv("ADMIN_ONLY_RESOURCES", "hoteles,artesanos,videos")),

		Bunny: BunnyConfig{
			StorageZone: os.Getenv("BUNNY_STORAGE_ZONE"),
			StorageKey:  os.Getenv("BUNNY_STORAGE_ACCESS_KEY"),
			Endpoint:    getenv("BUNNY_STORAGE_ENDPOINT", "https://storage.bunnycdn.com"),
		},
		RateLimits: RateLimits{
			Global:       getenvInt("RATE_LIMIT_GLOBAL", 500, 1, 0),
			Login:        getenvInt("RATE_LIMIT_LOGIN", 10, 1, 0),
			Contact:      getenvInt("RATE_LIMIT_CONTACT", 5, 1, 0),
			GlobalEvery:  15 * time.Minute,
			LoginEvery:   15 * time.Minute,
			ContactEvery: time.Hour,
		},
	}
}

// Validate reports settings the server cannot start without.
// Bootstrap credentials are checked later, only when no user store exists.
func (c Config) Validate() error {
	var missing []string
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	switch c.StorageBackend {
	case "file", "sqlite", "mysql":
	default:
		return errors.New("STORAGE_BACKEND must be one of file, sqlite, mysql")
	}
	if len(missing) > 0 {
		return errors.New("missing required environment: " + strings.Join(missing, ", "))
	}
	return nil
}

func (c Config) IsAdminOnly(resource string) bool {
	for _, r := range c.AdminOnlyResources {
		if r == resource {
			return true
		}
	}
	return false
}

func getenv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getenvInt(key string, fallback int, min int, max int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if min > 0 && v < min {
		return fallback
	}
	if max > 0 && v > max {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
