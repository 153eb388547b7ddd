package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageDriverPgsql  = "pgsql"
	StorageDriverMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	StorageDriver string

	JWTSecret          string
	CORSAllowedOrigins []string
	PreviewRateLimit   string

	// Redis backs the parameters cache and the document locks. Optional.
	RedisAddress       string
	RedisPassword      string
	ParametersCacheTTL time.Duration

	GoogleMapsAPIKey         string
	DistanceOrigin           string
	ExternalCallTimeout      time.Duration
	DisplacementFallbackZero bool
	Location                 *time.Location

	GoogleServiceAccountFile string
	DriveRootFolderID        string
	DocsTemplateID           string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	DeadlineBusinessDays    int
	DeadlineBusinessDaysAir int

	// Bootstrap administrator created at startup when missing.
	BootstrapAdminID    string
	BootstrapAdminName  string
	BootstrapAdminEmail string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORAGE_DRIVER", StorageDriverPgsql)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("PREVIEW_RATE_LIMIT", "30-M")
	viper.SetDefault("REDIS_ADDRESS", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("PARAMETERS_CACHE_TTL", "60s")
	viper.SetDefault("GOOGLE_MAPS_API_KEY", "")
	viper.SetDefault("DISTANCE_ORIGIN", "Câmara Municipal de Itapoá, SC")
	viper.SetDefault("EXTERNAL_CALL_TIMEOUT", "10s")
	viper.SetDefault("DISPLACEMENT_FALLBACK_ZERO", false)
	viper.SetDefault("TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	viper.SetDefault("GDRIVE_ROOT_FOLDER_ID", "")
	viper.SetDefault("GDOCS_TEMPLATE_ID", "")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "nao-responda@localhost")
	viper.SetDefault("DEADLINE_BUSINESS_DAYS", 5)
	viper.SetDefault("DEADLINE_BUSINESS_DAYS_AIR", 10)
	viper.SetDefault("BOOTSTRAP_ADMIN_ID", "")
	viper.SetDefault("BOOTSTRAP_ADMIN_NAME", "Administrador")
	viper.SetDefault("BOOTSTRAP_ADMIN_EMAIL", "")

	// Environment variables override defaults and .env values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.StorageDriver = strings.ToLower(viper.GetString("STORAGE_DRIVER"))
	if cfg.StorageDriver != StorageDriverPgsql && cfg.StorageDriver != StorageDriverMemory {
		log.Printf("Warning: unknown STORAGE_DRIVER '%s'. Defaulting to %s.\n", cfg.StorageDriver, StorageDriverPgsql)
		cfg.StorageDriver = StorageDriverPgsql
	}
	if cfg.StorageDriver == StorageDriverPgsql && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	cfg.PreviewRateLimit = viper.GetString("PREVIEW_RATE_LIMIT")

	cfg.RedisAddress = viper.GetString("REDIS_ADDRESS")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.ParametersCacheTTL = parseDuration("PARAMETERS_CACHE_TTL", time.Minute)
	if cfg.RedisAddress == "" {
		log.Println("Warning: REDIS_ADDRESS not set. Parameters are read from storage on every calculation and document locks are process-local.")
	}

	cfg.GoogleMapsAPIKey = viper.GetString("GOOGLE_MAPS_API_KEY")
	if cfg.GoogleMapsAPIKey == "" {
		log.Println("Warning: GOOGLE_MAPS_API_KEY not set. Road distances will be unavailable.")
	}
	cfg.DistanceOrigin = viper.GetString("DISTANCE_ORIGIN")
	cfg.ExternalCallTimeout = parseDuration("EXTERNAL_CALL_TIMEOUT", 10*time.Second)
	cfg.DisplacementFallbackZero = viper.GetBool("DISPLACEMENT_FALLBACK_ZERO")

	tz := viper.GetString("TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: invalid TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
		loc = time.UTC
	}
	cfg.Location = loc

	cfg.GoogleServiceAccountFile = viper.GetString("GOOGLE_SERVICE_ACCOUNT_FILE")
	cfg.DriveRootFolderID = viper.GetString("GDRIVE_ROOT_FOLDER_ID")
	cfg.DocsTemplateID = viper.GetString("GDOCS_TEMPLATE_ID")
	if cfg.GoogleServiceAccountFile == "" || cfg.DriveRootFolderID == "" || cfg.DocsTemplateID == "" {
		log.Println("Warning: Google Drive settings incomplete. Request documents will not be generated.")
	}

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetInt("SMTP_PORT")
	cfg.SMTPUsername = viper.GetString("SMTP_USERNAME")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")
	cfg.SMTPFrom = viper.GetString("SMTP_FROM")
	if cfg.SMTPHost == "" {
		log.Println("Warning: SMTP_HOST not set. E-mail notifications are disabled.")
	}

	cfg.DeadlineBusinessDays = viper.GetInt("DEADLINE_BUSINESS_DAYS")
	cfg.DeadlineBusinessDaysAir = viper.GetInt("DEADLINE_BUSINESS_DAYS_AIR")

	cfg.BootstrapAdminID = viper.GetString("BOOTSTRAP_ADMIN_ID")
	cfg.BootstrapAdminName = viper.GetString("BOOTSTRAP_ADMIN_NAME")
	cfg.BootstrapAdminEmail = viper.GetString("BOOTSTRAP_ADMIN_EMAIL")

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
