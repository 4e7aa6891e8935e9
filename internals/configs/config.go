package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	JWTSecret string
	JWTTTL    time.Duration
	Timezone  string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg("⚠️ .env file not found, using system environment")
		} else {
			log.Info().Msg("✅ .env file loaded")
		}
	} else {
		log.Info().Msg("🚀 Running in Railway, using system environment")
	}

	setDefaults()
	viper.AutomaticEnv()

	InitLogger(viper.GetString("LOG_LEVEL"), viper.GetBool("LOG_PRETTY"))

	JWTSecret = GetEnv("JWT_SECRET")
	JWTTTL = viper.GetDuration("JWT_TTL")
	Timezone = GetEnv("TIMEZONE", "UTC")

	if JWTSecret == "" {
		log.Error().Msg("❌ JWT_SECRET is not set")
	} else {
		log.Info().Msg("✅ JWT_SECRET loaded")
	}
}

func setDefaults() {
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "require")
	viper.SetDefault("DB_STATEMENT_TIMEOUT_MS", 3000)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", "60s")
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "10m")
	viper.SetDefault("JWT_TTL", "12h")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	viper.SetDefault("TOKEN_BLACKLIST_CRON", "@every 24h")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
}

// GetEnv returns the value for key, falling back to defaultValue[0] when unset.
func GetEnv(key string, defaultValue ...string) string {
	value := strings.TrimSpace(viper.GetString(key))
	if value == "" && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetInt(key string) int                { return viper.GetInt(key) }
func GetDuration(key string) time.Duration { return viper.GetDuration(key) }

// CorsOrigins accepts a comma separated CORS_ORIGINS value.
func CorsOrigins() []string {
	raw := GetEnv("CORS_ORIGINS")
	out := make([]string, 0)
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// =======================
// DATABASE DSN
// =======================

// PostgresDSN builds the URL form used both by GORM and by the migrator.
func PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		GetEnv("DB_USER"),
		GetEnv("DB_PASSWORD"),
		GetEnv("DB_HOST"),
		GetEnv("DB_PORT"),
		GetEnv("DB_NAME"),
		GetEnv("DB_SSLMODE"),
	)
}

// InitSeederDB opens a standalone connection for cmd tools.
func InitSeederDB() *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  PostgresDSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: NewGormLogger(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ seeder database connection failed")
	}
	log.Info().Msg("✅ Database (seeder) connected")
	return db
}
