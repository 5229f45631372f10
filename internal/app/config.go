package app

import (
	"strings"
	"time"

	"github.com/yungbote/wardrobe-backend/internal/clients/redis"
	"github.com/yungbote/wardrobe-backend/internal/data/db"
	"github.com/yungbote/wardrobe-backend/internal/data/session"
	"github.com/yungbote/wardrobe-backend/internal/modules/outfit"
	"github.com/yungbote/wardrobe-backend/internal/observability"
	"github.com/yungbote/wardrobe-backend/internal/platform/envutil"
	"github.com/yungbote/wardrobe-backend/internal/platform/gcp"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

type Config struct {
	Port        string
	Environment string
	Version     string

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	DBDriver  string
	SQLiteDSN string
	Postgres  db.PostgresConfig

	// Redis is used for generation sessions when Addr is set.
	Redis              redis.Config
	SessionTTL         time.Duration
	SessionSweepPeriod time.Duration

	CORSOrigins    []string
	MetricsEnabled bool
	Otel           observability.OtelConfig

	// ObjectStorage holds item photos. Upload is off when Mode is empty.
	ObjectStorage     gcp.StorageConfig
	ObjectStorageMode string
	MaxImageBytes     int64

	Outfit outfit.Config
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),

		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour),

		DBDriver:  strings.ToLower(envutil.String("DB_DRIVER", DBDriverPostgres)),
		SQLiteDSN: envutil.String("SQLITE_DSN", "file:wardrobe.db?_foreign_keys=on"),
		Postgres: db.PostgresConfig{
			Host:     envutil.String("POSTGRES_HOST", "localhost"),
			Port:     envutil.String("POSTGRES_PORT", "5432"),
			User:     envutil.String("POSTGRES_USER", "postgres"),
			Password: envutil.String("POSTGRES_PASSWORD", ""),
			Name:     envutil.String("POSTGRES_NAME", "wardrobe"),
			SSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
		},

		Redis: redis.Config{
			Addr:     envutil.String("REDIS_ADDR", ""),
			Password: envutil.String("REDIS_PASSWORD", ""),
			DB:       envutil.Int("REDIS_DB", 0),
		},
		SessionTTL:         envutil.Seconds("SESSION_TTL", session.DefaultTTL),
		SessionSweepPeriod: envutil.Seconds("SESSION_SWEEP_PERIOD", 10*time.Minute),

		CORSOrigins:    splitList(envutil.String("CORS_ALLOW_ORIGINS", "")),
		MetricsEnabled: envutil.Bool("METRICS_ENABLED", false),

		ObjectStorageMode: envutil.String("OBJECT_STORAGE_MODE", ""),
		ObjectStorage: gcp.StorageConfig{
			Bucket:        envutil.String("ITEM_IMAGE_BUCKET", ""),
			EmulatorHost:  envutil.String("STORAGE_EMULATOR_HOST", ""),
			PublicBaseURL: envutil.String("OBJECT_STORAGE_PUBLIC_BASE_URL", ""),
			CDNDomain:     envutil.String("ITEM_IMAGE_CDN_DOMAIN", ""),
			Credentials: envutil.String("GOOGLE_APPLICATION_CREDENTIALS_JSON",
				envutil.String("GOOGLE_APPLICATION_CREDENTIALS", "")),
		},
		MaxImageBytes: envutil.Int64("MAX_IMAGE_BYTES", 10<<20),

		Outfit: loadOutfitConfig(log),
	}
	cfg.Otel = observability.OtelConfig{
		ServiceName: "wardrobe",
		Environment: cfg.Environment,
		Version:     cfg.Version,
		Enabled:     envutil.Bool("OTEL_ENABLED", false),
		Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
		Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
		SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 0.1),
	}
	if cfg.DBDriver != DBDriverPostgres && cfg.DBDriver != DBDriverSQLite {
		log.Warn("unknown DB_DRIVER, using postgres", "driver", cfg.DBDriver)
		cfg.DBDriver = DBDriverPostgres
	}
	if cfg.JWTSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY not set, using insecure default")
	}
	return cfg
}

// loadOutfitConfig layers OUTFIT_CONFIG_PATH over the defaults, then the
// individual OUTFIT_* variables over that.
func loadOutfitConfig(log *logger.Logger) outfit.Config {
	base := outfit.DefaultConfig()
	if path := envutil.String("OUTFIT_CONFIG_PATH", ""); path != "" {
		fromFile, err := outfit.LoadConfigFile(path, base)
		if err != nil {
			log.Warn("outfit config file ignored", "path", path, "error", err)
		} else {
			base = fromFile
		}
	}

	cfg := base
	cfg.ExplorationRate = envutil.Float("OUTFIT_EXPLORATION_RATE", base.ExplorationRate)
	cfg.LearningRate = envutil.Float("OUTFIT_LEARNING_RATE", base.LearningRate)
	cfg.NeutralRating = envutil.Int("OUTFIT_NEUTRAL_RATING", base.NeutralRating)
	cfg.GoodRatingThreshold = envutil.Int("OUTFIT_GOOD_RATING_THRESHOLD", base.GoodRatingThreshold)
	cfg.DefaultRating = envutil.Int("OUTFIT_DEFAULT_RATING", base.DefaultRating)
	cfg.MinScore = envutil.Float("OUTFIT_MIN_SCORE", base.MinScore)
	cfg.MaxScore = envutil.Float("OUTFIT_MAX_SCORE", base.MaxScore)
	cfg.Seed = uint64(envutil.Int64("OUTFIT_SEED", int64(base.Seed)))

	if err := cfg.Validate(); err != nil {
		log.Warn("invalid OUTFIT_* settings, keeping previous values", "error", err)
		return base
	}
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
