package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "FIREWOOD"

var (
	errMissingJWTSigningKey = errors.New("api.jwt_signing_key is required")
	errInvalidQuotaScope    = errors.New(`checkin.quota_scope must be "global" or "stand"`)
	errInvalidQuotaLimits   = errors.New("checkin.warning_threshold must be between 1 and checkin.daily_limit")
	errUnknownStorage       = errors.New(`storage.backend must be one of "local", "s3" or "gcs"`)
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	CheckIn  *CheckInConfig  `mapstructure:"checkin"`
	Photos   *PhotosConfig   `mapstructure:"photos"`
	Storage  *StorageConfig  `mapstructure:"storage"`
	Geocode  *GeocodeConfig  `mapstructure:"geocode"`
	Telegram *TelegramConfig `mapstructure:"telegram"`
	NATS     *NATSConfig     `mapstructure:"nats"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

// CheckInConfig is hot-reloaded; read it through Snapshot.
type CheckInConfig struct {
	mu sync.RWMutex

	DailyLimit       int    `mapstructure:"daily_limit"`
	WarningThreshold int    `mapstructure:"warning_threshold"`
	QuotaScope       string `mapstructure:"quota_scope"`
	RecentVerifiers  int    `mapstructure:"recent_verifiers"`
}

type CheckInSettings struct {
	DailyLimit       int
	WarningThreshold int
	QuotaScope       string
	RecentVerifiers  int
}

type PhotosConfig struct {
	MaxEdge            int   `mapstructure:"max_edge"`
	JPEGQuality        int   `mapstructure:"jpeg_quality"`
	MaxCount           int   `mapstructure:"max_count"`
	MaxPixels          int   `mapstructure:"max_pixels"`
	CheckInMaxBytes    int64 `mapstructure:"checkin_max_bytes"`
	SubmissionMaxBytes int64 `mapstructure:"submission_max_bytes"`
}

type StorageConfig struct {
	Backend            string `mapstructure:"backend"`
	LocalPath          string `mapstructure:"local_path"`
	S3Region           string `mapstructure:"s3_region"`
	S3Bucket           string `mapstructure:"s3_bucket"`
	GCSBucket          string `mapstructure:"gcs_bucket"`
	GCSCredentialsFile string `mapstructure:"gcs_credentials_file"`
}

type GeocodeConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type TelegramConfig struct {
	Token           string `mapstructure:"token"`
	ModeratorChatID int64  `mapstructure:"moderator_chat_id"`
}

type NATSConfig struct {
	URL           string `mapstructure:"url"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	watchCheckIn(v, conf.CheckIn)

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("gin.mode", "debug")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.sslmode", "disable")

	v.SetDefault("checkin.daily_limit", 10)
	v.SetDefault("checkin.warning_threshold", 8)
	v.SetDefault("checkin.quota_scope", "global")
	v.SetDefault("checkin.recent_verifiers", 10)

	v.SetDefault("photos.max_edge", 1200)
	v.SetDefault("photos.jpeg_quality", 80)
	v.SetDefault("photos.max_count", 5)
	v.SetDefault("photos.max_pixels", 40_000_000)
	v.SetDefault("photos.checkin_max_bytes", 2<<20)
	v.SetDefault("photos.submission_max_bytes", 10<<20)

	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local_path", "./uploads")

	v.SetDefault("geocode.base_url", "https://maps.googleapis.com")
	v.SetDefault("nats.subject_prefix", "firewood")
}

func (c *AppConfig) Validate() error {
	if c.API == nil || c.API.JWTSigningKey == "" {
		return errMissingJWTSigningKey
	}
	if c.CheckIn != nil {
		if err := c.CheckIn.Snapshot().validate(); err != nil {
			return err
		}
	}
	if c.Storage != nil {
		switch c.Storage.Backend {
		case "local", "s3", "gcs":
		default:
			return errUnknownStorage
		}
	}

	return nil
}

func (s CheckInSettings) validate() error {
	if s.QuotaScope != "global" && s.QuotaScope != "stand" {
		return errInvalidQuotaScope
	}
	if s.DailyLimit < 1 || s.WarningThreshold < 1 || s.WarningThreshold > s.DailyLimit {
		return errInvalidQuotaLimits
	}

	return nil
}

func (c *CheckInConfig) Snapshot() CheckInSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CheckInSettings{
		DailyLimit:       c.DailyLimit,
		WarningThreshold: c.WarningThreshold,
		QuotaScope:       c.QuotaScope,
		RecentVerifiers:  c.RecentVerifiers,
	}
}

func (c *CheckInConfig) apply(s CheckInSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.DailyLimit = s.DailyLimit
	c.WarningThreshold = s.WarningThreshold
	c.QuotaScope = s.QuotaScope
	c.RecentVerifiers = s.RecentVerifiers
}

// watchCheckIn reloads the check-in quota settings when the config file
// changes. Invalid edits are logged and ignored.
func watchCheckIn(v *viper.Viper, c *CheckInConfig) {
	if c == nil {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		next := CheckInSettings{
			DailyLimit:       v.GetInt("checkin.daily_limit"),
			WarningThreshold: v.GetInt("checkin.warning_threshold"),
			QuotaScope:       v.GetString("checkin.quota_scope"),
			RecentVerifiers:  v.GetInt("checkin.recent_verifiers"),
		}
		if err := next.validate(); err != nil {
			zap.L().Warn("ignoring invalid check-in config change", zap.String("file", e.Name), zap.Error(err))
			return
		}

		c.apply(next)
		zap.L().Info("check-in config reloaded", zap.String("file", e.Name), zap.Int("daily_limit", next.DailyLimit), zap.String("scope", next.QuotaScope))
	})
	v.WatchConfig()
}
