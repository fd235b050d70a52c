package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Model       ModelConfig
	Risk        RiskConfig
	Routing     RoutingConfig
	DeviceStore DeviceStoreConfig
	Worker      WorkerConfig
	Log         LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	AssessmentTTL time.Duration
}

// ModelConfig points at the exported classifier artifacts.
type ModelConfig struct {
	RiskArtifactPath     string
	IncidentArtifactPath string
}

// RiskConfig is the tunable scoring policy: banding thresholds, the
// safe-haven radius and the time-of-day multipliers.
type RiskConfig struct {
	LowThreshold      float64
	ModerateThreshold float64
	HighThreshold     float64
	SafeHavenRadiusKm float64
	DayMultiplier     float64
	EveningMultiplier float64
	NightMultiplier   float64
	NeighborCount     int
}

type RoutingConfig struct {
	ProviderBaseURL string
	ProviderAPIKey  string
	Vehicle         string
	RequestTimeout  time.Duration
}

type DeviceStoreConfig struct {
	BaseURL        string
	DeviceID       string
	RequestTimeout time.Duration
}

type WorkerConfig struct {
	Enabled         bool
	ConsumerGroup   string
	MaxRetries      int
	EmptyQueueSleep time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			AssessmentTTL: time.Duration(viper.GetInt("ASSESSMENT_CACHE_TTL")) * time.Second,
		},
		Model: ModelConfig{
			RiskArtifactPath:     viper.GetString("RISK_MODEL_PATH"),
			IncidentArtifactPath: viper.GetString("INCIDENT_MODEL_PATH"),
		},
		Risk: RiskConfig{
			LowThreshold:      viper.GetFloat64("RISK_LOW_THRESHOLD"),
			ModerateThreshold: viper.GetFloat64("RISK_MODERATE_THRESHOLD"),
			HighThreshold:     viper.GetFloat64("RISK_HIGH_THRESHOLD"),
			SafeHavenRadiusKm: viper.GetFloat64("SAFE_HAVEN_RADIUS_KM"),
			DayMultiplier:     viper.GetFloat64("RISK_DAY_MULTIPLIER"),
			EveningMultiplier: viper.GetFloat64("RISK_EVENING_MULTIPLIER"),
			NightMultiplier:   viper.GetFloat64("RISK_NIGHT_MULTIPLIER"),
			NeighborCount:     viper.GetInt("RISK_NEIGHBOR_COUNT"),
		},
		Routing: RoutingConfig{
			ProviderBaseURL: viper.GetString("ROUTING_BASE_URL"),
			ProviderAPIKey:  viper.GetString("ROUTING_API_KEY"),
			Vehicle:         viper.GetString("ROUTING_VEHICLE"),
			RequestTimeout:  time.Duration(viper.GetInt("ROUTING_TIMEOUT")) * time.Second,
		},
		DeviceStore: DeviceStoreConfig{
			BaseURL:        viper.GetString("DEVICE_STORE_URL"),
			DeviceID:       viper.GetString("DEVICE_ID"),
			RequestTimeout: time.Duration(viper.GetInt("DEVICE_STORE_TIMEOUT")) * time.Second,
		},
		Worker: WorkerConfig{
			Enabled:         viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:   viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:      viper.GetInt("WORKER_MAX_RETRIES"),
			EmptyQueueSleep: time.Duration(viper.GetInt("WORKER_EMPTY_QUEUE_SLEEP_MS")) * time.Millisecond,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.AssessmentTTL == 0 {
		cfg.Cache.AssessmentTTL = 120 * time.Second
	}
	if cfg.Risk.LowThreshold == 0 {
		cfg.Risk.LowThreshold = 0.75
	}
	if cfg.Risk.ModerateThreshold == 0 {
		cfg.Risk.ModerateThreshold = 0.40
	}
	if cfg.Risk.HighThreshold == 0 {
		cfg.Risk.HighThreshold = 0.20
	}
	if cfg.Risk.SafeHavenRadiusKm == 0 {
		cfg.Risk.SafeHavenRadiusKm = 0.2
	}
	if cfg.Risk.DayMultiplier == 0 {
		cfg.Risk.DayMultiplier = 0.8
	}
	if cfg.Risk.EveningMultiplier == 0 {
		cfg.Risk.EveningMultiplier = 1.0
	}
	if cfg.Risk.NightMultiplier == 0 {
		cfg.Risk.NightMultiplier = 1.5
	}
	if cfg.Risk.NeighborCount == 0 {
		cfg.Risk.NeighborCount = 3
	}
	if cfg.Routing.ProviderBaseURL == "" {
		cfg.Routing.ProviderBaseURL = "https://graphhopper.com/api/1"
	}
	if cfg.Routing.Vehicle == "" {
		cfg.Routing.Vehicle = "car"
	}
	if cfg.Routing.RequestTimeout == 0 {
		cfg.Routing.RequestTimeout = 10 * time.Second
	}
	if cfg.DeviceStore.DeviceID == "" {
		cfg.DeviceStore.DeviceID = "handbag_001"
	}
	if cfg.DeviceStore.RequestTimeout == 0 {
		cfg.DeviceStore.RequestTimeout = 6 * time.Second
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "sos-alert-workers"
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Worker.EmptyQueueSleep == 0 {
		cfg.Worker.EmptyQueueSleep = 100 * time.Millisecond
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
