package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Auth      AuthConfig      `yaml:"auth"`
	Bot       BotConfig       `yaml:"bot"`
	Geocoding GeocodingConfig `yaml:"geocoding"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	Worker    WorkerConfig    `yaml:"worker"`
}

type HTTPConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

type BotConfig struct {
	ConversationTTLHours int    `yaml:"conversation_ttl_hours"`
	RecommendationLimit  int    `yaml:"recommendation_limit"`
	PlaceholderImage     string `yaml:"placeholder_image"`
}

func (b BotConfig) ConversationTTL() time.Duration {
	return time.Duration(b.ConversationTTLHours) * time.Hour
}

type GeocodingConfig struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type WorkerConfig struct {
	ImageRepairMinutes int `yaml:"image_repair_minutes"`
}

const (
	defaultConversationTTLHours = 7 * 24
	defaultRecommendationLimit  = 5
	defaultTokenTTLHours        = 24
	defaultPlaceholderImage     = "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=400"
	defaultGeocodingURL         = "https://api.mapbox.com/geocoding/v5/mapbox.places"
	defaultGeocodingTimeout     = 5
	defaultRequestsPerMinute    = 100
	defaultImageRepairMinutes   = 60
)

// LoadConfig reads the YAML file at path. A .env file in the working
// directory is loaded first when present; JWT_SECRET, MAP_TOKEN and
// DATABASE_PASSWORD override the file.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret (or JWT_SECRET) is required")
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		c.Auth.JWTSecret = v
	}
	if v, ok := os.LookupEnv("MAP_TOKEN"); ok {
		c.Geocoding.Token = v
	}
	if v, ok := os.LookupEnv("DATABASE_PASSWORD"); ok {
		c.Database.Password = v
	}
}

func (c *Config) applyDefaults() {
	if c.Bot.ConversationTTLHours <= 0 {
		c.Bot.ConversationTTLHours = defaultConversationTTLHours
	}
	if c.Bot.RecommendationLimit <= 0 {
		c.Bot.RecommendationLimit = defaultRecommendationLimit
	}
	if c.Bot.PlaceholderImage == "" {
		c.Bot.PlaceholderImage = defaultPlaceholderImage
	}
	if c.Auth.TokenTTLHours <= 0 {
		c.Auth.TokenTTLHours = defaultTokenTTLHours
	}
	if c.Geocoding.BaseURL == "" {
		c.Geocoding.BaseURL = defaultGeocodingURL
	}
	if c.Geocoding.TimeoutSeconds <= 0 {
		c.Geocoding.TimeoutSeconds = defaultGeocodingTimeout
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		c.RateLimit.RequestsPerMinute = defaultRequestsPerMinute
	}
	if c.Worker.ImageRepairMinutes <= 0 {
		c.Worker.ImageRepairMinutes = defaultImageRepairMinutes
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
