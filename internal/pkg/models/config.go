package models

import "time"

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	NSQ       NSQConfig
	Events    EventsConfig
	JWT       JWTConfig
	Storage   StorageConfig
	OTP       OTPConfig
	Directory DirectoryConfig
	Reporter  ReporterConfig
	MapView   MapViewConfig
	Geocoding GeocodingConfig
	NewRelic  NewRelicConfig
	Logger    LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        int
	Username    string
	Password    string
	Database    string
	SSLMode     string
	MaxConns    int
	IdleConns   int
	AutoMigrate bool
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NSQConfig contains nsqd connection configuration
type NSQConfig struct {
	Address string
}

// EventsConfig selects the broker presence and location events are published to.
// Broker is one of "nats", "nsq" or "none".
type EventsConfig struct {
	Broker string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// StorageConfig points at the object storage API holding driver photos
type StorageConfig struct {
	URL     string
	APIKey  string
	Bucket  string
	Timeout time.Duration
}

// OTPConfig selects and configures the one-time passcode side channel.
// Provider is "functions" (remote send/verify functions) or "redis" (local dev codes).
type OTPConfig struct {
	Provider     string
	FunctionsURL string
	APIKey       string
	SendFunction string
	VerifyFunc   string
	Timeout      time.Duration
	TTL          time.Duration
}

// DirectoryConfig contains driver directory tuning
type DirectoryConfig struct {
	FetchLimit    int
	LocateTimeout time.Duration
}

// ReporterConfig contains presence reporter tuning
type ReporterConfig struct {
	Interval time.Duration
}

// MapViewConfig contains map presence view tuning
type MapViewConfig struct {
	PollInterval  time.Duration
	LocateTimeout time.Duration
}

// GeocodingConfig contains the place search provider settings
type GeocodingConfig struct {
	URL      string
	Token    string
	Language string
	Timeout  time.Duration
}

// NewRelicConfig contains New Relic agent configuration
type NewRelicConfig struct {
	Enabled     bool
	LicenseKey  string
	AppName     string
	LogsEnabled bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
	Type     string
}
