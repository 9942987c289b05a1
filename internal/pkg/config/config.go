package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/spf13/viper"
)

// InitConfig loads the optional env file at configPath and overlays the process environment.
func InitConfig(configPath string) *models.Config {
	v := viper.New()
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				log.Println("error loading config from file", err)
			}
		}
	}

	return loadConfig(&Source{v: v})
}

// Source is a typed view over viper keys with defaults.
type Source struct {
	v *viper.Viper
}

// NewSource wraps an existing viper instance, mainly for tests.
func NewSource(v *viper.Viper) *Source {
	return &Source{v: v}
}

// Load builds the application config from a source
func Load(s *Source) *models.Config {
	return loadConfig(s)
}

func loadConfig(s *Source) *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = s.GetString("APP_NAME", "mashaweer-drivers")
	configs.App.Environment = s.GetString("APP_ENV", "local")
	configs.App.Debug = s.GetBool("APP_DEBUG", true)
	configs.App.Version = s.GetString("APP_VERSION", "")

	// Server config
	configs.Server.Host = s.GetString("SERVER_HOST", "")
	configs.Server.Port = s.GetInt("SERVER_PORT", 9990)
	configs.Server.ReadTimeout = s.GetInt("SERVER_READ_TIMEOUT", 15)
	configs.Server.WriteTimeout = s.GetInt("SERVER_WRITE_TIMEOUT", 15)
	configs.Server.ShutdownTimeout = s.GetInt("SERVER_SHUTDOWN_TIMEOUT", 10)

	// Database config
	configs.Database.Driver = s.GetString("DB_DRIVER", "pgx")
	configs.Database.Host = s.GetString("DB_HOST", "localhost")
	configs.Database.Port = s.GetInt("DB_PORT", 5432)
	configs.Database.Username = s.GetString("DB_USERNAME", "")
	configs.Database.Password = s.GetString("DB_PASSWORD", "")
	configs.Database.Database = s.GetString("DB_DATABASE", "mashaweer")
	configs.Database.SSLMode = s.GetString("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = s.GetInt("DB_MAX_CONNS", 10)
	configs.Database.IdleConns = s.GetInt("DB_IDLE_CONNS", 5)
	configs.Database.AutoMigrate = s.GetBool("DB_AUTO_MIGRATE", false)

	// Redis config
	configs.Redis.Host = s.GetString("REDIS_HOST", "localhost")
	configs.Redis.Port = s.GetInt("REDIS_PORT", 6379)
	configs.Redis.Password = s.GetString("REDIS_PASSWORD", "")
	configs.Redis.DB = s.GetInt("REDIS_DB", 0)
	configs.Redis.PoolSize = s.GetInt("REDIS_POOL_SIZE", 10)

	// Event brokers
	configs.NATS.URL = s.GetString("NATS_URL", "nats://localhost:4222")
	configs.NSQ.Address = s.GetString("NSQ_ADDRESS", "localhost:4150")
	configs.Events.Broker = s.GetString("EVENTS_BROKER", "nats")

	// JWT config
	configs.JWT.Secret = s.GetString("JWT_SECRET", "")
	configs.JWT.Expiration = s.GetInt("JWT_EXPIRATION", 60*24*30)
	configs.JWT.Issuer = s.GetString("JWT_ISSUER", "mashaweer")

	// Photo storage
	configs.Storage.URL = s.GetString("STORAGE_URL", "")
	configs.Storage.APIKey = s.GetString("STORAGE_API_KEY", "")
	configs.Storage.Bucket = s.GetString("STORAGE_BUCKET", "driver_photos")
	configs.Storage.Timeout = s.GetDuration("STORAGE_TIMEOUT", 30*time.Second)

	// OTP side channel
	configs.OTP.Provider = s.GetString("OTP_PROVIDER", "functions")
	configs.OTP.FunctionsURL = s.GetString("OTP_FUNCTIONS_URL", "")
	configs.OTP.APIKey = s.GetString("OTP_API_KEY", "")
	configs.OTP.SendFunction = s.GetString("OTP_SEND_FUNCTION", "send-beon-otp")
	configs.OTP.VerifyFunc = s.GetString("OTP_VERIFY_FUNCTION", "verify-beon-otp")
	configs.OTP.Timeout = s.GetDuration("OTP_TIMEOUT", 15*time.Second)
	configs.OTP.TTL = s.GetDuration("OTP_TTL", 5*time.Minute)

	// Driver directory, reporter and map view tuning
	configs.Directory.FetchLimit = s.GetInt("DIRECTORY_FETCH_LIMIT", 50)
	configs.Directory.LocateTimeout = s.GetDuration("DIRECTORY_LOCATE_TIMEOUT", 10*time.Second)
	configs.Reporter.Interval = s.GetDuration("REPORTER_INTERVAL", 30*time.Second)
	configs.MapView.PollInterval = s.GetDuration("MAPVIEW_POLL_INTERVAL", 30*time.Second)
	configs.MapView.LocateTimeout = s.GetDuration("MAPVIEW_LOCATE_TIMEOUT", 5*time.Second)

	// Place search
	configs.Geocoding.URL = s.GetString("GEOCODING_URL", "https://api.mapbox.com")
	configs.Geocoding.Token = s.GetString("GEOCODING_TOKEN", "")
	configs.Geocoding.Language = s.GetString("GEOCODING_LANGUAGE", "ar")
	configs.Geocoding.Timeout = s.GetDuration("GEOCODING_TIMEOUT", 10*time.Second)

	// NewRelic config
	configs.NewRelic.LicenseKey = s.GetString("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = s.GetString("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = s.GetBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.LogsEnabled = s.GetBool("NEW_RELIC_LOGS_ENABLED", false)
	configs.NewRelic.ForwardLogs = s.GetBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = s.GetString("LOG_LEVEL", "info")
	configs.Logger.FilePath = s.GetString("LOG_FILE_PATH", "logs/mashaweer.log")
	configs.Logger.Type = s.GetString("LOG_TYPE", "stdout")

	return configs
}

// GetString returns the value for key or defaultValue when unset
func (s *Source) GetString(key, defaultValue string) string {
	if !s.v.IsSet(key) || s.v.GetString(key) == "" {
		return defaultValue
	}
	return s.v.GetString(key)
}

// GetInt returns the int value for key or defaultValue when unset or invalid
func (s *Source) GetInt(key string, defaultValue int) int {
	raw := s.GetString(key, "")
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetBool returns the boolean value for key or defaultValue when unset or invalid
func (s *Source) GetBool(key string, defaultValue bool) bool {
	raw := s.GetString(key, "")
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetDuration accepts Go duration strings ("30s") or a bare number of seconds
func (s *Source) GetDuration(key string, defaultValue time.Duration) time.Duration {
	raw := s.GetString(key, "")
	if raw == "" {
		return defaultValue
	}

	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}

	log.Printf("Warning: Invalid duration value for %s, using default: %s", key, defaultValue)
	return defaultValue
}
