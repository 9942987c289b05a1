package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load(NewSource(viper.New()))

	assert.Equal(t, 50, cfg.Directory.FetchLimit)
	assert.Equal(t, 10*time.Second, cfg.Directory.LocateTimeout)
	assert.Equal(t, 30*time.Second, cfg.Reporter.Interval)
	assert.Equal(t, 30*time.Second, cfg.MapView.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.MapView.LocateTimeout)
	assert.Equal(t, "driver_photos", cfg.Storage.Bucket)
	assert.Equal(t, "send-beon-otp", cfg.OTP.SendFunction)
	assert.Equal(t, "verify-beon-otp", cfg.OTP.VerifyFunc)
	assert.Equal(t, "nats", cfg.Events.Broker)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "https://api.mapbox.com", cfg.Geocoding.URL)
	assert.Empty(t, cfg.Geocoding.Token)
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DIRECTORY_FETCH_LIMIT", "20")
	v.Set("REPORTER_INTERVAL", "45s")
	v.Set("MAPVIEW_POLL_INTERVAL", "12")
	v.Set("DB_AUTO_MIGRATE", "true")
	v.Set("SERVER_PORT", "not-a-number")

	cfg := Load(NewSource(v))

	assert.Equal(t, 20, cfg.Directory.FetchLimit)
	assert.Equal(t, 45*time.Second, cfg.Reporter.Interval)
	assert.Equal(t, 12*time.Second, cfg.MapView.PollInterval)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 9990, cfg.Server.Port)
}

func TestInitConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drivers.env")
	require.NoError(t, os.WriteFile(path, []byte("APP_NAME=drivers-test\nSTORAGE_BUCKET=avatars\n"), 0o600))

	cfg := InitConfig(path)

	assert.Equal(t, "drivers-test", cfg.App.Name)
	assert.Equal(t, "avatars", cfg.Storage.Bucket)
}

func TestInitConfig_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg := InitConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.Equal(t, 50, cfg.Directory.FetchLimit)
}

func TestInitConfig_EnvironmentWins(t *testing.T) {
	t.Setenv("DIRECTORY_FETCH_LIMIT", "7")
	cfg := InitConfig("")
	assert.Equal(t, 7, cfg.Directory.FetchLimit)
}
