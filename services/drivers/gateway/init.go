package gateway

import (
	"fmt"
	"time"

	"github.com/mashaweer/mashaweer/internal/pkg/constants"
	pkghttp "github.com/mashaweer/mashaweer/internal/pkg/http"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	natspkg "github.com/mashaweer/mashaweer/internal/pkg/nats"
	nsqpkg "github.com/mashaweer/mashaweer/internal/pkg/nsq"
	"github.com/mashaweer/mashaweer/services/drivers"
	"github.com/mashaweer/mashaweer/services/drivers/mapview"
)

// NewEventPublisher connects to the configured broker. The returned stop
// function releases the connection.
func NewEventPublisher(cfg *models.Config) (Publisher, func(), error) {
	switch cfg.Events.Broker {
	case constants.BrokerNATS:
		client, err := natspkg.NewClient(cfg.NATS.URL, cfg.App.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		return natspkg.NewProducerFromConn(client), client.Close, nil
	case constants.BrokerNSQ:
		producer, err := nsqpkg.NewProducer(cfg.NSQ.Address)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to nsqd: %w", err)
		}
		return producer, producer.Stop, nil
	case constants.BrokerNone, "":
		return nil, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown events broker %q", cfg.Events.Broker)
	}
}

// NewOTPGateway builds the configured OTP side channel
func NewOTPGateway(cfg *models.Config, otpRepo drivers.OTPRepo) (drivers.OTPGateway, error) {
	switch cfg.OTP.Provider {
	case "functions":
		client := pkghttp.NewClient(pkghttp.Config{
			BaseURL:     cfg.OTP.FunctionsURL,
			Timeout:     cfg.OTP.Timeout,
			ServiceName: "otp-functions",
			Headers:     bearer(cfg.OTP.APIKey),
		})
		return NewFunctionsOTP(client, cfg.OTP.SendFunction, cfg.OTP.VerifyFunc), nil
	case "redis":
		return NewLocalOTP(otpRepo, cfg.OTP.TTL), nil
	default:
		return nil, fmt.Errorf("unknown OTP provider %q", cfg.OTP.Provider)
	}
}

// NewPhotoStorage builds the object storage client for driver photos
func NewPhotoStorage(cfg *models.Config) drivers.PhotoStorage {
	timeout := cfg.Storage.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	client := pkghttp.NewClient(pkghttp.Config{
		BaseURL:     cfg.Storage.URL,
		Timeout:     timeout,
		ServiceName: "object-storage",
		Headers:     bearer(cfg.Storage.APIKey),
	})
	return NewStorageGW(client, cfg.Storage.Bucket)
}

// NewGeocoder builds the place search client. It returns nil when no token
// is configured, which leaves place search off.
func NewGeocoder(cfg *models.Config) mapview.Geocoder {
	if cfg.Geocoding.Token == "" {
		return nil
	}
	client := pkghttp.NewClient(pkghttp.Config{
		BaseURL:     cfg.Geocoding.URL,
		Timeout:     cfg.Geocoding.Timeout,
		ServiceName: "geocoding",
	})
	return NewGeocoderGW(client, cfg.Geocoding.Token, cfg.Geocoding.Language)
}

func bearer(key string) map[string]string {
	if key == "" {
		return nil
	}
	return map[string]string{
		"Authorization": "Bearer " + key,
		"apikey":        key,
	}
}
