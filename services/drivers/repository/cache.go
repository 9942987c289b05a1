package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/mashaweer/mashaweer/internal/pkg/constants"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

// GetSession loads a device session
func (r *CacheRepo) GetSession(ctx context.Context, id string) (*models.Session, error) {
	key := fmt.Sprintf(constants.KeySession, id)

	var session models.Session
	if err := r.getJSON(ctx, key, &session); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// SaveSession stores a device session and renews its expiry
func (r *CacheRepo) SaveSession(ctx context.Context, session *models.Session) error {
	key := fmt.Sprintf(constants.KeySession, session.ID)
	if err := r.setJSON(ctx, key, session, constants.SessionTTL); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// DeleteSession removes a device session
func (r *CacheRepo) DeleteSession(ctx context.Context, id string) error {
	key := fmt.Sprintf(constants.KeySession, id)
	if err := r.redisClient.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// GetFlow loads an in-progress registration. It returns nil when there is none.
func (r *CacheRepo) GetFlow(ctx context.Context, sessionID string) (*models.RegistrationSnapshot, error) {
	key := fmt.Sprintf(constants.KeyRegistrationFlow, sessionID)

	var snapshot models.RegistrationSnapshot
	if err := r.getJSON(ctx, key, &snapshot); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get registration flow: %w", err)
	}
	return &snapshot, nil
}

// SaveFlow stores an in-progress registration
func (r *CacheRepo) SaveFlow(ctx context.Context, sessionID string, snapshot *models.RegistrationSnapshot) error {
	key := fmt.Sprintf(constants.KeyRegistrationFlow, sessionID)
	if err := r.setJSON(ctx, key, snapshot, constants.RegistrationFlowTTL); err != nil {
		return fmt.Errorf("failed to save registration flow: %w", err)
	}
	return nil
}

// DeleteFlow drops an in-progress registration
func (r *CacheRepo) DeleteFlow(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf(constants.KeyRegistrationFlow, sessionID)
	if err := r.redisClient.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete registration flow: %w", err)
	}
	return nil
}

// LockFlow claims the session's registration flow until the returned release
// is called. A flow held by another request yields models.ErrFlowBusy.
func (r *CacheRepo) LockFlow(ctx context.Context, sessionID string) (func(), error) {
	key := fmt.Sprintf(constants.KeyRegistrationLock, sessionID)
	token := uuid.NewString()

	ok, err := r.redisClient.SetNX(ctx, key, token, constants.RegistrationLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock registration flow: %w", err)
	}
	if !ok {
		return nil, models.ErrFlowBusy
	}

	release := func() {
		// the request context may already be done
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if _, err := r.redisClient.DeleteIfEqual(ctx, key, token); err != nil {
			logger.Warn("Failed to release registration flow lock",
				logger.String("session_id", sessionID),
				logger.ErrorField(err))
		}
	}
	return release, nil
}

// CreateOTP stores a passcode issued by the local provider until it expires
func (r *CacheRepo) CreateOTP(ctx context.Context, otp *models.OTP) error {
	key := fmt.Sprintf(constants.KeyDriverOTP, otp.MSISDN)

	ttl := time.Until(otp.ExpiresAt)
	if ttl <= 0 {
		ttl = r.cfg.OTP.TTL
	}
	if err := r.setJSON(ctx, key, otp, ttl); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}
	return nil
}

// GetOTP loads the pending passcode of a phone. It returns nil when there is none.
func (r *CacheRepo) GetOTP(ctx context.Context, phone string) (*models.OTP, error) {
	key := fmt.Sprintf(constants.KeyDriverOTP, phone)

	var otp models.OTP
	if err := r.getJSON(ctx, key, &otp); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get OTP: %w", err)
	}
	return &otp, nil
}

// DeleteOTP removes the pending passcode of a phone
func (r *CacheRepo) DeleteOTP(ctx context.Context, phone string) error {
	key := fmt.Sprintf(constants.KeyDriverOTP, phone)
	if err := r.redisClient.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete OTP: %w", err)
	}
	return nil
}

func (r *CacheRepo) getJSON(ctx context.Context, key string, dest interface{}) error {
	val, err := r.redisClient.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

func (r *CacheRepo) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return r.redisClient.Set(ctx, key, data, ttl)
}
