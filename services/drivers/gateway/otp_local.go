package gateway

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/internal/utils"
	"github.com/mashaweer/mashaweer/services/drivers"
)

const (
	msgLocalSent     = "تم إرسال رمز التوثيق إلى هاتفك."
	msgLocalVerified = "تم التحقق من رقم الهاتف."
	msgLocalInvalid  = "رمز التوثيق غير صحيح أو منتهي الصلاحية. الرجاء التأكد من الرمز والمحاولة مرة أخرى."
)

// LocalOTP issues codes itself and keeps their hashes in Redis. The code is
// written to the log instead of being delivered, for development setups.
type LocalOTP struct {
	repo     drivers.OTPRepo
	ttl      time.Duration
	now      func() time.Time
	generate func() (string, error)
}

// NewLocalOTP creates the local OTP provider
func NewLocalOTP(repo drivers.OTPRepo, ttl time.Duration) *LocalOTP {
	return &LocalOTP{repo: repo, ttl: ttl, now: models.Now, generate: randomCode}
}

// Send issues a new code for phone, replacing any pending one
func (g *LocalOTP) Send(ctx context.Context, phone, name string) (*models.OTPResult, error) {
	code, err := g.generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash OTP: %w", err)
	}

	now := g.now()
	otp := &models.OTP{
		MSISDN:    phone,
		CodeHash:  string(hash),
		CreatedAt: now,
		ExpiresAt: now.Add(g.ttl),
	}
	if err := g.repo.CreateOTP(ctx, otp); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Generated OTP",
		logger.String("phone", utils.MaskPhoneNumber(phone)),
		logger.String("name", name),
		logger.String("otp_code", code))

	return &models.OTPResult{Status: models.OTPStatusSuccess, Message: msgLocalSent}, nil
}

// Verify checks code against the pending one and consumes it on success
func (g *LocalOTP) Verify(ctx context.Context, phone, code string) (*models.OTPResult, error) {
	otp, err := g.repo.GetOTP(ctx, phone)
	if err != nil {
		return nil, err
	}
	if otp == nil || g.now().After(otp.ExpiresAt) {
		return &models.OTPResult{Status: "error", Message: msgLocalInvalid}, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(code)) != nil {
		return &models.OTPResult{Status: "error", Message: msgLocalInvalid}, nil
	}

	if err := g.repo.DeleteOTP(ctx, phone); err != nil {
		logger.WarnCtx(ctx, "Failed to consume OTP", logger.ErrorField(err))
	}
	return &models.OTPResult{Status: models.OTPStatusSuccess, Message: msgLocalVerified}, nil
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
