package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/services/drivers/mocks"
)

func newLocalOTP(repo *mocks.MockOTPRepo, now time.Time) *LocalOTP {
	gw := NewLocalOTP(repo, 5*time.Minute)
	gw.now = func() time.Time { return now }
	gw.generate = func() (string, error) { return "123456", nil }
	return gw
}

func hashed(t *testing.T, code string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLocalOTP_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Arrange
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo := mocks.NewMockOTPRepo(ctrl)
	repo.EXPECT().CreateOTP(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, otp *models.OTP) error {
			assert.Equal(t, "01012345678", otp.MSISDN)
			assert.Equal(t, now.Add(5*time.Minute), otp.ExpiresAt)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte("123456")))
			return nil
		})
	gw := newLocalOTP(repo, now)

	// Act
	result, err := gw.Send(context.Background(), "01012345678", "Ahmed")

	// Assert
	require.NoError(t, err)
	assert.True(t, result.OK())
}

func TestLocalOTP_SendStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockOTPRepo(ctrl)
	repo.EXPECT().CreateOTP(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	gw := newLocalOTP(repo, time.Now())

	result, err := gw.Send(context.Background(), "01012345678", "Ahmed")

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestLocalOTP_Verify(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		code      string
		mockSetup func(repo *mocks.MockOTPRepo)
		wantOK    bool
		wantErr   bool
	}{
		{
			name: "matching code is consumed",
			code: "123456",
			mockSetup: func(repo *mocks.MockOTPRepo) {
				repo.EXPECT().GetOTP(gomock.Any(), "01012345678").Return(&models.OTP{
					MSISDN: "01012345678", CodeHash: hashed(t, "123456"), ExpiresAt: now.Add(time.Minute),
				}, nil)
				repo.EXPECT().DeleteOTP(gomock.Any(), "01012345678").Return(nil)
			},
			wantOK: true,
		},
		{
			name: "wrong code is declined",
			code: "654321",
			mockSetup: func(repo *mocks.MockOTPRepo) {
				repo.EXPECT().GetOTP(gomock.Any(), "01012345678").Return(&models.OTP{
					MSISDN: "01012345678", CodeHash: hashed(t, "123456"), ExpiresAt: now.Add(time.Minute),
				}, nil)
			},
		},
		{
			name: "expired code is declined",
			code: "123456",
			mockSetup: func(repo *mocks.MockOTPRepo) {
				repo.EXPECT().GetOTP(gomock.Any(), "01012345678").Return(&models.OTP{
					MSISDN: "01012345678", CodeHash: hashed(t, "123456"), ExpiresAt: now.Add(-time.Second),
				}, nil)
			},
		},
		{
			name: "no pending code is declined",
			code: "123456",
			mockSetup: func(repo *mocks.MockOTPRepo) {
				repo.EXPECT().GetOTP(gomock.Any(), "01012345678").Return(nil, nil)
			},
		},
		{
			name: "store failure is an error",
			code: "123456",
			mockSetup: func(repo *mocks.MockOTPRepo) {
				repo.EXPECT().GetOTP(gomock.Any(), "01012345678").Return(nil, errors.New("redis down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// Arrange
			repo := mocks.NewMockOTPRepo(ctrl)
			tt.mockSetup(repo)
			gw := newLocalOTP(repo, now)

			// Act
			result, err := gw.Verify(context.Background(), "01012345678", tt.code)

			// Assert
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, result.OK())
		})
	}
}

func TestRandomCode(t *testing.T) {
	code, err := randomCode()
	require.NoError(t, err)
	assert.Regexp(t, `^\d{6}$`, code)
}
