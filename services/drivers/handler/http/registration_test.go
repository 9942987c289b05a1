package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mashaweer/mashaweer/internal/pkg/constants"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/services/drivers/mocks"
)

func TestSubmitIdentity(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		body      string
		mockSetup func(uc *mocks.MockDriverUC)
		wantCode  int
	}{
		{
			name:      "sends passcode",
			sessionID: "s1",
			body:      `{"name":"Ahmed","phone":"01012345678"}`,
			mockSetup: func(uc *mocks.MockDriverUC) {
				uc.EXPECT().SubmitIdentity(gomock.Any(), "s1", &models.IdentityRequest{Name: "Ahmed", Phone: "01012345678"}).
					Return(&models.RegistrationResponse{State: models.RegistrationSnapshot{Stage: models.StageVerifyOTP}}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "missing session header",
			body:      `{"name":"Ahmed","phone":"01012345678"}`,
			mockSetup: func(uc *mocks.MockDriverUC) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "invalid body",
			sessionID: "s1",
			body:      `{invalid_json}`,
			mockSetup: func(uc *mocks.MockDriverUC) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockDriverUC(ctrl)
			tt.mockSetup(uc)
			h := NewRegistrationHandler(uc)

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/registration/identity", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tt.sessionID != "" {
				req.Header.Set(constants.HeaderSessionID, tt.sessionID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			// Act
			err := h.SubmitIdentity(c)

			// Assert
			assert.NoError(t, err)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestSubmitOTP_SignsIn(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockDriverUC(ctrl)
	uc.EXPECT().SubmitOTP(gomock.Any(), "s1", &models.OTPRequest{Code: "123456"}).Return(&models.RegistrationResponse{
		State: models.RegistrationSnapshot{Stage: models.StageDone},
		Auth:  &models.AuthResponse{Token: "jwt", Login: true},
	}, nil)
	h := NewRegistrationHandler(uc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/registration/otp", strings.NewReader(`{"code":"123456"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(constants.HeaderSessionID, "s1")
	rec := httptest.NewRecorder()

	// Act
	err := h.SubmitOTP(e.NewContext(req, rec))

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]interface{})
	auth := data["auth"].(map[string]interface{})
	assert.Equal(t, "jwt", auth["token"])
}

func multipartVehicle(t *testing.T, name string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("vehicle_type", "taxi"))
	if name != "" {
		require.NoError(t, w.WriteField("name", name))
	}
	if photo != nil {
		part, err := w.CreateFormFile("photo", "me.png")
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestSubmitVehicle(t *testing.T) {
	tests := []struct {
		name      string
		formName  string
		photo     []byte
		mockSetup func(uc *mocks.MockDriverUC)
		wantCode  int
	}{
		{
			name:  "with photo",
			photo: []byte("\x89PNG\r\n\x1a\nrest"),
			mockSetup: func(uc *mocks.MockDriverUC) {
				uc.EXPECT().SubmitVehicle(gomock.Any(), "s1", gomock.Any()).DoAndReturn(
					func(_ interface{}, _ string, req *models.VehicleRequest) (*models.RegistrationResponse, error) {
						assert.Equal(t, models.VehicleTaxi, req.VehicleType)
						require.NotNil(t, req.Photo)
						assert.Equal(t, "me.png", req.Photo.FileName)
						assert.NotEmpty(t, req.Photo.ContentType)
						return &models.RegistrationResponse{State: models.RegistrationSnapshot{Stage: models.StageDone}}, nil
					})
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "edit without new photo",
			formName: "Ahmed Ali",
			mockSetup: func(uc *mocks.MockDriverUC) {
				uc.EXPECT().SubmitVehicle(gomock.Any(), "s1", gomock.Any()).DoAndReturn(
					func(_ interface{}, _ string, req *models.VehicleRequest) (*models.RegistrationResponse, error) {
						assert.Nil(t, req.Photo)
						assert.Equal(t, "Ahmed Ali", req.Name)
						return &models.RegistrationResponse{}, nil
					})
			},
			wantCode: http.StatusOK,
		},
		{
			name:  "duplicate photo",
			photo: []byte("png"),
			mockSetup: func(uc *mocks.MockDriverUC) {
				uc.EXPECT().SubmitVehicle(gomock.Any(), "s1", gomock.Any()).Return(nil, models.ErrPhotoExists)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockDriverUC(ctrl)
			tt.mockSetup(uc)
			h := NewRegistrationHandler(uc)

			body, contentType := multipartVehicle(t, tt.formName, tt.photo)
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/registration/vehicle", body)
			req.Header.Set(echo.HeaderContentType, contentType)
			req.Header.Set(constants.HeaderSessionID, "s1")
			rec := httptest.NewRecorder()

			// Act
			err := h.SubmitVehicle(e.NewContext(req, rec))

			// Assert
			assert.NoError(t, err)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestStartEdit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockDriverUC(ctrl)
	uc.EXPECT().StartEdit(gomock.Any(), "s1", "d1").Return(&models.RegistrationResponse{
		State: models.RegistrationSnapshot{Stage: models.StageCollectVehicleAndPhoto, Mode: models.ModeEdit},
	}, nil)
	h := NewRegistrationHandler(uc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/drivers/me/edit", nil)
	req.Header.Set(constants.HeaderSessionID, "s1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(constants.ContextDriverID, "d1")

	assert.NoError(t, h.StartEdit(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
