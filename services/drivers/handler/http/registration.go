package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mashaweer/mashaweer/internal/pkg/constants"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/middleware"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/internal/utils"
	"github.com/mashaweer/mashaweer/services/drivers"
)

// MaxPhotoSize bounds uploaded profile photos
const MaxPhotoSize = 5 << 20

// RegistrationHandler drives the sign-up, login and profile edit flow of a session
type RegistrationHandler struct {
	driverUC drivers.DriverUC
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(driverUC drivers.DriverUC) *RegistrationHandler {
	return &RegistrationHandler{
		driverUC: driverUC,
	}
}

// Get handles GET /registration
func (h *RegistrationHandler) Get(c echo.Context) error {
	sessionID, ok := requireSession(c)
	if !ok {
		return utils.BadRequestResponse(c, constants.HeaderSessionID+" header is required")
	}

	resp, err := h.driverUC.GetRegistration(c.Request().Context(), sessionID)
	if err != nil {
		return respondError(c, err, "Failed to load registration")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Registration retrieved successfully", resp)
}

// SubmitIdentity handles POST /registration/identity
func (h *RegistrationHandler) SubmitIdentity(c echo.Context) error {
	sessionID, ok := requireSession(c)
	if !ok {
		return utils.BadRequestResponse(c, constants.HeaderSessionID+" header is required")
	}

	var req models.IdentityRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, err := h.driverUC.SubmitIdentity(c.Request().Context(), sessionID, &req)
	if err != nil {
		return respondError(c, err, "Failed to submit identity")
	}
	return utils.SuccessResponse(c, http.StatusOK, "OTP sent", resp)
}

// SubmitOTP handles POST /registration/otp
func (h *RegistrationHandler) SubmitOTP(c echo.Context) error {
	sessionID, ok := requireSession(c)
	if !ok {
		return utils.BadRequestResponse(c, constants.HeaderSessionID+" header is required")
	}

	var req models.OTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, err := h.driverUC.SubmitOTP(c.Request().Context(), sessionID, &req)
	if err != nil {
		return respondError(c, err, "Failed to verify OTP")
	}
	return utils.SuccessResponse(c, http.StatusOK, "OTP verified", resp)
}

// Back handles POST /registration/back
func (h *RegistrationHandler) Back(c echo.Context) error {
	sessionID, ok := requireSession(c)
	if !ok {
		return utils.BadRequestResponse(c, constants.HeaderSessionID+" header is required")
	}

	resp, err := h.driverUC.RegistrationBack(c.Request().Context(), sessionID)
	if err != nil {
		return respondError(c, err, "Failed to go back")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Registration rewound", resp)
}

// SubmitVehicle handles the multipart POST /registration/vehicle
func (h *RegistrationHandler) SubmitVehicle(c echo.Context) error {
	sessionID, ok := requireSession(c)
	if !ok {
		return utils.BadRequestResponse(c, constants.HeaderSessionID+" header is required")
	}

	photo, err := readPhoto(c)
	if err != nil {
		logger.Warn("Invalid photo upload",
			logger.String("session_id", sessionID),
			logger.ErrorField(err))
		return utils.BadRequestResponse(c, err.Error())
	}

	req := &models.VehicleRequest{
		Name:        c.FormValue("name"),
		VehicleType: models.VehicleType(c.FormValue("vehicle_type")),
		Photo:       photo,
	}

	resp, err := h.driverUC.SubmitVehicle(c.Request().Context(), sessionID, req)
	if err != nil {
		return respondError(c, err, "Failed to save driver")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Driver saved successfully", resp)
}

// StartEdit handles POST /drivers/me/edit
func (h *RegistrationHandler) StartEdit(c echo.Context) error {
	sessionID, ok := requireSession(c)
	if !ok {
		return utils.BadRequestResponse(c, constants.HeaderSessionID+" header is required")
	}

	resp, err := h.driverUC.StartEdit(c.Request().Context(), sessionID, middleware.DriverID(c))
	if err != nil {
		return respondError(c, err, "Failed to start profile edit")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Profile edit started", resp)
}

func requireSession(c echo.Context) (string, bool) {
	id := c.Request().Header.Get(constants.HeaderSessionID)
	return id, id != ""
}

// readPhoto returns the optional "photo" part of the form
func readPhoto(c echo.Context) (*models.PhotoUpload, error) {
	header, err := c.FormFile("photo")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	if header.Size > MaxPhotoSize {
		return nil, fmt.Errorf("photo exceeds %d bytes", MaxPhotoSize)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxPhotoSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	if len(data) > MaxPhotoSize {
		return nil, fmt.Errorf("photo exceeds %d bytes", MaxPhotoSize)
	}

	contentType := header.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &models.PhotoUpload{FileName: header.Filename, ContentType: contentType, Data: data}, nil
}
