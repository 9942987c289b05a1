package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mashaweer/mashaweer/internal/pkg/middleware"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/internal/utils"
	"github.com/mashaweer/mashaweer/services/drivers"
)

// DriverHandler serves the driver directory and the driver's own profile
type DriverHandler struct {
	driverUC drivers.DriverUC
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(driverUC drivers.DriverUC) *DriverHandler {
	return &DriverHandler{
		driverUC: driverUC,
	}
}

// ListDrivers handles GET /drivers?search=&vehicle_type=&lat=&lng=
func (h *DriverHandler) ListDrivers(c echo.Context) error {
	query := &models.DirectoryQuery{
		Search:      c.QueryParam("search"),
		VehicleType: models.VehicleType(c.QueryParam("vehicle_type")),
		Viewer:      viewerFromQuery(c),
	}

	result, err := h.driverUC.ListDrivers(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, models.ErrFetchFailed) {
			return utils.FailureWithDataResponse(c, http.StatusBadGateway, models.ErrFetchFailed.Error(), result)
		}
		return respondError(c, err, "Failed to list drivers")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Drivers retrieved successfully", result)
}

// GetDriver handles GET /drivers/:id
func (h *DriverHandler) GetDriver(c echo.Context) error {
	driver, err := h.driverUC.GetDriver(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to retrieve driver")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Driver retrieved successfully", driver)
}

// GetContact handles GET /drivers/:id/contact
func (h *DriverHandler) GetContact(c echo.Context) error {
	contact, err := h.driverUC.GetContact(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to build contact links")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Contact links built successfully", contact)
}

// GetShare handles GET /drivers/:id/share?lat=&lng=
func (h *DriverHandler) GetShare(c echo.Context) error {
	share, err := h.driverUC.GetShare(c.Request().Context(), c.Param("id"), viewerFromQuery(c))
	if err != nil {
		return respondError(c, err, "Failed to build share text")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Share text built successfully", share)
}

// VehicleTypes handles GET /vehicle-types
func (h *DriverHandler) VehicleTypes(c echo.Context) error {
	return utils.SuccessResponse(c, http.StatusOK, "Vehicle types retrieved successfully", models.VehicleTypes)
}

// Me handles GET /drivers/me
func (h *DriverHandler) Me(c echo.Context) error {
	driver, err := h.driverUC.GetDriver(c.Request().Context(), middleware.DriverID(c))
	if err != nil {
		return respondError(c, err, "Failed to retrieve profile")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", driver)
}

// SetStatus handles PUT /drivers/me/status
func (h *DriverHandler) SetStatus(c echo.Context) error {
	var req models.StatusRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	driver, err := h.driverUC.SetStatus(c.Request().Context(), middleware.DriverID(c), req.IsOnline)
	if err != nil {
		return respondError(c, err, "Failed to update status")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Status updated successfully", driver)
}

// viewerFromQuery reads the viewer's one-shot position. Missing or invalid
// coordinates mean the position is unavailable.
func viewerFromQuery(c echo.Context) *models.Coordinates {
	latRaw, lngRaw := c.QueryParam("lat"), c.QueryParam("lng")
	if latRaw == "" || lngRaw == "" {
		return nil
	}
	lat, errLat := strconv.ParseFloat(latRaw, 64)
	lng, errLng := strconv.ParseFloat(lngRaw, 64)
	if errLat != nil || errLng != nil {
		return nil
	}
	coords := models.Coordinates{Latitude: lat, Longitude: lng}
	if !coords.Valid() {
		return nil
	}
	return &coords
}
