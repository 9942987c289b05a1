package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mashaweer/mashaweer/internal/pkg/constants"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/internal/utils"
	"github.com/mashaweer/mashaweer/services/drivers"
)

// SessionHandler serves the per-device session
type SessionHandler struct {
	driverUC drivers.DriverUC
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(driverUC drivers.DriverUC) *SessionHandler {
	return &SessionHandler{
		driverUC: driverUC,
	}
}

// Get handles GET /session. A missing or unknown id starts a new session.
func (h *SessionHandler) Get(c echo.Context) error {
	session, err := h.driverUC.GetSession(c.Request().Context(), c.Request().Header.Get(constants.HeaderSessionID))
	if err != nil {
		return respondError(c, err, "Failed to load session")
	}
	return sessionResponse(c, session, "Session retrieved successfully")
}

// MarkIntroViewed handles POST /session/intro
func (h *SessionHandler) MarkIntroViewed(c echo.Context) error {
	sessionID, ok := requireSession(c)
	if !ok {
		return utils.BadRequestResponse(c, constants.HeaderSessionID+" header is required")
	}

	session, err := h.driverUC.MarkIntroViewed(c.Request().Context(), sessionID)
	if err != nil {
		return respondError(c, err, "Failed to update session")
	}
	return sessionResponse(c, session, "Intro marked as viewed")
}

// Logout handles POST /session/logout
func (h *SessionHandler) Logout(c echo.Context) error {
	sessionID, ok := requireSession(c)
	if !ok {
		return utils.BadRequestResponse(c, constants.HeaderSessionID+" header is required")
	}

	session, err := h.driverUC.Logout(c.Request().Context(), sessionID)
	if err != nil {
		return respondError(c, err, "Failed to log out")
	}
	return sessionResponse(c, session, "Logged out successfully")
}

func sessionResponse(c echo.Context, session *models.Session, message string) error {
	c.Response().Header().Set(constants.HeaderSessionID, session.ID)
	return utils.SuccessResponse(c, http.StatusOK, message, session)
}
