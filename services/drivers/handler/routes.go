package handler

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/mashaweer/mashaweer/internal/pkg/middleware"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/services/drivers/handler/http"
	"github.com/mashaweer/mashaweer/services/drivers/handler/websocket"
)

// OTP endpoints reach a paid side channel, so each client IP gets a small budget
const (
	otpRateLimit  = 5
	otpRatePeriod = time.Minute
)

// Handler coordinates all protocol handlers for the drivers service
type Handler struct {
	driverHandler       *http.DriverHandler
	registrationHandler *http.RegistrationHandler
	sessionHandler      *http.SessionHandler
	locationWSHandler   *websocket.LocationHandler
	mapWSHandler        *websocket.MapHandler
	redisClient         *redis.Client
	cfg                 *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(
	driverHandler *http.DriverHandler,
	registrationHandler *http.RegistrationHandler,
	sessionHandler *http.SessionHandler,
	locationWSHandler *websocket.LocationHandler,
	mapWSHandler *websocket.MapHandler,
	redisClient *redis.Client,
	cfg *models.Config,
) *Handler {
	return &Handler{
		driverHandler:       driverHandler,
		registrationHandler: registrationHandler,
		sessionHandler:      sessionHandler,
		locationWSHandler:   locationWSHandler,
		mapWSHandler:        mapWSHandler,
		redisClient:         redisClient,
		cfg:                 cfg,
	}
}

// RegisterRoutes registers all protocol handlers and their routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	jwtMiddleware := middleware.JWTAuthMiddleware(h.cfg.JWT)

	// Public directory
	e.GET("/vehicle-types", h.driverHandler.VehicleTypes)
	driverGroup := e.Group("/drivers")
	driverGroup.GET("", h.driverHandler.ListDrivers)
	driverGroup.GET("/:id", h.driverHandler.GetDriver)
	driverGroup.GET("/:id/contact", h.driverHandler.GetContact)
	driverGroup.GET("/:id/share", h.driverHandler.GetShare)

	// The logged-in driver
	meGroup := e.Group("/drivers/me", jwtMiddleware)
	meGroup.GET("", h.driverHandler.Me)
	meGroup.PUT("/status", h.driverHandler.SetStatus)
	meGroup.POST("/edit", h.registrationHandler.StartEdit)

	// Registration flow, keyed by the device session
	registrationGroup := e.Group("/registration")
	registrationGroup.GET("", h.registrationHandler.Get)
	registrationGroup.POST("/identity", h.registrationHandler.SubmitIdentity, h.otpLimiter()...)
	registrationGroup.POST("/otp", h.registrationHandler.SubmitOTP, h.otpLimiter()...)
	registrationGroup.POST("/back", h.registrationHandler.Back)
	registrationGroup.POST("/vehicle", h.registrationHandler.SubmitVehicle)

	sessionGroup := e.Group("/session")
	sessionGroup.GET("", h.sessionHandler.Get)
	sessionGroup.POST("/intro", h.sessionHandler.MarkIntroViewed)
	sessionGroup.POST("/logout", h.sessionHandler.Logout)

	// WebSocket routes
	wsGroup := e.Group("/ws")
	wsGroup.GET("/drivers/location", h.locationWSHandler.HandleLocation, jwtMiddleware)
	wsGroup.GET("/map", h.mapWSHandler.HandleMap)
}

func (h *Handler) otpLimiter() []echo.MiddlewareFunc {
	if h.redisClient == nil {
		return nil
	}
	return []echo.MiddlewareFunc{middleware.IPRateLimiter("otp", otpRateLimit, otpRatePeriod, h.redisClient)}
}
