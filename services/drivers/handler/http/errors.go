package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/middleware"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/internal/utils"
	"github.com/mashaweer/mashaweer/services/drivers/registration"
)

// respondError maps usecase errors onto HTTP statuses. Server side failures
// are also noticed on the request's New Relic transaction.
func respondError(c echo.Context, err error, fallback string) error {
	var (
		validation *registration.ValidationError
		sideEffect *registration.SideEffectError
	)

	switch {
	case errors.As(err, &validation):
		return utils.UnprocessableResponse(c, validation.Message)
	case errors.Is(err, registration.ErrWrongStage), errors.Is(err, models.ErrFlowBusy):
		return utils.ConflictResponse(c, err.Error())
	case errors.Is(err, models.ErrPhoneAlreadyRegistered), errors.Is(err, models.ErrPhotoExists):
		msg := err.Error()
		if errors.As(err, &sideEffect) {
			msg = sideEffect.Message
		}
		return utils.ConflictResponse(c, msg)
	case errors.As(err, &sideEffect):
		middleware.NoticeError(c, err)
		return utils.BadGatewayResponse(c, sideEffect.Message)
	case errors.Is(err, models.ErrDriverNotFound):
		return utils.NotFoundResponse(c, "Driver not found")
	case errors.Is(err, models.ErrInvalidDriverID):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, models.ErrFetchFailed):
		middleware.NoticeError(c, err)
		return utils.BadGatewayResponse(c, models.ErrFetchFailed.Error())
	}

	middleware.NoticeError(c, err)
	logger.ErrorCtx(c.Request().Context(), fallback,
		logger.String("path", c.Path()),
		logger.ErrorField(err))
	return utils.ErrorResponseHandler(c, http.StatusInternalServerError, fallback)
}
