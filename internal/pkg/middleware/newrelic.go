package middleware

import (
	"github.com/labstack/echo/v4"
	nr "github.com/mashaweer/mashaweer/internal/pkg/newrelic"
)

// AddAttribute adds a custom attribute to the current transaction
func AddAttribute(c echo.Context, key string, value interface{}) {
	nr.AddTransactionAttribute(nr.FromEchoContext(c), key, value)
}

// NoticeError reports an error to New Relic
func NoticeError(c echo.Context, err error) {
	nr.NoticeTransactionError(nr.FromEchoContext(c), err)
}

// SetDriverID sets the driver ID attribute for the current transaction
func SetDriverID(c echo.Context, driverID string) {
	AddAttribute(c, "driver.id", driverID)
}
