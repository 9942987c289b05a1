package constants

// Driver location stream events
const (
	EventPosition = "position"
	EventWatch    = "watch"
	EventNotice   = "notice"
	EventError    = "error"
)

// Map surface commands sent to the client
const (
	CommandMarkerAdd    = "marker.add"
	CommandMarkerRemove = "marker.remove"
	CommandPopupOpen    = "popup.open"
	CommandPopupClose   = "popup.close"
	CommandCameraFlyTo  = "camera.fly_to"
	CommandLocate       = "locate"
)

// Map client events
const (
	EventMarkerClick   = "marker.click"
	EventPopupClosed   = "popup.closed"
	EventPositionError = "position.error"
	EventLocateDriver  = "locate.driver"
	EventLocateMe      = "locate.me"
	EventCameraMoved   = "camera.moved"
	EventPlaceSearch   = "place.search"
)

// WebSocket error codes
const (
	ErrorInvalidFormat   = "invalid_format"
	ErrorUnauthorized    = "unauthorized"
	ErrorInternalError   = "internal_error"
	ErrorInvalidLocation = "invalid_location"
	ErrorDriverNotFound  = "driver_not_found"
)
