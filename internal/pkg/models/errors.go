package models

import "errors"

var (
	ErrDriverNotFound         = errors.New("driver not found")
	ErrPhoneAlreadyRegistered = errors.New("هذا الرقم مسجل بالفعل لدينا.")
	ErrPhotoExists            = errors.New("ملف بنفس الإسم موجود بالفعل. حاول تغيير اسم الملف أو الرفع مرة أخرى.")
	ErrFetchFailed            = errors.New("حدث خطأ أثناء جلب بيانات السائقين. حاول مرة أخرى.")
	ErrLocationUnavailable    = errors.New("location unavailable")
	ErrLocationUnsupported    = errors.New("تحديد الموقع غير مدعوم")
	ErrSessionNotFound        = errors.New("session not found")
	ErrInvalidLocation        = errors.New("invalid location coordinates")
	ErrInvalidDriverID        = errors.New("invalid driver_id")
	ErrPlaceNotFound          = errors.New("place not found")
	ErrSearchUnavailable      = errors.New("place search is not configured")
	ErrFlowBusy               = errors.New("registration step already in progress")
)
