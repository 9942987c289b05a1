// Package registration is the driver sign-up, login and profile edit flow.
//
// A Flow moves through CollectIdentity, VerifyOTP and CollectVehicleAndPhoto to
// Done. Edit mode starts at CollectVehicleAndPhoto and never touches the OTP
// side channel. Every transition runs its side effects in order and only
// advances once they succeed; failures leave the stage unchanged.
package registration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/internal/utils"
)

// Stage aliases keep call sites in this package short
const (
	StageCollectIdentity        = models.StageCollectIdentity
	StageVerifyOTP              = models.StageVerifyOTP
	StageCollectVehicleAndPhoto = models.StageCollectVehicleAndPhoto
	StageDone                   = models.StageDone
)

// PhotoPrefix is the folder driver photos are uploaded to
const PhotoPrefix = "public/"

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// User facing messages
const (
	msgIdentityRequired = "الرجاء إدخال الاسم ورقم الهاتف."
	msgInvalidPhone     = "رقم الهاتف المصري غير صالح. يجب أن يبدأ بـ 01 ويتكون من 11 رقمًا أو يكون 10 أرقام أرضي."
	msgInvalidOTP       = "رمز التوثيق يجب أن يتكون من 6 أرقام."
	msgVehicleRequired  = "الرجاء اختيار نوع المركبة وتحميل صورة شخصية."
	msgSendFailed       = "حدث خطأ أثناء إرسال الرمز."
	msgSendDeclined     = "فشل إرسال رمز التوثيق."
	msgVerifyFailed     = "حدث خطأ أثناء التحقق."
	msgVerifyDeclined   = "رمز التوثيق غير صحيح أو منتهي الصلاحية. الرجاء التأكد من الرمز والمحاولة مرة أخرى."
	msgUploadFailed     = "لم يتم رفع الصورة."
	msgSaveFailed       = "لم نتمكن من حفظ بياناتك."
	msgUpdateFailed     = "لم نتمكن من تحديث بياناتك."
)

// OTPSender is the passcode side channel
type OTPSender interface {
	Send(ctx context.Context, phone, name string) (*models.OTPResult, error)
	Verify(ctx context.Context, phone, code string) (*models.OTPResult, error)
}

// PhotoUploader is the object storage for profile photos
type PhotoUploader interface {
	Upload(ctx context.Context, path, contentType string, body io.Reader, upsert bool) error
	PublicURL(path string) string
}

// DriverStore is the part of the driver repository the flow writes through
type DriverStore interface {
	GetByPhone(ctx context.Context, phone string) (*models.Driver, error)
	Create(ctx context.Context, payload *models.DriverPayload) (*models.Driver, error)
	Update(ctx context.Context, id string, payload *models.DriverPayload) (*models.Driver, error)
}

// Deps are the collaborators of a flow
type Deps struct {
	OTP     OTPSender
	Photos  PhotoUploader
	Drivers DriverStore
	Now     func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return models.Now()
}

// Flow is one registration or edit in progress
type Flow struct {
	deps  Deps
	stage models.RegistrationStage
	mode  models.RegistrationMode
	draft models.RegistrationDraft

	// notice is the side channel's last success message, shown to the user
	notice string
}

// New starts a registration at CollectIdentity
func New(deps Deps) *Flow {
	return &Flow{deps: deps, stage: StageCollectIdentity, mode: models.ModeRegister}
}

// NewEdit starts an edit of an existing driver at CollectVehicleAndPhoto
func NewEdit(deps Deps, existing *models.Driver) *Flow {
	return &Flow{
		deps:  deps,
		stage: StageCollectVehicleAndPhoto,
		mode:  models.ModeEdit,
		draft: models.RegistrationDraft{
			Name:        existing.Name,
			Phone:       existing.Phone,
			VehicleType: existing.VehicleType,
			PhotoURL:    existing.PhotoURL,
			DriverID:    existing.ID,
		},
	}
}

// Restore rebuilds a flow from a snapshot
func Restore(deps Deps, snapshot models.RegistrationSnapshot) (*Flow, error) {
	switch snapshot.Mode {
	case models.ModeRegister:
	case models.ModeEdit:
		if snapshot.Draft.DriverID == "" {
			return nil, fmt.Errorf("edit snapshot without driver id")
		}
	default:
		return nil, fmt.Errorf("unknown registration mode %q", snapshot.Mode)
	}

	switch snapshot.Stage {
	case StageCollectIdentity, StageVerifyOTP, StageCollectVehicleAndPhoto, StageDone:
	default:
		return nil, fmt.Errorf("unknown registration stage %q", snapshot.Stage)
	}

	return &Flow{deps: deps, stage: snapshot.Stage, mode: snapshot.Mode, draft: snapshot.Draft}, nil
}

// Snapshot captures the resumable state of the flow
func (f *Flow) Snapshot() models.RegistrationSnapshot {
	return models.RegistrationSnapshot{Stage: f.stage, Mode: f.mode, Draft: f.draft}
}

func (f *Flow) Stage() models.RegistrationStage { return f.stage }

func (f *Flow) Mode() models.RegistrationMode { return f.mode }

// Notice returns the message of the last successful side channel call
func (f *Flow) Notice() string { return f.notice }

func (f *Flow) expect(stage models.RegistrationStage) error {
	if f.stage != stage {
		return fmt.Errorf("%w: at %s", ErrWrongStage, f.stage)
	}
	return nil
}

// SubmitIdentity validates name and phone and sends a passcode.
// In edit mode it only records the name and moves to the vehicle stage.
func (f *Flow) SubmitIdentity(ctx context.Context, name, phone string) error {
	if f.mode == models.ModeEdit {
		if f.stage == StageDone {
			return fmt.Errorf("%w: at %s", ErrWrongStage, f.stage)
		}
		if strings.TrimSpace(name) != "" {
			f.draft.Name = strings.TrimSpace(name)
		}
		f.stage = StageCollectVehicleAndPhoto
		return nil
	}
	if err := f.expect(StageCollectIdentity); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return invalid("name", msgIdentityRequired)
	}
	if !utils.ValidatePhone(phone) {
		return invalid("phone", msgInvalidPhone)
	}

	f.draft.Name = name
	f.draft.Phone = phone

	res, err := f.deps.OTP.Send(ctx, phone, name)
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to send OTP",
			logger.String("phone", utils.MaskPhoneNumber(phone)),
			logger.ErrorField(err))
		return sideEffect("send otp", msgSendFailed, err)
	}
	if !res.OK() {
		return declined("send otp", messageOf(res), msgSendDeclined)
	}

	f.notice = res.Message
	f.stage = StageVerifyOTP
	return nil
}

// SubmitOTP verifies the passcode. A phone that already belongs to a driver
// completes the flow as a login; an unknown phone moves on to the vehicle stage.
func (f *Flow) SubmitOTP(ctx context.Context, code string) (*models.RegistrationOutcome, error) {
	if err := f.expect(StageVerifyOTP); err != nil {
		return nil, err
	}

	code = strings.TrimSpace(code)
	if !otpPattern.MatchString(code) {
		return nil, invalid("code", msgInvalidOTP)
	}

	res, err := f.deps.OTP.Verify(ctx, f.draft.Phone, code)
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to verify OTP",
			logger.String("phone", utils.MaskPhoneNumber(f.draft.Phone)),
			logger.ErrorField(err))
		return nil, sideEffect("verify otp", msgVerifyFailed, err)
	}
	if !res.OK() {
		return nil, declined("verify otp", messageOf(res), msgVerifyDeclined)
	}

	driver, err := f.deps.Drivers.GetByPhone(ctx, f.draft.Phone)
	switch {
	case err == nil:
		f.stage = StageDone
		return &models.RegistrationOutcome{Driver: driver, Phone: f.draft.Phone, Login: true}, nil
	case errors.Is(err, models.ErrDriverNotFound):
		f.notice = res.Message
		f.stage = StageCollectVehicleAndPhoto
		return nil, nil
	default:
		return nil, sideEffect("lookup driver", msgVerifyFailed, err)
	}
}

// Back returns from the passcode stage to the identity stage
func (f *Flow) Back() error {
	if err := f.expect(StageVerifyOTP); err != nil {
		return err
	}
	f.stage = StageCollectIdentity
	return nil
}

// SubmitVehicle uploads the photo if one was chosen and inserts or updates the
// driver. New registrations go online immediately.
func (f *Flow) SubmitVehicle(ctx context.Context, vehicleType models.VehicleType, photo *models.PhotoUpload) (*models.RegistrationOutcome, error) {
	if err := f.expect(StageCollectVehicleAndPhoto); err != nil {
		return nil, err
	}

	hasPhoto := photo != nil && len(photo.Data) > 0
	retained := f.mode == models.ModeEdit && f.draft.PhotoURL != nil && *f.draft.PhotoURL != ""
	if !vehicleType.Valid() || (!hasPhoto && !retained) {
		return nil, invalid("vehicle_type", msgVehicleRequired)
	}

	editing := f.mode == models.ModeEdit
	now := f.deps.now()
	photoURL := f.draft.PhotoURL

	if hasPhoto {
		path := PhotoPath(now, photo.FileName)
		err := f.deps.Photos.Upload(ctx, path, photo.ContentType, bytes.NewReader(photo.Data), editing)
		if errors.Is(err, models.ErrPhotoExists) {
			return nil, &SideEffectError{Op: "upload photo", Message: models.ErrPhotoExists.Error(), Err: err}
		}
		if err != nil {
			logger.ErrorCtx(ctx, "Failed to upload driver photo",
				logger.String("path", path),
				logger.ErrorField(err))
			return nil, sideEffect("upload photo", msgUploadFailed, err)
		}
		url := f.deps.Photos.PublicURL(path)
		photoURL = &url
	}

	payload := &models.DriverPayload{
		Name:        f.draft.Name,
		Phone:       f.draft.Phone,
		VehicleType: vehicleType,
		PhotoURL:    photoURL,
		UpdatedAt:   now,
	}

	var (
		driver *models.Driver
		err    error
	)
	if editing {
		driver, err = f.deps.Drivers.Update(ctx, f.draft.DriverID, payload)
	} else {
		online := true
		payload.IsOnline = &online
		driver, err = f.deps.Drivers.Create(ctx, payload)
	}
	if err != nil {
		if !editing && errors.Is(err, models.ErrPhoneAlreadyRegistered) {
			return nil, &SideEffectError{Op: "save driver", Message: models.ErrPhoneAlreadyRegistered.Error(), Err: err}
		}
		fallback := msgSaveFailed
		if editing {
			fallback = msgUpdateFailed
		}
		return nil, sideEffect("save driver", fallback, err)
	}

	f.draft.VehicleType = vehicleType
	f.draft.PhotoURL = photoURL
	f.stage = StageDone
	return &models.RegistrationOutcome{Driver: driver, Phone: f.draft.Phone}, nil
}

// PhotoPath names an uploaded photo after the upload time and the sanitized file name
func PhotoPath(at time.Time, fileName string) string {
	return fmt.Sprintf("%s%d_%s", PhotoPrefix, at.UnixMilli(), utils.SanitizeFileName(fileName))
}

func messageOf(res *models.OTPResult) string {
	if res == nil {
		return ""
	}
	return res.Message
}
