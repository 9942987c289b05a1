package usecase

import (
	"context"
	"fmt"

	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/internal/utils"
)

const (
	shareTitle          = "بيانات السائق: %s"
	shareText           = "مرحباً، أود مشاركة معلومات هذا السائق معك:\n\nالاسم: %s\nالهاتف: %s\nنوع المركبة: %s\nصورة السائق: %s\n\nموقعي الحالي (وقت إرسال هذه الرسالة): %s"
	sharePhotoMissing   = "غير متوفرة"
	shareViewerNotKnown = "غير متوفر"
)

// GetContact returns the call and WhatsApp links of a driver
func (uc *DriverUC) GetContact(ctx context.Context, id string) (*models.DriverContact, error) {
	driver, err := uc.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.DriverContact{
		Phone:       driver.Phone,
		CallURL:     utils.CallURL(driver.Phone),
		WhatsAppURL: utils.WhatsAppURL(driver.Phone, fmt.Sprintf(utils.WhatsAppGreeting, driver.Name)),
	}, nil
}

// GetShare builds the message a viewer shares about a driver. The viewer's
// position is linked when known.
func (uc *DriverUC) GetShare(ctx context.Context, id string, viewer *models.Coordinates) (*models.DriverShare, error) {
	driver, err := uc.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}

	photo := sharePhotoMissing
	if driver.PhotoURL != nil && *driver.PhotoURL != "" {
		photo = *driver.PhotoURL
	}

	location := shareViewerNotKnown
	if viewer != nil && viewer.Valid() {
		location = utils.GoogleMapsURL(viewer.Latitude, viewer.Longitude)
	}

	text := fmt.Sprintf(shareText, driver.Name, driver.Phone, driver.VehicleType.Label(), photo, location)
	return &models.DriverShare{
		Title:       fmt.Sprintf(shareTitle, driver.Name),
		Text:        text,
		WhatsAppURL: utils.WhatsAppURL("", text),
	}, nil
}
