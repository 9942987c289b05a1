package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

// GetSession loads a device session, creating it when the id is new or empty
func (uc *DriverUC) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID != "" {
		session, err := uc.sessionRepo.GetSession(ctx, sessionID)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, models.ErrSessionNotFound) {
			return nil, err
		}
	} else {
		sessionID = uuid.NewString()
	}

	session := &models.Session{ID: sessionID}
	if err := uc.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// MarkIntroViewed records that the device has seen the intro screens
func (uc *DriverUC) MarkIntroViewed(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := uc.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IntroViewed {
		return session, nil
	}
	session.IntroViewed = true
	if err := uc.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout detaches the driver from the session. An online driver is taken
// offline with a single write; the device reporter stops without writing.
func (uc *DriverUC) Logout(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := uc.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.LoggedIn() {
		return session, nil
	}

	driver, err := uc.driverRepo.GetByPhone(ctx, session.DriverPhone)
	switch {
	case errors.Is(err, models.ErrDriverNotFound):
	case err != nil:
		return nil, err
	default:
		uc.reporters.Forget(ctx, driver.ID)
		if driver.IsOnline {
			offline, err := uc.driverRepo.SetOnlineStatus(ctx, driver.ID, false, models.Now())
			if err != nil {
				return nil, err
			}
			uc.publishPresence(ctx, offline)
		}
	}

	session.DriverPhone = ""
	if err := uc.saveSession(ctx, session); err != nil {
		return nil, err
	}
	if err := uc.flowRepo.DeleteFlow(ctx, session.ID); err != nil {
		logger.WarnCtx(ctx, "Failed to delete registration flow on logout",
			logger.String("session_id", session.ID),
			logger.ErrorField(err))
	}
	return session, nil
}

func (uc *DriverUC) saveSession(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = models.Now()
	return uc.sessionRepo.SaveSession(ctx, session)
}
