package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mashaweer/mashaweer/internal/pkg/constants"
	"github.com/mashaweer/mashaweer/internal/pkg/jwt"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/internal/utils"
	"github.com/mashaweer/mashaweer/services/drivers/registration"
)

// GetRegistration returns the session's flow, starting a new one if none is stored
func (uc *DriverUC) GetRegistration(ctx context.Context, sessionID string) (*models.RegistrationResponse, error) {
	flow, err := uc.loadFlow(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &models.RegistrationResponse{State: flow.Snapshot()}, nil
}

// SubmitIdentity records name and phone and sends the passcode
func (uc *DriverUC) SubmitIdentity(ctx context.Context, sessionID string, req *models.IdentityRequest) (*models.RegistrationResponse, error) {
	return uc.step(ctx, sessionID, func(flow *registration.Flow) (*models.RegistrationOutcome, error) {
		return nil, flow.SubmitIdentity(ctx, req.Name, req.Phone)
	})
}

// SubmitOTP verifies the passcode, completing the flow as a login for known phones
func (uc *DriverUC) SubmitOTP(ctx context.Context, sessionID string, req *models.OTPRequest) (*models.RegistrationResponse, error) {
	return uc.step(ctx, sessionID, func(flow *registration.Flow) (*models.RegistrationOutcome, error) {
		return flow.SubmitOTP(ctx, req.Code)
	})
}

// RegistrationBack returns from the passcode stage to the identity stage
func (uc *DriverUC) RegistrationBack(ctx context.Context, sessionID string) (*models.RegistrationResponse, error) {
	return uc.step(ctx, sessionID, func(flow *registration.Flow) (*models.RegistrationOutcome, error) {
		return nil, flow.Back()
	})
}

// SubmitVehicle finishes a registration or an edit
func (uc *DriverUC) SubmitVehicle(ctx context.Context, sessionID string, req *models.VehicleRequest) (*models.RegistrationResponse, error) {
	return uc.step(ctx, sessionID, func(flow *registration.Flow) (*models.RegistrationOutcome, error) {
		if flow.Mode() == models.ModeEdit && req.Name != "" {
			if err := flow.SubmitIdentity(ctx, req.Name, ""); err != nil {
				return nil, err
			}
		}
		return flow.SubmitVehicle(ctx, req.VehicleType, req.Photo)
	})
}

// StartEdit replaces the session's flow with an edit of the driver's profile
func (uc *DriverUC) StartEdit(ctx context.Context, sessionID, driverID string) (*models.RegistrationResponse, error) {
	driver, err := uc.GetDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	release, err := uc.flowRepo.LockFlow(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	flow := registration.NewEdit(uc.flowDeps(), driver)
	return uc.advance(ctx, sessionID, flow, nil)
}

// step runs one transition on the session's flow while holding its lock, so
// concurrent requests for a session never start from the same snapshot
func (uc *DriverUC) step(ctx context.Context, sessionID string, transition func(*registration.Flow) (*models.RegistrationOutcome, error)) (*models.RegistrationResponse, error) {
	release, err := uc.flowRepo.LockFlow(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	flow, err := uc.loadFlow(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	outcome, err := transition(flow)
	if err != nil {
		return nil, err
	}
	return uc.advance(ctx, sessionID, flow, outcome)
}

func (uc *DriverUC) loadFlow(ctx context.Context, sessionID string) (*registration.Flow, error) {
	snapshot, err := uc.flowRepo.GetFlow(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return registration.New(uc.flowDeps()), nil
	}

	flow, err := registration.Restore(uc.flowDeps(), *snapshot)
	if err != nil {
		logger.WarnCtx(ctx, "Discarding unreadable registration flow",
			logger.String("session_id", sessionID),
			logger.ErrorField(err))
		return registration.New(uc.flowDeps()), nil
	}
	return flow, nil
}

// advance persists the flow after a successful transition. A finished flow is
// dropped and the driver is signed in on the session.
func (uc *DriverUC) advance(ctx context.Context, sessionID string, flow *registration.Flow, outcome *models.RegistrationOutcome) (*models.RegistrationResponse, error) {
	snapshot := flow.Snapshot()
	resp := &models.RegistrationResponse{State: snapshot, Message: flow.Notice()}

	if flow.Stage() != models.StageDone {
		if err := uc.flowRepo.SaveFlow(ctx, sessionID, &snapshot); err != nil {
			return nil, err
		}
		return resp, nil
	}

	if err := uc.flowRepo.DeleteFlow(ctx, sessionID); err != nil {
		logger.WarnCtx(ctx, "Failed to delete finished registration flow",
			logger.String("session_id", sessionID),
			logger.ErrorField(err))
	}
	if outcome == nil || outcome.Driver == nil {
		return resp, nil
	}

	auth, err := uc.signIn(ctx, sessionID, outcome)
	if err != nil {
		return nil, err
	}
	resp.Auth = auth

	if outcome.Driver.IsOnline {
		if _, err := uc.reporters.Sync(ctx, outcome.Driver.ID, true); err != nil {
			logger.WarnCtx(ctx, "Failed to start location reporting",
				logger.String("driver_id", outcome.Driver.ID),
				logger.ErrorField(err))
		}
	}
	return resp, nil
}

func (uc *DriverUC) signIn(ctx context.Context, sessionID string, outcome *models.RegistrationOutcome) (*models.AuthResponse, error) {
	driverID, err := uuid.Parse(outcome.Driver.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid driver id %q: %w", outcome.Driver.ID, err)
	}

	token, expiresAt, err := jwt.GenerateToken(driverID, outcome.Driver.Phone, constants.RoleDriver, uc.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	session, err := uc.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.DriverPhone = outcome.Driver.Phone
	if err := uc.saveSession(ctx, session); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Driver signed in",
		logger.String("driver_id", outcome.Driver.ID),
		logger.String("phone", utils.MaskPhoneNumber(outcome.Driver.Phone)),
		logger.Bool("login", outcome.Login))

	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Login:     outcome.Login,
		Driver:    outcome.Driver,
	}, nil
}
