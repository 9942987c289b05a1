package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	nr "github.com/mashaweer/mashaweer/internal/pkg/newrelic"
)

const (
	driversTable  = "drivers"
	driverColumns = `id, name, phone, vehicle_type, photo_url, latitude, longitude, is_online, created_at, updated_at`

	// pgUniqueViolation is the Postgres SQLSTATE for a unique constraint violation
	pgUniqueViolation = "23505"
)

// ListOnline returns up to limit online drivers that have a position
func (r *DriverRepo) ListOnline(ctx context.Context, limit int) ([]models.Driver, error) {
	query := `
		SELECT ` + driverColumns + `
		FROM drivers
		WHERE is_online = true
			AND latitude IS NOT NULL
			AND longitude IS NOT NULL
		ORDER BY updated_at DESC
		LIMIT $1
	`

	drivers := []models.Driver{}
	err := nr.WithDatastoreSegment(ctx, driversTable, "SELECT", func() error {
		return r.db.SelectContext(ctx, &drivers, query, limit)
	})
	if err != nil {
		return []models.Driver{}, fmt.Errorf("failed to list online drivers: %w", err)
	}
	return drivers, nil
}

// GetByID retrieves a driver by id
func (r *DriverRepo) GetByID(ctx context.Context, id string) (*models.Driver, error) {
	return r.getDriverByField(ctx, "id", id)
}

// GetByPhone retrieves a driver by phone number
func (r *DriverRepo) GetByPhone(ctx context.Context, phone string) (*models.Driver, error) {
	return r.getDriverByField(ctx, "phone", phone)
}

// getDriverByField is a helper to get a driver by a unique column
func (r *DriverRepo) getDriverByField(ctx context.Context, field, value string) (*models.Driver, error) {
	query := fmt.Sprintf(`SELECT %s FROM drivers WHERE %s = $1`, driverColumns, field)

	var driver models.Driver
	err := nr.WithDatastoreSegment(ctx, driversTable, "SELECT", func() error {
		return r.db.GetContext(ctx, &driver, query, value)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return &driver, nil
}

// Create inserts a new driver and returns the stored row
func (r *DriverRepo) Create(ctx context.Context, payload *models.DriverPayload) (*models.Driver, error) {
	query := `
		INSERT INTO drivers (id, name, phone, vehicle_type, photo_url, is_online, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + driverColumns

	online := payload.IsOnline != nil && *payload.IsOnline
	updatedAt := payload.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = models.Now()
	}

	var driver models.Driver
	err := nr.WithDatastoreSegment(ctx, driversTable, "INSERT", func() error {
		return r.db.QueryRowxContext(ctx, query,
			uuid.New(),
			payload.Name,
			payload.Phone,
			payload.VehicleType,
			payload.PhotoURL,
			online,
			updatedAt,
			updatedAt,
		).StructScan(&driver)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to insert driver: %w", models.ErrPhoneAlreadyRegistered)
		}
		return nil, fmt.Errorf("failed to insert driver: %w", err)
	}
	return &driver, nil
}

// Update overwrites the profile fields of a driver and returns the stored row
func (r *DriverRepo) Update(ctx context.Context, id string, payload *models.DriverPayload) (*models.Driver, error) {
	query := `
		UPDATE drivers
		SET name = $2, phone = $3, vehicle_type = $4, photo_url = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + driverColumns

	var driver models.Driver
	err := nr.WithDatastoreSegment(ctx, driversTable, "UPDATE", func() error {
		return r.db.QueryRowxContext(ctx, query,
			id,
			payload.Name,
			payload.Phone,
			payload.VehicleType,
			payload.PhotoURL,
			payload.UpdatedAt,
		).StructScan(&driver)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrDriverNotFound
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to update driver: %w", models.ErrPhoneAlreadyRegistered)
		}
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}
	return &driver, nil
}

// UpdateLocation stores a reported position
func (r *DriverRepo) UpdateLocation(ctx context.Context, id string, lat, lng float64, at time.Time) error {
	query := `
		UPDATE drivers
		SET latitude = $2, longitude = $3, updated_at = $4
		WHERE id = $1
	`

	var result sql.Result
	err := nr.WithDatastoreSegment(ctx, driversTable, "UPDATE", func() error {
		var err error
		result, err = r.db.ExecContext(ctx, query, id, lat, lng, at)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update driver location: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return models.ErrDriverNotFound
	}
	return nil
}

// SetOnlineStatus flips is_online. Going offline also clears the position
// in the same statement.
func (r *DriverRepo) SetOnlineStatus(ctx context.Context, id string, online bool, at time.Time) (*models.Driver, error) {
	query := `
		UPDATE drivers
		SET is_online = true, updated_at = $2
		WHERE id = $1
		RETURNING ` + driverColumns
	if !online {
		query = `
		UPDATE drivers
		SET is_online = false, latitude = NULL, longitude = NULL, updated_at = $2
		WHERE id = $1
		RETURNING ` + driverColumns
	}

	var driver models.Driver
	err := nr.WithDatastoreSegment(ctx, driversTable, "UPDATE", func() error {
		return r.db.QueryRowxContext(ctx, query, id, at).StructScan(&driver)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to update driver status: %w", err)
	}
	return &driver, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint failure
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
