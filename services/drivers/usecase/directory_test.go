package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

func TestFetchOnlineDrivers(t *testing.T) {
	tests := []struct {
		name       string
		mockSetup  func(m *ucMocks)
		assertFunc func(t *testing.T, list []models.Driver, err error)
	}{
		{
			name: "drops records that are not listable",
			mockSetup: func(m *ucMocks) {
				missing := onlineDriver("d2", "No Coordinates", 0, 0)
				missing.Latitude = nil
				m.driverRepo.EXPECT().ListOnline(gomock.Any(), 50).Return([]models.Driver{
					onlineDriver("d1", "Ahmed", 30.04, 31.23),
					missing,
				}, nil)
			},
			assertFunc: func(t *testing.T, list []models.Driver, err error) {
				require.NoError(t, err)
				require.Len(t, list, 1)
				assert.Equal(t, "d1", list[0].ID)
			},
		},
		{
			name: "store failure yields empty list and fetch failed",
			mockSetup: func(m *ucMocks) {
				m.driverRepo.EXPECT().ListOnline(gomock.Any(), 50).Return(nil, errors.New("connection refused"))
			},
			assertFunc: func(t *testing.T, list []models.Driver, err error) {
				assert.ErrorIs(t, err, models.ErrFetchFailed)
				assert.NotNil(t, list)
				assert.Empty(t, list)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			uc, m := newTestUC(t)
			tt.mockSetup(m)

			// Act
			list, err := uc.FetchOnlineDrivers(context.Background())

			// Assert
			tt.assertFunc(t, list, err)
		})
	}
}

func TestListDrivers(t *testing.T) {
	cairo := onlineDriver("near", "Ahmed", 30.0444, 31.2357)
	giza := onlineDriver("far", "Amr", 30.0131, 31.2089)
	scooter := onlineDriver("scooter", "Ahmed Scooter", 30.0450, 31.2360)
	scooter.VehicleType = models.VehicleScooter

	tests := []struct {
		name       string
		query      *models.DirectoryQuery
		assertFunc func(t *testing.T, result *models.DirectoryResult)
	}{
		{
			name:  "ranks by distance from viewer",
			query: &models.DirectoryQuery{Viewer: &models.Coordinates{Latitude: 30.0131, Longitude: 31.2089}},
			assertFunc: func(t *testing.T, result *models.DirectoryResult) {
				assert.True(t, result.ViewerLocated)
				require.Len(t, result.Drivers, 3)
				assert.Equal(t, "far", result.Drivers[0].ID)
				assert.NotNil(t, result.Drivers[0].DistanceMeters)
				assert.NotEqual(t, "الموقع غير متاح", result.Drivers[0].DistanceText)
			},
		},
		{
			name:  "no viewer keeps fetch order",
			query: &models.DirectoryQuery{},
			assertFunc: func(t *testing.T, result *models.DirectoryResult) {
				assert.False(t, result.ViewerLocated)
				require.Len(t, result.Drivers, 3)
				assert.Equal(t, "near", result.Drivers[0].ID)
				assert.Nil(t, result.Drivers[0].DistanceMeters)
				assert.Equal(t, "الموقع غير متاح", result.Drivers[0].DistanceText)
			},
		},
		{
			name:  "filters by name and vehicle type",
			query: &models.DirectoryQuery{Search: "ahmed", VehicleType: models.VehicleScooter},
			assertFunc: func(t *testing.T, result *models.DirectoryResult) {
				require.Len(t, result.Drivers, 1)
				assert.Equal(t, "scooter", result.Drivers[0].ID)
			},
		},
		{
			name:  "invalid viewer coordinates count as unavailable",
			query: &models.DirectoryQuery{Viewer: &models.Coordinates{Latitude: 120, Longitude: 31}},
			assertFunc: func(t *testing.T, result *models.DirectoryResult) {
				assert.False(t, result.ViewerLocated)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			uc, m := newTestUC(t)
			m.driverRepo.EXPECT().ListOnline(gomock.Any(), 50).Return([]models.Driver{cairo, giza, scooter}, nil)

			// Act
			result, err := uc.ListDrivers(context.Background(), tt.query)

			// Assert
			require.NoError(t, err)
			tt.assertFunc(t, result)
		})
	}
}

func TestListDrivers_FetchFailure(t *testing.T) {
	uc, m := newTestUC(t)
	m.driverRepo.EXPECT().ListOnline(gomock.Any(), 50).Return(nil, errors.New("timeout"))

	result, err := uc.ListDrivers(context.Background(), &models.DirectoryQuery{})

	assert.ErrorIs(t, err, models.ErrFetchFailed)
	require.NotNil(t, result)
	assert.NotNil(t, result.Drivers)
	assert.Empty(t, result.Drivers)
}

func TestGetDriver(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		mockSetup func(m *ucMocks)
		wantErr   error
	}{
		{
			name: "found",
			id:   testDriverID,
			mockSetup: func(m *ucMocks) {
				m.driverRepo.EXPECT().GetByID(gomock.Any(), testDriverID).
					Return(&models.Driver{ID: testDriverID}, nil)
			},
		},
		{
			name: "missing",
			id:   testDriverID,
			mockSetup: func(m *ucMocks) {
				m.driverRepo.EXPECT().GetByID(gomock.Any(), testDriverID).Return(nil, models.ErrDriverNotFound)
			},
			wantErr: models.ErrDriverNotFound,
		},
		{name: "empty id", id: "", mockSetup: func(m *ucMocks) {}, wantErr: models.ErrInvalidDriverID},
		{name: "malformed id never reaches the store", id: "not-a-uuid", mockSetup: func(m *ucMocks) {}, wantErr: models.ErrInvalidDriverID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			uc, m := newTestUC(t)
			tt.mockSetup(m)

			// Act
			driver, err := uc.GetDriver(context.Background(), tt.id)

			// Assert
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, driver)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, driver.ID)
		})
	}
}

func TestGetContact_MalformedID(t *testing.T) {
	uc, _ := newTestUC(t)

	_, err := uc.GetContact(context.Background(), "42")

	assert.ErrorIs(t, err, models.ErrInvalidDriverID)
}
