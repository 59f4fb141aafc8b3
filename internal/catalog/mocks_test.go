package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/ukydev/showroom/internal/db"
	"github.com/ukydev/showroom/internal/media"
	"github.com/ukydev/showroom/internal/models"
)

// MockVehicleCollection is a mock implementation of db.VehicleCollection
type MockVehicleCollection struct {
	mock.Mock
}

func (m *MockVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error) {
	args := m.Called(ctx, vehicle)
	return args.String(0), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicles(ctx context.Context, filter db.VehicleFilter) ([]models.Vehicle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) MergeVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	args := m.Called(ctx, id, vehicle)
	return args.Error(0)
}

func (m *MockVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUploader is a mock implementation of media.Uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, req media.UploadRequest) (media.UploadResult, error) {
	args := m.Called(ctx, req.Filename, req.Folder, req.ResourceType)
	return args.Get(0).(media.UploadResult), args.Error(1)
}

func (m *MockUploader) Delete(ctx context.Context, publicID string, resourceType media.ResourceType) (media.DeleteResult, error) {
	args := m.Called(ctx, publicID, resourceType)
	return args.Get(0).(media.DeleteResult), args.Error(1)
}
