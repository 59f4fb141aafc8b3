package handlers

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"github.com/ukydev/showroom/internal/db"
	"github.com/ukydev/showroom/internal/mailer"
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

// MockContentCollection is a mock implementation of db.ContentCollection
type MockContentCollection struct {
	mock.Mock
}

func (m *MockContentCollection) GetBanner(ctx context.Context) (*models.Banner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Banner), args.Error(1)
}

func (m *MockContentCollection) SaveBanner(ctx context.Context, banner models.Banner) error {
	return m.Called(ctx, banner).Error(0)
}

func (m *MockContentCollection) GetAbout(ctx context.Context) (*models.About, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.About), args.Error(1)
}

func (m *MockContentCollection) SaveAbout(ctx context.Context, about models.About) error {
	return m.Called(ctx, about).Error(0)
}

func (m *MockContentCollection) GetContact(ctx context.Context) (*models.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

func (m *MockContentCollection) SaveContact(ctx context.Context, contact models.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *MockContentCollection) GetFooter(ctx context.Context) (*models.Footer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Footer), args.Error(1)
}

func (m *MockContentCollection) SaveFooter(ctx context.Context, footer models.Footer) error {
	return m.Called(ctx, footer).Error(0)
}

// MockUploader is a mock implementation of media.Uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, req media.UploadRequest) (media.UploadResult, error) {
	body, _ := io.ReadAll(req.File)
	args := m.Called(ctx, req.Filename, req.Folder, req.ResourceType, string(body))
	return args.Get(0).(media.UploadResult), args.Error(1)
}

func (m *MockUploader) Delete(ctx context.Context, publicID string, resourceType media.ResourceType) (media.DeleteResult, error) {
	args := m.Called(ctx, publicID, resourceType)
	return args.Get(0).(media.DeleteResult), args.Error(1)
}

// MockSender is a mock implementation of mailer.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg mailer.Message) error {
	return m.Called(ctx, msg).Error(0)
}
