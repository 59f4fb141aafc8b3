package db

import (
	"context"

	"github.com/ukydev/showroom/internal/models"
)

// Collection and document names. Singleton documents live under a string _id.
const (
	VehiclesCollection = "allModels"

	HomeCollection    = "home"
	AboutCollection   = "about"
	ContactCollection = "contact"
	FooterCollection  = "footer"

	BannerDocument = "banner"
	DataDocument   = "data"
)

// VehicleFilter narrows a vehicle listing. Nil fields are not filtered on.
type VehicleFilter struct {
	PinSlider      *bool
	PinOutstanding *bool
}

// VehicleCollection defines the interface for vehicle data operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error)
	FindVehicles(ctx context.Context, filter VehicleFilter) ([]models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	MergeVehicle(ctx context.Context, id string, vehicle models.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error
}

// ContentCollection defines the interface for the singleton site documents.
// Getters return (nil, nil) when the document has never been written.
type ContentCollection interface {
	GetBanner(ctx context.Context) (*models.Banner, error)
	SaveBanner(ctx context.Context, banner models.Banner) error
	GetAbout(ctx context.Context) (*models.About, error)
	SaveAbout(ctx context.Context, about models.About) error
	GetContact(ctx context.Context) (*models.Contact, error)
	SaveContact(ctx context.Context, contact models.Contact) error
	GetFooter(ctx context.Context) (*models.Footer, error)
	SaveFooter(ctx context.Context, footer models.Footer) error
}
