package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleDetails holds the free-text specification strings shown on a model page.
type VehicleDetails struct {
	Battery string `json:"battery" bson:"battery" yaml:"battery"`
	Power   string `json:"power" bson:"power" yaml:"power"`
	Range   string `json:"range" bson:"range" yaml:"range"`
	Seats   string `json:"seats" bson:"seats" yaml:"seats"`
	Size    string `json:"size" bson:"size" yaml:"size"`
	Style   string `json:"style" bson:"style" yaml:"style"`
	Torque  string `json:"torque" bson:"torque" yaml:"torque"`
}

// Vehicle is a car model listed on the site.
type Vehicle struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty" yaml:"-"`
	Name           string             `json:"name" bson:"name" yaml:"name"`
	Description    string             `json:"description" bson:"description" yaml:"description"`
	Price          string             `json:"price" bson:"price" yaml:"price"`
	Type           string             `json:"type" bson:"type" yaml:"type"`
	Images         []string           `json:"images" bson:"images" yaml:"images"`
	PinOutstanding bool               `json:"pinOutstanding" bson:"pinOutstanding" yaml:"pinOutstanding"`
	PinSlider      bool               `json:"pinSlider" bson:"pinSlider" yaml:"pinSlider"`
	Details        VehicleDetails     `json:"details" bson:"details" yaml:"details"`
}

// IDHex returns the store identifier as a hex string, or "" for unsaved vehicles.
func (v Vehicle) IDHex() string {
	if v.ID.IsZero() {
		return ""
	}
	return v.ID.Hex()
}

// CoverImage returns the first image URL, if any.
func (v Vehicle) CoverImage() string {
	if len(v.Images) == 0 {
		return ""
	}
	return v.Images[0]
}

// SpecRow is one labelled entry of VehicleDetails.
type SpecRow struct {
	Label string
	Value string
}

// Specs lists the non-empty details in display order.
func (d VehicleDetails) Specs() []SpecRow {
	rows := []SpecRow{
		{"Battery", d.Battery},
		{"Power", d.Power},
		{"Range", d.Range},
		{"Seats", d.Seats},
		{"Size", d.Size},
		{"Style", d.Style},
		{"Torque", d.Torque},
	}
	out := rows[:0]
	for _, r := range rows {
		if r.Value != "" {
			out = append(out, r)
		}
	}
	return out
}
