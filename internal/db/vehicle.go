package db

import (
	"context"
	"fmt"

	"github.com/ukydev/showroom/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoVehicleCollection implements VehicleCollection for MongoDB.
type MongoVehicleCollection struct {
	Collection *mongo.Collection
}

// InsertVehicle inserts a vehicle and returns its new ID.
func (c *MongoVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error) {
	if c.Collection == nil {
		return "", ErrNilCollection
	}
	vehicle.ID = primitive.NewObjectID()
	if vehicle.Images == nil {
		vehicle.Images = []string{}
	}
	if _, err := c.Collection.InsertOne(ctx, vehicle); err != nil {
		return "", err
	}
	return vehicle.ID.Hex(), nil
}

// vehicleFilterDoc converts a VehicleFilter into a query document.
func vehicleFilterDoc(filter VehicleFilter) bson.M {
	doc := bson.M{}
	if filter.PinSlider != nil {
		doc["pinSlider"] = *filter.PinSlider
	}
	if filter.PinOutstanding != nil {
		doc["pinOutstanding"] = *filter.PinOutstanding
	}
	return doc
}

// FindVehicles returns every vehicle matching filter in storage order.
func (c *MongoVehicleCollection) FindVehicles(ctx context.Context, filter VehicleFilter) ([]models.Vehicle, error) {
	if c.Collection == nil {
		return nil, ErrNilCollection
	}
	cursor, err := c.Collection.Find(ctx, vehicleFilterDoc(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	vehicles := []models.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	for i := range vehicles {
		if vehicles[i].Images == nil {
			vehicles[i].Images = []string{}
		}
	}
	return vehicles, nil
}

// FindVehicleByID returns the vehicle, or nil when the ID is malformed or unknown.
func (c *MongoVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	if c.Collection == nil {
		return nil, ErrNilCollection
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var vehicle models.Vehicle
	found, err := getDocument(ctx, c.Collection, objectID, &vehicle)
	if err != nil || !found {
		return nil, err
	}
	if vehicle.Images == nil {
		vehicle.Images = []string{}
	}
	return &vehicle, nil
}

// MergeVehicle merge-writes the vehicle fields onto the stored record.
func (c *MongoVehicleCollection) MergeVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	if c.Collection == nil {
		return ErrNilCollection
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}
	if vehicle.Images == nil {
		vehicle.Images = []string{}
	}
	set, err := toSetDoc(vehicle)
	if err != nil {
		return err
	}
	return mergeDocument(ctx, c.Collection, objectID, set)
}

// DeleteVehicle deletes a vehicle by its ID. Deleting an unknown ID is not an error.
func (c *MongoVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
	if c.Collection == nil {
		return ErrNilCollection
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}
	_, err = c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
