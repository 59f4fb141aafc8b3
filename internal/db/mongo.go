package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNilCollection is returned when an accessor is used without a backing collection.
var ErrNilCollection = errors.New("mongo collection is nil")

// ConnectMongo connects to MongoDB and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Store groups the accessors backed by one database.
type Store struct {
	Vehicles *MongoVehicleCollection
	Content  *MongoContentCollection
}

// NewStore builds the accessors for the named database.
func NewStore(client *mongo.Client, dbName string) *Store {
	database := client.Database(dbName)
	return &Store{
		Vehicles: &MongoVehicleCollection{Collection: database.Collection(VehiclesCollection)},
		Content:  &MongoContentCollection{Database: database},
	}
}

// getDocument decodes the document with the given _id into out.
// It reports false without error when the document does not exist.
func getDocument(ctx context.Context, coll *mongo.Collection, id interface{}, out interface{}) (bool, error) {
	if coll == nil {
		return false, ErrNilCollection
	}
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// mergeDocument upserts the document with the given _id. Fields in set
// overwrite stored values; stored fields not named in set are left alone.
func mergeDocument(ctx context.Context, coll *mongo.Collection, id interface{}, set bson.M, unset ...string) error {
	if coll == nil {
		return ErrNilCollection
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		fields := bson.M{}
		for _, f := range unset {
			if _, ok := set[f]; !ok {
				fields[f] = ""
			}
		}
		if len(fields) > 0 {
			update["$unset"] = fields
		}
	}
	if len(update) == 0 {
		return nil
	}
	_, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	return err
}

// toSetDoc flattens a record into the top-level fields of a $set update.
// The _id field is never part of the update.
func toSetDoc(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	delete(doc, "_id")
	return doc, nil
}
