package history

import (
	"context"

	"github.com/travigo/modeadvisor/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const recordSequence = "searches"

type MongoStore struct {
	Collection *mongo.Collection
	Counters   *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{
		Collection: collection,
		Counters:   collection.Database().Collection("counters"),
	}
}

// nextID hands out increasing record ids so listing order matches insertion order
func (s *MongoStore) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Sequence int64 `bson:"sequence"`
	}

	err := s.Counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": recordSequence},
		bson.M{"$inc": bson.M{"sequence": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)

	return counter.Sequence, err
}

func (s *MongoStore) Add(ctx context.Context, record *Record) error {
	id, err := s.nextID(ctx)
	if err != nil {
		return err
	}
	record.ID = id

	_, err = s.Collection.InsertOne(ctx, record)

	return err
}

func (s *MongoStore) List(ctx context.Context, feature ctdf.Feature, limit int) ([]Record, error) {
	filter := bson.M{}
	if feature != "" {
		filter["feature"] = feature
	}

	opts := options.Find().SetSort(bson.D{{Key: "id", Value: -1}}).SetLimit(int64(limit))

	cursor, err := s.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	records := []Record{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *MongoStore) Delete(ctx context.Context, id int64) error {
	_, err := s.Collection.DeleteOne(ctx, bson.M{"id": id})

	return err
}

func (s *MongoStore) Clear(ctx context.Context) error {
	_, err := s.Collection.DeleteMany(ctx, bson.M{})

	return err
}
