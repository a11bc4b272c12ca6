package questions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agrilink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "askedBy", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

func (m *MongoStore) Insert(ctx context.Context, q *models.Question) error {
	res, err := m.coll.InsertOne(ctx, q)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		q.ID = oid
	}
	return nil
}

func (m *MongoStore) Find(ctx context.Context, f Filter) ([]models.Question, error) {
	cur, err := m.coll.Find(ctx, findFilter(f), options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.Question{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return out, nil
}

func (m *MongoStore) Answer(ctx context.Context, id, admin primitive.ObjectID, answer string, at time.Time) (*models.Question, error) {
	res := m.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		answerUpdate(admin, answer, at),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var q models.Question
	if err := res.Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func findFilter(f Filter) bson.M {
	filter := bson.M{}
	if !f.AskedBy.IsZero() {
		filter["askedBy"] = f.AskedBy
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return filter
}

func answerUpdate(admin primitive.ObjectID, answer string, at time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"answer":     answer,
		"answeredBy": admin,
		"answeredAt": at,
		"status":     models.QuestionAnswered,
	}}
}
