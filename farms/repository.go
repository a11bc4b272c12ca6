package farms

import (
	"context"
	"errors"

	"agrilink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository is the farm persistence used by Service. Owned lookups return
// nil, nil when the farm is missing or belongs to someone else.
type Repository interface {
	Insert(ctx context.Context, f *models.Farm) error
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Farm, error)
	FindOwned(ctx context.Context, id, owner primitive.ObjectID) (*models.Farm, error)
	UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, set bson.M) (*models.Farm, error)
	DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (bool, error)
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (m *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func (m *MongoRepository) Insert(ctx context.Context, f *models.Farm) error {
	res, err := m.coll.InsertOne(ctx, f)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		f.ID = oid
	}
	return nil
}

func (m *MongoRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Farm, error) {
	cur, err := m.coll.Find(ctx, bson.M{"ownerId": owner}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Farm{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoRepository) FindOwned(ctx context.Context, id, owner primitive.ObjectID) (*models.Farm, error) {
	return m.findOne(ctx, bson.M{"_id": id, "ownerId": owner})
}

// FindFarmByID loads any farm regardless of owner; callers do their own ownership check.
func (m *MongoRepository) FindFarmByID(ctx context.Context, id string) (*models.Farm, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return m.findOne(ctx, bson.M{"_id": oid})
}

func (m *MongoRepository) UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, set bson.M) (*models.Farm, error) {
	res := m.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "ownerId": owner},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var f models.Farm
	if err := res.Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (m *MongoRepository) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (bool, error) {
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id, "ownerId": owner})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (m *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Farm, error) {
	var f models.Farm
	if err := m.coll.FindOne(ctx, filter).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}
