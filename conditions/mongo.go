package conditions

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

// MongoStore keeps reports in a single collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// EnsureIndexes creates the owner-scoped listing indexes.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "farmer", Value: 1}, {Key: "reportDate", Value: -1}}},
		{Keys: bson.D{{Key: "farmer", Value: 1}, {Key: "status", Value: 1}}},
	})
	return err
}

func (m *MongoStore) Insert(ctx context.Context, r *models.Report) error {
	res, err := m.coll.InsertOne(ctx, r)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = oid
	}
	return nil
}

func (m *MongoStore) FindMany(ctx context.Context, farmer primitive.ObjectID, q ListQuery) ([]models.Report, int64, error) {
	filter := listFilter(farmer, q.Status)

	total, err := m.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	cur, err := m.coll.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "reportDate", Value: -1}}).
		SetSkip((q.Page-1)*q.Limit).
		SetLimit(q.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("find reports: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.Report{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, fmt.Errorf("decode reports: %w", err)
	}
	return out, total, nil
}

func (m *MongoStore) FindOneOwned(ctx context.Context, id, farmer primitive.ObjectID) (*models.Report, error) {
	var r models.Report
	err := m.coll.FindOne(ctx, ownedFilter(id, farmer)).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateStatusOwned is a single conditional update; concurrent callers race and the last write wins.
func (m *MongoStore) UpdateStatusOwned(ctx context.Context, id, farmer primitive.ObjectID, status models.ReportStatus, at time.Time) (*models.Report, error) {
	res := m.coll.FindOneAndUpdate(
		ctx,
		ownedFilter(id, farmer),
		statusUpdate(status, at),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var r models.Report
	err := res.Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (m *MongoStore) DeleteOneOwned(ctx context.Context, id, farmer primitive.ObjectID) (bool, error) {
	res, err := m.coll.DeleteOne(ctx, ownedFilter(id, farmer))
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

type statsDoc struct {
	Totals []struct {
		Total     int64 `bson:"total"`
		Urgent    int64 `bson:"urgent"`
		High      int64 `bson:"high"`
		Completed int64 `bson:"completed"`
		Pending   int64 `bson:"pending"`
	} `bson:"totals"`
	ByPlantStatus []bucket `bson:"byPlantStatus"`
	ByWeatherType []bucket `bson:"byWeatherType"`
}

type bucket struct {
	ID    string `bson:"_id"`
	Count int64  `bson:"count"`
}

func (m *MongoStore) StatsByOwner(ctx context.Context, farmer primitive.ObjectID) (*models.ReportStats, error) {
	cur, err := m.coll.Aggregate(ctx, statsPipeline(farmer))
	if err != nil {
		return nil, fmt.Errorf("aggregate reports: %w", err)
	}
	defer cur.Close(ctx)

	var docs []statsDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode report stats: %w", err)
	}
	var doc statsDoc
	if len(docs) > 0 {
		doc = docs[0]
	}
	return doc.toStats(), nil
}

func (d statsDoc) toStats() *models.ReportStats {
	st := &models.ReportStats{
		ByPlantStatus: make(map[string]int64, len(d.ByPlantStatus)),
		ByWeatherType: make(map[string]int64, len(d.ByWeatherType)),
	}
	if len(d.Totals) > 0 {
		t := d.Totals[0]
		st.Total, st.Urgent, st.HighPriority = t.Total, t.Urgent, t.High
		st.Completed, st.Pending = t.Completed, t.Pending
	}
	for _, b := range d.ByPlantStatus {
		st.ByPlantStatus[b.ID] = b.Count
	}
	for _, b := range d.ByWeatherType {
		st.ByWeatherType[b.ID] = b.Count
	}
	return st
}

// ---- query builders ----

func ownedFilter(id, farmer primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "farmer": farmer}
}

// statusUpdate touches nothing but the status and its timestamp.
func statusUpdate(status models.ReportStatus, at time.Time) bson.M {
	return bson.M{"$set": bson.M{"status": status, "updatedAt": at}}
}

func listFilter(farmer primitive.ObjectID, status models.ReportStatus) bson.M {
	f := bson.M{"farmer": farmer}
	if status != "" {
		f["status"] = status
	}
	return f
}

func countIf(field string, value any) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$" + field, value}}, 1, 0}}}
}

func groupCount(field string) bson.A {
	return bson.A{bson.M{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}}
}

// statsPipeline computes every counter in one round trip with $facet.
func statsPipeline(farmer primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"farmer": farmer}}},
		{{Key: "$facet", Value: bson.M{
			"totals": bson.A{bson.M{"$group": bson.M{
				"_id":       nil,
				"total":     bson.M{"$sum": 1},
				"urgent":    countIf("aiSuggestion.priority", models.PriorityUrgent),
				"high":      countIf("aiSuggestion.priority", models.PriorityHigh),
				"completed": countIf("status", models.ReportStatusCompleted),
				"pending":   countIf("status", models.ReportStatusPending),
			}}},
			"byPlantStatus": groupCount("plantStatus"),
			"byWeatherType": groupCount("weatherType"),
		}}},
	}
}
