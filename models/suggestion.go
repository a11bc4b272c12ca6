package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CropSuggestion is the generated planting advice for a farm. There is at most
// one per farm (unique index on farmId); once stored it is reused as-is.
type CropSuggestion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"      json:"id"`
	FarmID    primitive.ObjectID `bson:"farmId"             json:"farmId"`
	Farmer    primitive.ObjectID `bson:"farmer"             json:"farmer"`
	Crops     []string           `bson:"crops"              json:"crops"`
	Timeline  []string           `bson:"timeline,omitempty" json:"timeline,omitempty"`
	RawText   string             `bson:"rawText"            json:"rawText"`
	Model     string             `bson:"model,omitempty"    json:"model,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"          json:"createdAt"`
}
