package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Farm is a farmer-owned holding. Condition reports and crop suggestions hang off it.
type Farm struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"       json:"id"`
	OwnerID   primitive.ObjectID `bson:"ownerId"             json:"ownerId"`
	Name      string             `bson:"name"                json:"name"`
	Location  string             `bson:"location"            json:"location"`
	SizeAcres *float64           `bson:"sizeAcres,omitempty" json:"sizeAcres,omitempty"`
	SoilType  SoilType           `bson:"soilType,omitempty"  json:"soilType,omitempty"`
	Crops     []FarmCrop         `bson:"crops,omitempty"     json:"crops,omitempty"`
	Photo     string             `bson:"photo,omitempty"     json:"photo,omitempty"` // URL to farm photo
	CreatedAt time.Time          `bson:"createdAt"           json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"           json:"updatedAt"`
}

type FarmCrop struct {
	Name            string     `bson:"name"                      json:"name"`
	PlantedAt       *time.Time `bson:"plantedAt,omitempty"       json:"plantedAt,omitempty"`
	ExpectedHarvest *time.Time `bson:"expectedHarvest,omitempty" json:"expectedHarvest,omitempty"`
	Notes           string     `bson:"notes,omitempty"           json:"notes,omitempty"`
}
