package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WeatherType string

const (
	WeatherSunny  WeatherType = "sunny"
	WeatherCloudy WeatherType = "cloudy"
	WeatherRainy  WeatherType = "rainy"
	WeatherStormy WeatherType = "stormy"
	WeatherFoggy  WeatherType = "foggy"
	WeatherWindy  WeatherType = "windy"
)

type SoilType string

const (
	SoilSandy  SoilType = "sandy"
	SoilLoamy  SoilType = "loamy"
	SoilClay   SoilType = "clay"
	SoilSilt   SoilType = "silt"
	SoilChalky SoilType = "chalky"
	SoilPeaty  SoilType = "peaty"
)

func (s SoilType) Valid() bool {
	switch s {
	case SoilSandy, SoilLoamy, SoilClay, SoilSilt, SoilChalky, SoilPeaty:
		return true
	}
	return false
}

type PlantStatus string

const (
	PlantHealthy           PlantStatus = "healthy"
	PlantStressed          PlantStatus = "stressed"
	PlantDiseased          PlantStatus = "diseased"
	PlantPestInfested      PlantStatus = "pest_infested"
	PlantNutrientDeficient PlantStatus = "nutrient_deficient"
	PlantOverwatered       PlantStatus = "overwatered"
	PlantUnderwatered      PlantStatus = "underwatered"
)

// Action is a recommended intervention tag.
type Action string

const (
	ActionIrrigation       Action = "irrigation"
	ActionFertilization    Action = "fertilization"
	ActionPestControl      Action = "pest_control"
	ActionDiseaseTreatment Action = "disease_treatment"
	ActionSoilAmendment    Action = "soil_amendment"
	ActionPruning          Action = "pruning"
	ActionHarvesting       Action = "harvesting"
	ActionOther            Action = "other"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Timeline string

const (
	TimelineImmediate   Timeline = "immediate"
	TimelineWithinWeek  Timeline = "within_week"
	TimelineWithinMonth Timeline = "within_month"
	TimelineSeasonal    Timeline = "seasonal"
)

// ReportStatus is the farmer-driven lifecycle of a condition report.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusInProgress ReportStatus = "in_progress"
	ReportStatusCompleted  ReportStatus = "completed"
	ReportStatusIgnored    ReportStatus = "ignored"
)

// Valid reports whether s is one of the four lifecycle states.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusCompleted, ReportStatusIgnored:
		return true
	}
	return false
}

// Observation is what the farmer saw in the field.
type Observation struct {
	WeatherType     WeatherType `bson:"weatherType"               json:"weatherType"`
	SoilType        SoilType    `bson:"soilType"                  json:"soilType"`
	PlantStatus     PlantStatus `bson:"plantStatus"               json:"plantStatus"`
	AdditionalNotes string      `bson:"additionalNotes,omitempty" json:"additionalNotes,omitempty"`
}

// Recommendation is computed once when a report is created.
// Recommendations is a list: the same action may appear twice.
type Recommendation struct {
	Recommendations []Action `bson:"recommendations"           json:"recommendations"`
	Priority        Priority `bson:"priority"                  json:"priority"`
	Description     string   `bson:"description"               json:"description"`
	EstimatedCost   float64  `bson:"estimatedCost"             json:"estimatedCost"`
	TimeToImplement Timeline `bson:"timeToImplement,omitempty" json:"timeToImplement,omitempty"`
}

type Photo struct {
	URL     string `bson:"url"               json:"url"`
	Caption string `bson:"caption,omitempty" json:"caption,omitempty"`
}

// Report is a farm-condition report stored in the "reports" collection.
// Farm holds a farm ObjectID hex or the placeholder farm id.
type Report struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Farmer     primitive.ObjectID `bson:"farmer"        json:"farmer"`
	Farm       string             `bson:"farm"          json:"farm"`
	ReportDate time.Time          `bson:"reportDate"    json:"reportDate"`
	Photo      Photo              `bson:"photo"         json:"photo"`

	Observation `bson:",inline"`

	AISuggestion Recommendation `bson:"aiSuggestion" json:"aiSuggestion"`
	Status       ReportStatus   `bson:"status"       json:"status"`
	CreatedAt    time.Time      `bson:"createdAt"    json:"createdAt"`
	UpdatedAt    time.Time      `bson:"updatedAt"    json:"updatedAt"`
}

// ReportStats is the per-farmer read-side aggregate.
type ReportStats struct {
	Total         int64            `json:"totalReports"`
	Urgent        int64            `json:"urgentReports"`
	HighPriority  int64            `json:"highPriorityReports"`
	Completed     int64            `json:"completedReports"`
	Pending       int64            `json:"pendingReports"`
	ByPlantStatus map[string]int64 `json:"byPlantStatus"`
	ByWeatherType map[string]int64 `json:"byWeatherType"`
}
