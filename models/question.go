package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuestionStatus string

const (
	QuestionOpen     QuestionStatus = "open"
	QuestionAnswered QuestionStatus = "answered"
)

func (s QuestionStatus) Valid() bool {
	return s == QuestionOpen || s == QuestionAnswered
}

// Question is a farmer's question to the admins.
type Question struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty"        json:"id"`
	AskedBy    primitive.ObjectID  `bson:"askedBy"              json:"askedBy"`
	Subject    string              `bson:"subject"              json:"subject"`
	Body       string              `bson:"body"                 json:"body"`
	Status     QuestionStatus      `bson:"status"               json:"status"`
	Answer     string              `bson:"answer,omitempty"     json:"answer,omitempty"`
	AnsweredBy *primitive.ObjectID `bson:"answeredBy,omitempty" json:"answeredBy,omitempty"`
	AnsweredAt *time.Time          `bson:"answeredAt,omitempty" json:"answeredAt,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt"            json:"createdAt"`
}
