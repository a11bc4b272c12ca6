package questions

import (
	"context"
	"time"

	"agrilink/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store persists questions. Answer returns nil, nil when the question does not exist.
type Store interface {
	Insert(ctx context.Context, q *models.Question) error
	Find(ctx context.Context, f Filter) ([]models.Question, error)
	Answer(ctx context.Context, id, admin primitive.ObjectID, answer string, at time.Time) (*models.Question, error)
}

// Filter narrows a listing; zero values match everything.
type Filter struct {
	AskedBy primitive.ObjectID
	Status  models.QuestionStatus
}
