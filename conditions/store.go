package conditions

import (
	"context"
	"time"

	"agrilink/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store persists condition reports. Every read and write after Insert is
// scoped to the owning farmer; a report owned by someone else behaves exactly
// like a missing one (nil result, nil error).
type Store interface {
	Insert(ctx context.Context, r *models.Report) error
	FindMany(ctx context.Context, farmer primitive.ObjectID, q ListQuery) ([]models.Report, int64, error)
	FindOneOwned(ctx context.Context, id, farmer primitive.ObjectID) (*models.Report, error)
	UpdateStatusOwned(ctx context.Context, id, farmer primitive.ObjectID, status models.ReportStatus, at time.Time) (*models.Report, error)
	DeleteOneOwned(ctx context.Context, id, farmer primitive.ObjectID) (bool, error)
	StatsByOwner(ctx context.Context, farmer primitive.ObjectID) (*models.ReportStats, error)
}

// FarmFinder looks up a farm by its id. It returns nil, nil when there is no
// such farm, including when id is not a valid ObjectID.
type FarmFinder interface {
	FindFarmByID(ctx context.Context, id string) (*models.Farm, error)
}

// ListQuery is an already-normalized page request.
type ListQuery struct {
	Status models.ReportStatus // empty means any
	Page   int64
	Limit  int64
}
