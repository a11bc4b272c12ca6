// Package farms owns farmer farm records.
package farms

import (
	"context"
	"strings"
	"time"

	"agrilink/apperr"
	"agrilink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Input carries create and update values. Nil fields are left unset (or
// unchanged on update).
type Input struct {
	Name      *string           `json:"name"`
	Location  *string           `json:"location"`
	SizeAcres *float64          `json:"sizeAcres,omitempty"`
	SoilType  *models.SoilType  `json:"soilType,omitempty"`
	Crops     []models.FarmCrop `json:"crops,omitempty"`
	Photo     *string           `json:"photo,omitempty"`
}

func (in Input) check() error {
	if in.SizeAcres != nil && *in.SizeAcres < 0 {
		return apperr.Validation("sizeAcres must not be negative", "sizeAcres")
	}
	if in.SoilType != nil && *in.SoilType != "" && !in.SoilType.Valid() {
		return apperr.Validation("unknown soil type", "soilType")
	}
	for _, c := range in.Crops {
		if strings.TrimSpace(c.Name) == "" {
			return apperr.Validation("every crop needs a name", "crops")
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, owner primitive.ObjectID, in Input) (*models.Farm, error) {
	var missing []string
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		missing = append(missing, "name")
	}
	if in.Location == nil || strings.TrimSpace(*in.Location) == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("missing required fields", missing...)
	}
	if err := in.check(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	f := &models.Farm{
		OwnerID:   owner,
		Name:      strings.TrimSpace(*in.Name),
		Location:  strings.TrimSpace(*in.Location),
		SizeAcres: in.SizeAcres,
		Crops:     in.Crops,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.SoilType != nil {
		f.SoilType = *in.SoilType
	}
	if in.Photo != nil {
		f.Photo = *in.Photo
	}
	if err := s.repo.Insert(ctx, f); err != nil {
		return nil, apperr.Internal("insert farm", err)
	}
	s.logger.Info("farm created", zap.String("farm_id", f.ID.Hex()), zap.String("owner", owner.Hex()))
	return f, nil
}

func (s *Service) List(ctx context.Context, owner primitive.ObjectID) ([]models.Farm, error) {
	out, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, apperr.Internal("list farms", err)
	}
	if out == nil {
		out = []models.Farm{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id, owner primitive.ObjectID) (*models.Farm, error) {
	f, err := s.repo.FindOwned(ctx, id, owner)
	if err != nil {
		return nil, apperr.Internal("get farm", err)
	}
	if f == nil {
		return nil, apperr.NotFound("farm not found")
	}
	return f, nil
}

// Update applies a partial $set of the provided fields.
func (s *Service) Update(ctx context.Context, id, owner primitive.ObjectID, in Input) (*models.Farm, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	set := updateSet(in)
	if len(set) == 0 {
		return nil, apperr.Validation("nothing to update")
	}
	set["updatedAt"] = s.now().UTC()

	f, err := s.repo.UpdateOwned(ctx, id, owner, set)
	if err != nil {
		return nil, apperr.Internal("update farm", err)
	}
	if f == nil {
		return nil, apperr.NotFound("farm not found")
	}
	return f, nil
}

func (s *Service) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	ok, err := s.repo.DeleteOwned(ctx, id, owner)
	if err != nil {
		return apperr.Internal("delete farm", err)
	}
	if !ok {
		return apperr.NotFound("farm not found")
	}
	s.logger.Info("farm deleted", zap.String("farm_id", id.Hex()))
	return nil
}

func updateSet(in Input) bson.M {
	set := bson.M{}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		set["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Location != nil && strings.TrimSpace(*in.Location) != "" {
		set["location"] = strings.TrimSpace(*in.Location)
	}
	if in.SizeAcres != nil {
		set["sizeAcres"] = *in.SizeAcres
	}
	if in.SoilType != nil {
		set["soilType"] = *in.SoilType
	}
	if in.Crops != nil {
		set["crops"] = in.Crops
	}
	if in.Photo != nil {
		set["photo"] = *in.Photo
	}
	return set
}
