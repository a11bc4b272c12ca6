// Package suggest produces one generated crop suggestion per farm and keeps
// reusing it once stored.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agrilink/apperr"
	"agrilink/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Completer sends a prompt to a text-generation model and returns its raw reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// ErrDuplicate is returned by Store.Insert when the farm already has a suggestion.
var ErrDuplicate = errors.New("suggestion already exists for farm")

type Store interface {
	FindByFarm(ctx context.Context, farmID primitive.ObjectID) (*models.CropSuggestion, error)
	Insert(ctx context.Context, s *models.CropSuggestion) error
}

type FarmFinder interface {
	FindFarmByID(ctx context.Context, id string) (*models.Farm, error)
}

type Service struct {
	store     Store
	farms     FarmFinder
	completer Completer // nil when generation is not configured
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(store Store, farms FarmFinder, completer Completer, logger *zap.Logger) *Service {
	return &Service{store: store, farms: farms, completer: completer, logger: logger, now: time.Now}
}

// Suggest returns the farm's stored suggestion, generating and storing it on first use.
func (s *Service) Suggest(ctx context.Context, farmID string, farmer primitive.ObjectID) (*models.CropSuggestion, error) {
	farm, err := s.ownedFarm(ctx, farmID, farmer)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindByFarm(ctx, farm.ID)
	if err != nil {
		return nil, apperr.Internal("load suggestion", err)
	}
	if existing != nil {
		return existing, nil
	}

	if s.completer == nil {
		return nil, apperr.Internal("suggestions unavailable", errors.New("no text completer configured"))
	}
	text, err := s.completer.Complete(ctx, BuildPrompt(farm, s.now()))
	if err != nil {
		return nil, apperr.Internal("generate suggestion", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Internal("generate suggestion", errors.New("empty completion"))
	}

	crops, timeline := ParseReply(text)
	sug := &models.CropSuggestion{
		FarmID:    farm.ID,
		Farmer:    farmer,
		Crops:     crops,
		Timeline:  timeline,
		RawText:   text,
		Model:     s.completer.Model(),
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Insert(ctx, sug); err != nil {
		if !errors.Is(err, ErrDuplicate) {
			return nil, apperr.Internal("store suggestion", err)
		}
		// Lost a race with a concurrent request for the same farm: the stored one wins.
		stored, ferr := s.store.FindByFarm(ctx, farm.ID)
		if ferr != nil || stored == nil {
			return nil, apperr.Internal("load suggestion", errors.Join(err, ferr))
		}
		return stored, nil
	}

	s.logger.Info("crop suggestion stored",
		zap.String("farm_id", farm.ID.Hex()),
		zap.Int("crops", len(crops)),
		zap.String("model", sug.Model))
	return sug, nil
}

// Get returns the stored suggestion without generating one.
func (s *Service) Get(ctx context.Context, farmID string, farmer primitive.ObjectID) (*models.CropSuggestion, error) {
	farm, err := s.ownedFarm(ctx, farmID, farmer)
	if err != nil {
		return nil, err
	}
	sug, err := s.store.FindByFarm(ctx, farm.ID)
	if err != nil {
		return nil, apperr.Internal("load suggestion", err)
	}
	if sug == nil {
		return nil, apperr.NotFound("no suggestion for this farm yet")
	}
	return sug, nil
}

func (s *Service) ownedFarm(ctx context.Context, farmID string, farmer primitive.ObjectID) (*models.Farm, error) {
	farm, err := s.farms.FindFarmByID(ctx, farmID)
	if err != nil {
		return nil, apperr.Internal("load farm", err)
	}
	if farm == nil {
		return nil, apperr.NotFound("farm not found")
	}
	if farm.OwnerID != farmer {
		return nil, apperr.Forbidden("farm belongs to another farmer")
	}
	return farm, nil
}

// BuildPrompt describes the farm to the model and asks for a list of crops
// followed by a planting timeline.
func BuildPrompt(f *models.Farm, now time.Time) string {
	var b strings.Builder
	b.WriteString("You are an agronomy assistant. Suggest crops for the farm below.\n")
	fmt.Fprintf(&b, "Location: %s\n", f.Location)
	if f.SoilType != "" {
		fmt.Fprintf(&b, "Soil: %s\n", f.SoilType)
	}
	if f.SizeAcres != nil {
		fmt.Fprintf(&b, "Size: %.1f acres\n", *f.SizeAcres)
	}
	if len(f.Crops) > 0 {
		names := make([]string, 0, len(f.Crops))
		for _, c := range f.Crops {
			names = append(names, c.Name)
		}
		fmt.Fprintf(&b, "Currently growing: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, "Current month: %s\n", now.Month())
	b.WriteString("Reply with a bulleted list of 3 to 5 crops, one per line, then a planting timeline with one line per step.")
	return b.String()
}
