// Package conditions manages farm-condition reports: it validates a farmer's
// observation, computes the recommendation once, and owns the report's
// status lifecycle afterwards.
package conditions

import (
	"context"
	"math"
	"strings"
	"time"

	"agrilink/advisor"
	"agrilink/apperr"
	"agrilink/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	DefaultPlaceholderFarmID = "test-farm-id"
	defaultLimit             = 10
	defaultMaxLimit          = 100
)

type Service struct {
	store             Store
	farms             FarmFinder
	logger            *zap.Logger
	placeholderFarmID string
	maxLimit          int64
	now               func() time.Time
}

type Option func(*Service)

// WithPlaceholderFarmID sets the farm id that skips the farm ownership lookup.
// An empty id disables the bypass.
func WithPlaceholderFarmID(id string) Option {
	return func(s *Service) { s.placeholderFarmID = id }
}

func WithMaxLimit(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, farms FarmFinder, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:             store,
		farms:             farms,
		logger:            logger,
		placeholderFarmID: DefaultPlaceholderFarmID,
		maxLimit:          defaultMaxLimit,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput is a farmer's submission.
type CreateInput struct {
	FarmID string
	Photo  models.Photo
	models.Observation
}

// Page is one page of a farmer's reports, newest first.
type Page struct {
	Reports []models.Report `json:"reports"`
	Page    int64           `json:"page"`
	Limit   int64           `json:"limit"`
	Total   int64           `json:"total"`
	Pages   int64           `json:"pages"`
}

// Create validates the submission, checks farm ownership and stores a new
// pending report with its recommendation. Nothing is written on failure.
func (s *Service) Create(ctx context.Context, farmer primitive.ObjectID, in CreateInput) (*models.Report, error) {
	var missing []string
	if strings.TrimSpace(in.FarmID) == "" {
		missing = append(missing, "farm")
	}
	if strings.TrimSpace(in.Photo.URL) == "" {
		missing = append(missing, "photo.url")
	}
	if in.WeatherType == "" {
		missing = append(missing, "weatherType")
	}
	if in.SoilType == "" {
		missing = append(missing, "soilType")
	}
	if in.PlantStatus == "" {
		missing = append(missing, "plantStatus")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("missing required fields", missing...)
	}

	if s.placeholderFarmID == "" || in.FarmID != s.placeholderFarmID {
		farm, err := s.farms.FindFarmByID(ctx, in.FarmID)
		if err != nil {
			return nil, apperr.Internal("load farm", err)
		}
		if farm == nil {
			return nil, apperr.NotFound("farm not found")
		}
		if farm.OwnerID != farmer {
			return nil, apperr.Forbidden("farm belongs to another farmer")
		}
	}

	now := s.now().UTC()
	r := &models.Report{
		Farmer:       farmer,
		Farm:         in.FarmID,
		ReportDate:   now,
		Photo:        in.Photo,
		Observation:  in.Observation,
		AISuggestion: advisor.Recommend(in.Observation),
		Status:       models.ReportStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Insert(ctx, r); err != nil {
		return nil, apperr.Internal("insert report", err)
	}

	s.logger.Info("condition report created",
		zap.String("report_id", r.ID.Hex()),
		zap.String("farmer", farmer.Hex()),
		zap.String("farm", r.Farm),
		zap.String("priority", string(r.AISuggestion.Priority)))
	return r, nil
}

// List returns the farmer's reports, optionally filtered by status.
// Non-positive page or limit fall back to defaults; limit is capped, and page
// is capped so the skip offset stays within int64.
func (s *Service) List(ctx context.Context, farmer primitive.ObjectID, status models.ReportStatus, page, limit int64) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	if maxPage := math.MaxInt64 / limit; page > maxPage {
		page = maxPage
	}

	reports, total, err := s.store.FindMany(ctx, farmer, ListQuery{Status: status, Page: page, Limit: limit})
	if err != nil {
		return nil, apperr.Internal("list reports", err)
	}
	if reports == nil {
		reports = []models.Report{}
	}
	return &Page{
		Reports: reports,
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   (total + limit - 1) / limit,
	}, nil
}

// Get returns one of the farmer's reports. Reports owned by others are not found.
func (s *Service) Get(ctx context.Context, id, farmer primitive.ObjectID) (*models.Report, error) {
	r, err := s.store.FindOneOwned(ctx, id, farmer)
	if err != nil {
		return nil, apperr.Internal("get report", err)
	}
	if r == nil {
		return nil, apperr.NotFound("report not found")
	}
	return r, nil
}

// UpdateStatus moves a report to any of the four states. The recommendation is left as stored.
func (s *Service) UpdateStatus(ctx context.Context, id, farmer primitive.ObjectID, status models.ReportStatus) (*models.Report, error) {
	if status == "" {
		return nil, apperr.Validation("status is required", "status")
	}
	if !status.Valid() {
		return nil, apperr.Validation("status must be one of pending, in_progress, completed, ignored", "status")
	}

	r, err := s.store.UpdateStatusOwned(ctx, id, farmer, status, s.now().UTC())
	if err != nil {
		return nil, apperr.Internal("update report status", err)
	}
	if r == nil {
		return nil, apperr.NotFound("report not found")
	}

	s.logger.Info("condition report status changed",
		zap.String("report_id", id.Hex()),
		zap.String("status", string(status)))
	return r, nil
}

// Delete removes the report for good.
func (s *Service) Delete(ctx context.Context, id, farmer primitive.ObjectID) error {
	ok, err := s.store.DeleteOneOwned(ctx, id, farmer)
	if err != nil {
		return apperr.Internal("delete report", err)
	}
	if !ok {
		return apperr.NotFound("report not found")
	}
	s.logger.Info("condition report deleted", zap.String("report_id", id.Hex()))
	return nil
}

func (s *Service) Stats(ctx context.Context, farmer primitive.ObjectID) (*models.ReportStats, error) {
	st, err := s.store.StatsByOwner(ctx, farmer)
	if err != nil {
		return nil, apperr.Internal("report stats", err)
	}
	return st, nil
}
