// Package questions lets farmers ask the admins questions and admins answer them.
package questions

import (
	"context"
	"strings"
	"time"

	"agrilink/apperr"
	"agrilink/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// Ask stores an open question. Subject and body are both required.
func (s *Service) Ask(ctx context.Context, farmer primitive.ObjectID, subject, body string) (*models.Question, error) {
	subject, body = strings.TrimSpace(subject), strings.TrimSpace(body)
	var missing []string
	if subject == "" {
		missing = append(missing, "subject")
	}
	if body == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("missing required fields", missing...)
	}

	q := &models.Question{
		AskedBy:   farmer,
		Subject:   subject,
		Body:      body,
		Status:    models.QuestionOpen,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Insert(ctx, q); err != nil {
		return nil, apperr.Internal("insert question", err)
	}
	s.logger.Info("question asked",
		zap.String("question_id", q.ID.Hex()),
		zap.String("farmer", farmer.Hex()))
	return q, nil
}

func (s *Service) ListMine(ctx context.Context, farmer primitive.ObjectID) ([]models.Question, error) {
	return s.find(ctx, Filter{AskedBy: farmer})
}

// ListAll is the admin view, optionally narrowed to one status.
func (s *Service) ListAll(ctx context.Context, status models.QuestionStatus) ([]models.Question, error) {
	if status != "" && !status.Valid() {
		return nil, apperr.Validation("status must be open or answered", "status")
	}
	return s.find(ctx, Filter{Status: status})
}

func (s *Service) find(ctx context.Context, f Filter) ([]models.Question, error) {
	out, err := s.store.Find(ctx, f)
	if err != nil {
		return nil, apperr.Internal("list questions", err)
	}
	if out == nil {
		out = []models.Question{}
	}
	return out, nil
}

// Answer records the admin's answer and marks the question answered.
func (s *Service) Answer(ctx context.Context, id, admin primitive.ObjectID, answer string) (*models.Question, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, apperr.Validation("answer is required", "answer")
	}
	q, err := s.store.Answer(ctx, id, admin, answer, s.now().UTC())
	if err != nil {
		return nil, apperr.Internal("answer question", err)
	}
	if q == nil {
		return nil, apperr.NotFound("question not found")
	}
	s.logger.Info("question answered",
		zap.String("question_id", id.Hex()),
		zap.String("admin", admin.Hex()))
	return q, nil
}
