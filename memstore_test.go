package main

import (
	"context"
	"sort"
	"sync"
	"time"

	"agrilink/conditions"
	"agrilink/models"
	"agrilink/questions"
	"agrilink/suggest"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the Mongo stores, enough to drive the HTTP layer.

type memReports struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.Report
}

func newMemReports() *memReports {
	return &memReports{docs: map[primitive.ObjectID]models.Report{}}
}

var _ conditions.Store = (*memReports)(nil)

func (m *memReports) Insert(_ context.Context, r *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = primitive.NewObjectID()
	m.docs[r.ID] = *r
	return nil
}

func (m *memReports) FindMany(_ context.Context, farmer primitive.ObjectID, q conditions.ListQuery) ([]models.Report, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []models.Report
	for _, r := range m.docs {
		if r.Farmer == farmer && (q.Status == "" || r.Status == q.Status) {
			all = append(all, r)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ReportDate.After(all[j].ReportDate) })
	total := int64(len(all))
	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (m *memReports) FindOneOwned(_ context.Context, id, farmer primitive.ObjectID) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.docs[id]
	if !ok || r.Farmer != farmer {
		return nil, nil
	}
	return &r, nil
}

func (m *memReports) UpdateStatusOwned(_ context.Context, id, farmer primitive.ObjectID, status models.ReportStatus, at time.Time) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.docs[id]
	if !ok || r.Farmer != farmer {
		return nil, nil
	}
	r.Status, r.UpdatedAt = status, at
	m.docs[id] = r
	return &r, nil
}

func (m *memReports) DeleteOneOwned(_ context.Context, id, farmer primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.docs[id]
	if !ok || r.Farmer != farmer {
		return false, nil
	}
	delete(m.docs, id)
	return true, nil
}

func (m *memReports) StatsByOwner(_ context.Context, farmer primitive.ObjectID) (*models.ReportStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := &models.ReportStats{ByPlantStatus: map[string]int64{}, ByWeatherType: map[string]int64{}}
	for _, r := range m.docs {
		if r.Farmer != farmer {
			continue
		}
		st.Total++
		switch r.AISuggestion.Priority {
		case models.PriorityUrgent:
			st.Urgent++
		case models.PriorityHigh:
			st.HighPriority++
		}
		switch r.Status {
		case models.ReportStatusCompleted:
			st.Completed++
		case models.ReportStatusPending:
			st.Pending++
		}
		st.ByPlantStatus[string(r.PlantStatus)]++
		st.ByWeatherType[string(r.WeatherType)]++
	}
	return st, nil
}

func (m *memReports) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

type memFarms struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.Farm
}

func newMemFarms() *memFarms {
	return &memFarms{docs: map[primitive.ObjectID]models.Farm{}}
}

func (m *memFarms) Insert(_ context.Context, f *models.Farm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.ID = primitive.NewObjectID()
	m.docs[f.ID] = *f
	return nil
}

func (m *memFarms) ListByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Farm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Farm{}
	for _, f := range m.docs {
		if f.OwnerID == owner {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memFarms) FindOwned(_ context.Context, id, owner primitive.ObjectID) (*models.Farm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.docs[id]
	if !ok || f.OwnerID != owner {
		return nil, nil
	}
	return &f, nil
}

func (m *memFarms) FindFarmByID(_ context.Context, id string) (*models.Farm, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.docs[oid]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (m *memFarms) UpdateOwned(_ context.Context, id, owner primitive.ObjectID, set bson.M) (*models.Farm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.docs[id]
	if !ok || f.OwnerID != owner {
		return nil, nil
	}
	if v, ok := set["name"].(string); ok {
		f.Name = v
	}
	if v, ok := set["location"].(string); ok {
		f.Location = v
	}
	m.docs[id] = f
	return &f, nil
}

func (m *memFarms) DeleteOwned(_ context.Context, id, owner primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.docs[id]
	if !ok || f.OwnerID != owner {
		return false, nil
	}
	delete(m.docs, id)
	return true, nil
}

type memSuggestions struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.CropSuggestion
}

func (m *memSuggestions) FindByFarm(_ context.Context, farmID primitive.ObjectID) (*models.CropSuggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.docs[farmID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSuggestions) Insert(_ context.Context, s *models.CropSuggestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[s.FarmID]; ok {
		return suggest.ErrDuplicate
	}
	s.ID = primitive.NewObjectID()
	m.docs[s.FarmID] = *s
	return nil
}

type cannedCompleter struct {
	reply string
	calls int
}

func (c *cannedCompleter) Complete(context.Context, string) (string, error) {
	c.calls++
	return c.reply, nil
}

func (c *cannedCompleter) Model() string { return "canned" }

type memQuestions struct {
	mu   sync.Mutex
	docs []models.Question
}

var _ questions.Store = (*memQuestions)(nil)

func (m *memQuestions) Insert(_ context.Context, q *models.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q.ID = primitive.NewObjectID()
	m.docs = append(m.docs, *q)
	return nil
}

func (m *memQuestions) Find(_ context.Context, f questions.Filter) ([]models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Question{}
	for i := len(m.docs) - 1; i >= 0; i-- {
		q := m.docs[i]
		if (f.AskedBy.IsZero() || q.AskedBy == f.AskedBy) && (f.Status == "" || q.Status == f.Status) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memQuestions) Answer(_ context.Context, id, admin primitive.ObjectID, answer string, at time.Time) (*models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.docs {
		if m.docs[i].ID == id {
			q := &m.docs[i]
			q.Answer, q.AnsweredBy, q.AnsweredAt = answer, &admin, &at
			q.Status = models.QuestionAnswered
			out := *q
			return &out, nil
		}
	}
	return nil, nil
}

type memUsers struct {
	mu   sync.Mutex
	docs []models.User
}

func (m *memUsers) Insert(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.docs {
		if x.Email == u.Email {
			return errEmailTaken
		}
	}
	u.ID = primitive.NewObjectID()
	m.docs = append(m.docs, *u)
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

func (m *memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.ID == id })
}

func (m *memUsers) find(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.docs {
		if match(u) {
			return &u, nil
		}
	}
	return nil, nil
}
