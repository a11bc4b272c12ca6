package conditions

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"agrilink/apperr"
	"agrilink/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MockStore is a mock implementation of the Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Insert(ctx context.Context, r *models.Report) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockStore) FindMany(ctx context.Context, farmer primitive.ObjectID, q ListQuery) ([]models.Report, int64, error) {
	args := m.Called(ctx, farmer, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Report), args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) FindOneOwned(ctx context.Context, id, farmer primitive.ObjectID) (*models.Report, error) {
	args := m.Called(ctx, id, farmer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockStore) UpdateStatusOwned(ctx context.Context, id, farmer primitive.ObjectID, status models.ReportStatus, at time.Time) (*models.Report, error) {
	args := m.Called(ctx, id, farmer, status, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockStore) DeleteOneOwned(ctx context.Context, id, farmer primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id, farmer)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) StatsByOwner(ctx context.Context, farmer primitive.ObjectID) (*models.ReportStats, error) {
	args := m.Called(ctx, farmer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReportStats), args.Error(1)
}

type MockFarms struct {
	mock.Mock
}

func (m *MockFarms) FindFarmByID(ctx context.Context, id string) (*models.Farm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Farm), args.Error(1)
}

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newTestService(store *MockStore, farms *MockFarms) *Service {
	return NewService(store, farms, zap.NewNop(), WithClock(func() time.Time { return fixedNow }))
}

func validInput(farmID string) CreateInput {
	return CreateInput{
		FarmID: farmID,
		Photo:  models.Photo{URL: "https://cdn.example.com/p/1.jpg", Caption: "north plot"},
		Observation: models.Observation{
			WeatherType: models.WeatherSunny,
			SoilType:    models.SoilClay,
			PlantStatus: models.PlantDiseased,
		},
	}
}

func TestCreateReport(t *testing.T) {
	store, farms := new(MockStore), new(MockFarms)
	svc := newTestService(store, farms)
	ctx := context.Background()
	farmer := primitive.NewObjectID()
	farmID := primitive.NewObjectID()
	reportID := primitive.NewObjectID()

	farms.On("FindFarmByID", ctx, farmID.Hex()).Return(&models.Farm{ID: farmID, OwnerID: farmer}, nil)
	store.On("Insert", ctx, mock.AnythingOfType("*models.Report")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Report).ID = reportID }).
		Return(nil)

	r, err := svc.Create(ctx, farmer, validInput(farmID.Hex()))
	require.NoError(t, err)

	assert.Equal(t, reportID, r.ID)
	assert.Equal(t, farmer, r.Farmer)
	assert.Equal(t, farmID.Hex(), r.Farm)
	assert.Equal(t, models.ReportStatusPending, r.Status)
	assert.Equal(t, fixedNow, r.ReportDate)
	assert.Equal(t, models.PriorityUrgent, r.AISuggestion.Priority)
	assert.Equal(t, models.TimelineImmediate, r.AISuggestion.TimeToImplement)
	assert.Subset(t, r.AISuggestion.Recommendations, []models.Action{models.ActionDiseaseTreatment, models.ActionPruning})

	farms.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestCreateReportMissingFields(t *testing.T) {
	store, farms := new(MockStore), new(MockFarms)
	svc := newTestService(store, farms)

	in := validInput(primitive.NewObjectID().Hex())
	in.Photo.URL = "  "
	in.SoilType = ""

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), in)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, []string{"photo.url", "soilType"}, ae.Fields)

	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	farms.AssertNotCalled(t, "FindFarmByID", mock.Anything, mock.Anything)
}

func TestCreateReportAllFieldsMissing(t *testing.T) {
	svc := newTestService(new(MockStore), new(MockFarms))
	_, err := svc.Create(context.Background(), primitive.NewObjectID(), CreateInput{})

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, []string{"farm", "photo.url", "weatherType", "soilType", "plantStatus"}, ae.Fields)
}

func TestCreateReportFarmOwnedByAnother(t *testing.T) {
	store, farms := new(MockStore), new(MockFarms)
	svc := newTestService(store, farms)
	ctx := context.Background()
	farmID := primitive.NewObjectID()

	farms.On("FindFarmByID", ctx, farmID.Hex()).Return(&models.Farm{ID: farmID, OwnerID: primitive.NewObjectID()}, nil)

	_, err := svc.Create(ctx, primitive.NewObjectID(), validInput(farmID.Hex()))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateReportFarmMissing(t *testing.T) {
	store, farms := new(MockStore), new(MockFarms)
	svc := newTestService(store, farms)
	ctx := context.Background()

	farms.On("FindFarmByID", ctx, "nope").Return(nil, nil)

	_, err := svc.Create(ctx, primitive.NewObjectID(), validInput("nope"))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateReportFarmLookupFails(t *testing.T) {
	store, farms := new(MockStore), new(MockFarms)
	svc := newTestService(store, farms)
	ctx := context.Background()

	farms.On("FindFarmByID", ctx, "abc").Return(nil, errors.New("connection reset"))

	_, err := svc.Create(ctx, primitive.NewObjectID(), validInput("abc"))
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestCreateReportPlaceholderFarmSkipsLookup(t *testing.T) {
	store, farms := new(MockStore), new(MockFarms)
	svc := newTestService(store, farms)
	ctx := context.Background()

	store.On("Insert", ctx, mock.AnythingOfType("*models.Report")).Return(nil)

	r, err := svc.Create(ctx, primitive.NewObjectID(), validInput(DefaultPlaceholderFarmID))
	require.NoError(t, err)
	assert.Equal(t, DefaultPlaceholderFarmID, r.Farm)
	farms.AssertNotCalled(t, "FindFarmByID", mock.Anything, mock.Anything)
}

func TestCreateReportPlaceholderDisabled(t *testing.T) {
	store, farms := new(MockStore), new(MockFarms)
	svc := NewService(store, farms, zap.NewNop(), WithPlaceholderFarmID(""))
	ctx := context.Background()

	farms.On("FindFarmByID", ctx, DefaultPlaceholderFarmID).Return(nil, nil)

	_, err := svc.Create(ctx, primitive.NewObjectID(), validInput(DefaultPlaceholderFarmID))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateReportInsertFails(t *testing.T) {
	store, farms := new(MockStore), new(MockFarms)
	svc := newTestService(store, farms)
	ctx := context.Background()
	cause := errors.New("write concern error")

	store.On("Insert", ctx, mock.Anything).Return(cause)

	_, err := svc.Create(ctx, primitive.NewObjectID(), validInput(DefaultPlaceholderFarmID))
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestListReportsNormalizesPaging(t *testing.T) {
	store := new(MockStore)
	svc := NewService(store, new(MockFarms), zap.NewNop(), WithMaxLimit(50))
	ctx := context.Background()
	farmer := primitive.NewObjectID()

	store.On("FindMany", ctx, farmer, ListQuery{Status: models.ReportStatusPending, Page: 1, Limit: 50}).
		Return([]models.Report{{ID: primitive.NewObjectID()}}, int64(101), nil)

	page, err := svc.List(ctx, farmer, models.ReportStatusPending, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Page)
	assert.Equal(t, int64(50), page.Limit)
	assert.Equal(t, int64(101), page.Total)
	assert.Equal(t, int64(3), page.Pages)
	assert.Len(t, page.Reports, 1)
	store.AssertExpectations(t)
}

func TestListReportsEmpty(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, new(MockFarms))
	ctx := context.Background()
	farmer := primitive.NewObjectID()

	store.On("FindMany", ctx, farmer, ListQuery{Page: 2, Limit: defaultLimit}).Return(nil, int64(0), nil)

	page, err := svc.List(ctx, farmer, "", 2, 0)
	require.NoError(t, err)
	assert.NotNil(t, page.Reports)
	assert.Empty(t, page.Reports)
	assert.Equal(t, int64(0), page.Pages)
}

// Ownership isolation: another farmer's report looks exactly like a missing one.
func TestOtherFarmersReportIsNotFound(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, new(MockFarms))
	ctx := context.Background()
	id, intruder := primitive.NewObjectID(), primitive.NewObjectID()

	store.On("FindOneOwned", ctx, id, intruder).Return(nil, nil)
	store.On("UpdateStatusOwned", ctx, id, intruder, models.ReportStatusCompleted, fixedNow).Return(nil, nil)
	store.On("DeleteOneOwned", ctx, id, intruder).Return(false, nil)

	_, err := svc.Get(ctx, id, intruder)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.UpdateStatus(ctx, id, intruder, models.ReportStatusCompleted)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = svc.Delete(ctx, id, intruder)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	store.AssertExpectations(t)
}

func TestUpdateStatusValidation(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, new(MockFarms))
	ctx := context.Background()
	id, farmer := primitive.NewObjectID(), primitive.NewObjectID()

	_, err := svc.UpdateStatus(ctx, id, farmer, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.UpdateStatus(ctx, id, farmer, "archived")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	store.AssertNotCalled(t, "UpdateStatusOwned", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateThenCompleteKeepsRecommendation(t *testing.T) {
	store, farms := new(MockStore), new(MockFarms)
	svc := newTestService(store, farms)
	ctx := context.Background()
	farmer, farmID, reportID := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	farms.On("FindFarmByID", ctx, farmID.Hex()).Return(&models.Farm{ID: farmID, OwnerID: farmer}, nil)

	var stored models.Report
	store.On("Insert", ctx, mock.AnythingOfType("*models.Report")).
		Run(func(args mock.Arguments) {
			r := args.Get(1).(*models.Report)
			r.ID = reportID
			stored = *r
		}).
		Return(nil)

	created, err := svc.Create(ctx, farmer, validInput(farmID.Hex()))
	require.NoError(t, err)

	// The store only $sets status and updatedAt; mirror that here.
	after := stored
	after.Status = models.ReportStatusCompleted
	after.UpdatedAt = fixedNow
	store.On("UpdateStatusOwned", ctx, reportID, farmer, models.ReportStatusCompleted, fixedNow).Return(&after, nil)

	updated, err := svc.UpdateStatus(ctx, reportID, farmer, models.ReportStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusCompleted, updated.Status)
	assert.Equal(t, created.AISuggestion, updated.AISuggestion)
	assert.Equal(t, created.Observation, updated.Observation)
}

func TestDeleteReport(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, new(MockFarms))
	ctx := context.Background()
	id, farmer := primitive.NewObjectID(), primitive.NewObjectID()

	store.On("DeleteOneOwned", ctx, id, farmer).Return(true, nil)
	assert.NoError(t, svc.Delete(ctx, id, farmer))
	store.AssertExpectations(t)
}

func TestStatsPassThrough(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, new(MockFarms))
	ctx := context.Background()
	farmer := primitive.NewObjectID()
	want := &models.ReportStats{Total: 3, Urgent: 1, ByPlantStatus: map[string]int64{"healthy": 3}}

	store.On("StatsByOwner", ctx, farmer).Return(want, nil)
	got, err := svc.Stats(ctx, farmer)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	store.On("StatsByOwner", ctx, primitive.NilObjectID).Return(nil, errors.New("timeout"))
	_, err = svc.Stats(ctx, primitive.NilObjectID)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestListReportsHugePageKeepsSkipPositive(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, new(MockFarms))
	ctx := context.Background()
	farmer := primitive.NewObjectID()

	want := ListQuery{Page: math.MaxInt64 / 10, Limit: 10}
	store.On("FindMany", ctx, farmer, want).Return([]models.Report{}, int64(3), nil)

	page, err := svc.List(ctx, farmer, "", math.MaxInt64/5, 10)
	require.NoError(t, err)
	assert.Equal(t, want.Page, page.Page)
	assert.Empty(t, page.Reports)
	assert.Positive(t, (want.Page-1)*want.Limit)
	store.AssertExpectations(t)
}
