package main

import (
	"context"
	"time"

	"agrilink/conditions"
	"agrilink/farms"
	"agrilink/questions"
	"agrilink/suggest"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type App struct {
	cfg    Config
	logger *zap.Logger
	mongo  *mongo.Client

	users userStore

	farms       *farms.Service
	reports     *conditions.Service
	suggestions *suggest.Service
	questions   *questions.Service
}

func newApp(ctx context.Context, cfg Config, logger *zap.Logger) (*App, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB)

	farmRepo := farms.NewMongoRepository(db.Collection("farms"))
	reportStore := conditions.NewMongoStore(db.Collection("reports"))
	suggestionStore := suggest.NewMongoStore(db.Collection("suggestions"))
	questionStore := questions.NewMongoStore(db.Collection("questions"))
	accountStore := &mongoUsers{coll: db.Collection("users")}

	var completer suggest.Completer
	if cfg.GeminiAPIKey != "" {
		gc, err := suggest.NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		completer = gc
	} else {
		logger.Warn("GEMINI_API_KEY not set, crop suggestions disabled")
	}

	app := &App{
		cfg:    cfg,
		logger: logger,
		mongo:  client,
		users:  accountStore,
		farms:  farms.NewService(farmRepo, logger),
		reports: conditions.NewService(reportStore, farmRepo, logger,
			conditions.WithPlaceholderFarmID(cfg.PlaceholderFarmID),
			conditions.WithMaxLimit(cfg.PageLimitMax)),
		suggestions: suggest.NewService(suggestionStore, farmRepo, completer, logger),
		questions:   questions.NewService(questionStore, logger),
	}

	// Indexes
	if err := accountStore.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	if err := questionStore.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	if err := farmRepo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	if err := reportStore.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	if err := suggestionStore.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// timeout bounds store I/O for one request.
func (a *App) timeout(ctx context.Context) (context.Context, context.CancelFunc) {
	d := a.cfg.RequestTimeout
	if d <= 0 {
		d = 5 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

func (a *App) close(ctx context.Context) { _ = a.mongo.Disconnect(ctx) }
