// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/critiq/internal/adapters/dataset"
	"github.com/okian/critiq/internal/adapters/repository"
	"github.com/okian/critiq/internal/domain/features"
	"github.com/okian/critiq/internal/domain/game"
	"github.com/okian/critiq/internal/domain/predictor"
	"github.com/okian/critiq/internal/domain/types"
	"github.com/okian/critiq/pkg/logger"
	"github.com/okian/critiq/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// Service implements the API dependencies for the prediction system.
type Service struct {
	mu sync.RWMutex

	// Configuration
	datasetPath           string
	datasetFormat         dataset.Format
	modelPath             string
	watchDataset          bool
	manufacturerOverrides map[string]string

	// Core components. The store pointer is swapped wholesale on reload;
	// in-flight predictions keep reading their snapshot.
	store     atomic.Pointer[repository.AggregateStore]
	model     *predictor.Model
	assembler *features.Assembler
	watcher   *dataset.Watcher

	// State
	started   bool
	startTime time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDatasetPath sets the reference dataset location.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.datasetPath = path
		}
	}
}

// WithDatasetFormat forces a dataset loader.
func WithDatasetFormat(format string) Option {
	return func(s *Service) {
		if format != "" {
			s.datasetFormat = dataset.Format(format)
		}
	}
}

// WithModelPath sets the model artifact location.
func WithModelPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.modelPath = path
		}
	}
}

// WithWatchDataset enables hot reload of the reference table.
func WithWatchDataset(watch bool) Option {
	return func(s *Service) {
		s.watchDataset = watch
	}
}

// WithManufacturerOverrides adds platform -> manufacturer mappings.
func WithManufacturerOverrides(overrides map[string]string) Option {
	return func(s *Service) {
		s.manufacturerOverrides = overrides
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		datasetPath:   "data/metacritic_features.csv",
		datasetFormat: dataset.FormatAuto,
		modelPath:     "data/model.json",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// liveTable adapts the swappable store pointer to the assembler's Table
// interface, so every lookup reads the current snapshot.
type liveTable struct {
	store *atomic.Pointer[repository.AggregateStore]
}

func (t *liveTable) DeveloperAvgScore(ctx context.Context, developer string) (float64, bool) {
	return t.store.Load().DeveloperAvgScore(ctx, developer)
}

func (t *liveTable) PlatformAge(ctx context.Context, platform string) (float64, bool) {
	return t.store.Load().PlatformAge(ctx, platform)
}

func (t *liveTable) PlatformGenreEncoded(ctx context.Context, platform, genre string) (float64, bool) {
	return t.store.Load().PlatformGenreEncoded(ctx, platform, genre)
}

func (t *liveTable) GenreEncoded(ctx context.Context, genre string) (float64, bool) {
	return t.store.Load().GenreEncoded(ctx, genre)
}

func (t *liveTable) PlatformEncoded(ctx context.Context, platform string) (float64, bool) {
	return t.store.Load().PlatformEncoded(ctx, platform)
}

func (t *liveTable) ManufacturerEncoded(ctx context.Context, manufacturer string) (float64, bool) {
	return t.store.Load().ManufacturerEncoded(ctx, manufacturer)
}

func (t *liveTable) GenrePopularity(ctx context.Context, genre string) (float64, bool) {
	return t.store.Load().GenrePopularity(ctx, genre)
}

// Start loads the model and the reference table and, when configured,
// begins watching the dataset for changes.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting prediction service...",
		logger.String("dataset", s.datasetPath),
		logger.String("model", s.modelPath),
	)

	model, err := predictor.Load(ctx, s.modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	s.model = model

	if err := s.reloadTable(ctx); err != nil {
		return fmt.Errorf("load reference table: %w", err)
	}

	s.assembler = features.NewAssembler(
		&liveTable{store: &s.store},
		features.WithManufacturerOverrides(s.manufacturerOverrides),
	)

	if s.watchDataset {
		w, err := dataset.NewWatcher(s.datasetPath, s.reloadTable,
			dataset.WithWatcherLogger(s.logger),
		)
		if err != nil {
			return fmt.Errorf("create dataset watcher: %w", err)
		}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("start dataset watcher: %w", err)
		}
		s.watcher = w
	}

	s.started = true
	s.startTime = time.Now()
	s.logger.Info(ctx, "prediction service started",
		logger.String("model", s.model.Name()),
		logger.Int("features", len(s.model.Features())),
		logger.Int("datasetRows", s.store.Load().Count(ctx)),
		logger.Bool("watching", s.watchDataset),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping prediction service...")

	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.logger.Warn(context.Background(), "failed to close dataset watcher", logger.Error(err))
		}
		s.watcher = nil
	}

	s.started = false
	s.logger.Info(context.Background(), "prediction service stopped")
}

// reloadTable loads the dataset, rebuilds the aggregate index and swaps
// it in atomically. Used both at startup and by the watcher.
func (s *Service) reloadTable(ctx context.Context) error {
	start := time.Now()

	rows, err := dataset.Load(ctx, s.datasetPath, s.datasetFormat)
	if err != nil {
		return err
	}
	store, err := repository.NewAggregateStore(ctx, rows)
	if err != nil {
		return err
	}
	s.store.Store(store)

	opts := store.Options(ctx)
	metrics.UpdateDatasetRows(store.Count(ctx))
	metrics.UpdateDatasetCategoryCount("developer", len(opts.Developers))
	metrics.UpdateDatasetCategoryCount("platform", len(opts.Platforms))
	metrics.UpdateDatasetCategoryCount("genre", len(opts.Genres))
	metrics.UpdateDatasetCategoryCount("manufacturer", len(opts.Manufacturers))
	metrics.RecordDatasetReload(float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond)

	return nil
}

// Predict validates the input, assembles the feature vector in the
// model's declared order and returns the predicted user score.
// Validation failures surface as *game.ValidationError; everything else
// is wrapped as ErrPrediction.
func (s *Service) Predict(ctx context.Context, in game.Input) (types.Prediction, error) {
	s.mu.RLock()
	model, asm, started := s.model, s.assembler, s.started
	s.mu.RUnlock()

	if !started {
		return types.Prediction{}, ErrNotStarted
	}

	assemblyStart := time.Now()
	vec, err := asm.Assemble(ctx, in, model.Features())
	if err != nil {
		if verr, ok := errAsValidation(err); ok {
			metrics.RecordValidationRejection()
			return types.Prediction{}, verr
		}
		metrics.RecordPredictionError()
		return types.Prediction{}, fmt.Errorf("%w: %w", ErrPrediction, err)
	}
	metrics.RecordAssemblyLatency(float64(time.Since(assemblyStart).Nanoseconds()) / nanosecondsPerMillisecond)

	inferenceStart := time.Now()
	score, err := model.Predict(ctx, vec)
	if err != nil {
		metrics.RecordPredictionError()
		return types.Prediction{}, fmt.Errorf("%w: %w", ErrPrediction, err)
	}
	metrics.RecordInferenceLatency(float64(time.Since(inferenceStart).Nanoseconds()) / nanosecondsPerMillisecond)
	metrics.RecordPrediction()

	names := vec.Names()
	values := vec.Values()
	echoed := make([]types.FeatureValue, len(names))
	for i, name := range names {
		echoed[i] = types.FeatureValue{Name: name, Value: values[i]}
	}

	s.logger.Debug(ctx, "prediction served",
		logger.String("developer", in.Developer),
		logger.String("platform", in.Platform),
		logger.String("genre", in.Genre),
		logger.Float64("score", score),
	)

	return types.Prediction{
		Score:    score,
		Model:    model.Name(),
		Features: echoed,
	}, nil
}

// errAsValidation unwraps a validation error if present.
func errAsValidation(err error) (*game.ValidationError, bool) {
	var verr *game.ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// Options lists the category values present in the loaded dataset.
func (s *Service) Options(ctx context.Context) (types.Options, error) {
	store := s.store.Load()
	if store == nil {
		return types.Options{}, ErrNotStarted
	}
	return store.Options(ctx), nil
}

// Insights summarizes the loaded dataset.
func (s *Service) Insights(ctx context.Context) (types.Insights, error) {
	store := s.store.Load()
	if store == nil {
		return types.Insights{}, ErrNotStarted
	}
	return store.Insights(ctx), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":  s.started,
		"watching": s.watchDataset,
	}

	if s.started {
		store := s.store.Load()
		opts := store.Options(ctx)

		stats["datasetRows"] = store.Count(ctx)
		stats["developers"] = len(opts.Developers)
		stats["platforms"] = len(opts.Platforms)
		stats["genres"] = len(opts.Genres)
		stats["manufacturers"] = len(opts.Manufacturers)
		stats["model"] = s.model.Name()
		stats["modelVersion"] = s.model.Version()
		stats["modelFeatures"] = len(s.model.Features())
		stats["uptimeSeconds"] = int(time.Since(s.startTime).Seconds())

		metrics.UpdateDatasetRows(store.Count(ctx))
	}

	return stats
}
