// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/mergington/activities/internal/adapters/mq/queue"
	workerpool "github.com/mergington/activities/internal/adapters/mq/worker"
	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/internal/domain/seed"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize   = 1024
	defaultWorkerCount = 2
	defaultJournalSize = 1000
)

// Service implements the API dependencies for the activity directory.
type Service struct {
	mu sync.RWMutex

	// Core components
	directory  repository.Store
	journal    *repository.Journal
	auditQueue eventqueue.Queue
	workerPool *workerpool.Pool

	// Configuration
	queueSize   int
	workerCount int
	journalSize int
	catalog     func() map[string]model.Activity

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithQueueSize sets the capacity of the audit queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of audit worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithJournalSize sets the number of audit records retained.
func WithJournalSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.journalSize = size
		}
	}
}

// WithSeed replaces the default activity catalog.
func WithSeed(catalog func() map[string]model.Activity) Option {
	return func(s *Service) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:   defaultQueueSize,
		workerCount: defaultWorkerCount,
		journalSize: defaultJournalSize,
		catalog:     seed.Catalog,
		logger:      nil, // replaced on Start when unset
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting activities service...")

	s.directory = repository.NewRosterStore(ctx, repository.WithSeed(s.catalog))
	s.journal = repository.NewJournal(repository.WithJournalCapacity(s.journalSize))
	s.auditQueue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))

	s.workerPool = workerpool.NewPool(s.workerCount, s.auditQueue, s.journal)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "activities service started",
		logger.Int("activities", s.directory.Count(ctx)),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
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

	ctx := context.Background()
	s.logger.Info(ctx, "stopping activities service...")

	if q, ok := s.auditQueue.(*eventqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "activities service stopped")
}

// List returns the full activity directory.
func (s *Service) List(ctx context.Context) (map[string]model.Activity, error) {
	return s.directory.List(ctx), nil
}

// Signup registers email for the named activity and publishes an audit
// record on success.
func (s *Service) Signup(ctx context.Context, activity, email string) error {
	if err := s.directory.Signup(ctx, activity, email); err != nil {
		metrics.RecordRegistrationError("signup", errorReason(err))
		return err
	}

	metrics.RecordSignup()
	s.publishAudit(ctx, activity, email, model.ActionSignup)
	return nil
}

// Unregister removes email from the named activity and publishes an
// audit record on success.
func (s *Service) Unregister(ctx context.Context, activity, email string) error {
	if err := s.directory.Unregister(ctx, activity, email); err != nil {
		metrics.RecordRegistrationError("unregister", errorReason(err))
		return err
	}

	metrics.RecordUnregister()
	s.publishAudit(ctx, activity, email, model.ActionUnregister)
	return nil
}

// Reset reseeds the directory. Intended for tests.
func (s *Service) Reset(ctx context.Context) {
	s.directory.Reset(ctx)
}

// publishAudit enqueues a post-commit audit record. Best-effort: a full
// queue drops the record but never fails the operation.
func (s *Service) publishAudit(ctx context.Context, activity, email string, action model.Action) {
	reg := model.Registration{
		ID:       uuid.New().String(),
		Activity: activity,
		Email:    email,
		Action:   action,
		At:       time.Now().UTC(),
	}

	if !s.auditQueue.Enqueue(ctx, reg) {
		s.logger.Warn(ctx, "audit queue full, dropping registration record",
			logger.String("activity", activity),
			logger.String("action", string(action)),
		)
	}
}

// AuditTrail returns up to n of the most recent audit records, newest
// first. Records arrive asynchronously after the operation commits.
func (s *Service) AuditTrail(ctx context.Context, n int) []model.Registration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.journal == nil {
		return nil
	}
	return s.journal.Recent(ctx, n)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}

	if s.started {
		stats["activities"] = s.directory.Count(ctx)
		stats["participants"] = s.directory.ParticipantCount(ctx)
		stats["journalLength"] = s.journal.Len(ctx)
		stats["queueLength"] = s.auditQueue.Len(ctx)
	}

	return stats
}

// errorReason maps store errors onto metric labels.
func errorReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrAlreadySignedUp), errors.Is(err, repository.ErrNotSignedUp):
		return "conflict"
	default:
		return "unknown"
	}
}
