package item

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service handles item operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new item service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Health reports the service as healthy with the current server time.
func (s *Service) Health(_ context.Context) Health {
	return Health{Status: StatusHealthy, Timestamp: s.now().UTC()}
}

// List returns every item ordered by ID ascending.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w: %w", ErrStoreFailure, err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Create stores a new item. Input is not validated; an empty name is
// accepted and a missing one is left to the schema to reject.
func (s *Service) Create(ctx context.Context, in NewItem) (*Item, error) {
	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w: %w", ErrStoreFailure, err)
	}
	return created, nil
}

// Delete removes the item with the given ID. Deleting an ID that does not
// exist succeeds.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting item %d: %w: %w", id, ErrStoreFailure, err)
	}
	return nil
}

// Bootstrap creates the items table if needed and seeds it when empty.
// It reports whether seed data was inserted.
func (s *Service) Bootstrap(ctx context.Context) (bool, error) {
	if err := s.repo.EnsureSchema(ctx); err != nil {
		return false, fmt.Errorf("ensuring schema: %w: %w", ErrStoreFailure, err)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("counting items: %w: %w", ErrStoreFailure, err)
	}
	if count > 0 {
		return false, nil
	}

	if err := s.repo.CreateMany(ctx, SeedItems()); err != nil {
		return false, fmt.Errorf("inserting sample data: %w: %w", ErrStoreFailure, err)
	}
	s.logger.Info("sample data inserted")
	return true, nil
}
