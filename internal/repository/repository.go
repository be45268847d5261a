package repository

import (
	"context"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
)

// PlannerRepository persists the records the planning service works
// from: tanks, feed inventory, and per-species adult-size overrides.
type PlannerRepository interface {
	// Tank operations
	AddTank(ctx context.Context, tank *domain.TankRecord) error
	GetTank(ctx context.Context, id string) (*domain.TankRecord, error)
	UpdateTank(ctx context.Context, tank *domain.TankRecord) error
	DeleteTank(ctx context.Context, id string) error
	ListTanks(ctx context.Context) ([]*domain.TankRecord, error)

	// Feed inventory operations
	AddFeed(ctx context.Context, feed *domain.FeedRecord) error
	GetFeed(ctx context.Context, id string) (*domain.FeedRecord, error)
	UpdateFeed(ctx context.Context, feed *domain.FeedRecord) error
	DeleteFeed(ctx context.Context, id string) error
	ListFeeds(ctx context.Context, filters ListFilters) ([]*domain.FeedRecord, int, error)
	GetEmptyFeeds(ctx context.Context) ([]*domain.FeedRecord, error)

	// Species adult-size overrides, keyed by normalized species name.
	PutSpeciesSize(ctx context.Context, record *domain.SpeciesSizeRecord) error
	GetSpeciesSize(ctx context.Context, species string) (*domain.SpeciesSizeRecord, error)
	ListSpeciesSizes(ctx context.Context) ([]*domain.SpeciesSizeRecord, error)

	Close() error
}

// ListFilters narrows and pages feed listings.
type ListFilters struct {
	EmptyOnly bool
	Category  domain.FeedCategory
	Limit     int
	Offset    int
}

func (f ListFilters) matches(feed *domain.FeedRecord) bool {
	if f.EmptyOnly && !feed.IsEmpty() {
		return false
	}
	if f.Category != "" && feed.Category != f.Category {
		return false
	}
	return true
}
