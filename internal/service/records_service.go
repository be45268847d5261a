package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/feeding"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/geometry"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/repository"
)

// defaultListLimit pages record listings when the caller gives no limit.
const defaultListLimit = 50

// TankView is a stored tank plus its derived water volume. Volume is
// recomputed on every read so edits to the geometry can never leave a
// stale figure behind.
type TankView struct {
	domain.TankRecord
	VolumeLiters float64 `json:"volume_liters"`
}

func (s *PlanningService) tankView(tank *domain.TankRecord) *TankView {
	return &TankView{
		TankRecord:   *tank,
		VolumeLiters: geometry.VolumeLiters(tank.Geometry),
	}
}

// CreateTank stores a new tank record.
func (s *PlanningService) CreateTank(ctx context.Context, tank *domain.TankRecord) (*TankView, error) {
	if tank == nil || strings.TrimSpace(tank.Name) == "" {
		return nil, invalidArg("tank name is required")
	}

	if err := s.repo.AddTank(ctx, tank); err != nil {
		s.logger.WithError(err).WithField("tank_name", tank.Name).Error("failed to add tank")
		return nil, fmt.Errorf("failed to add tank: %w", err)
	}

	view := s.tankView(tank)
	s.logger.WithFields(logrus.Fields{
		"tank_id":       tank.ID,
		"tank_name":     tank.Name,
		"volume_liters": view.VolumeLiters,
	}).Info("tank created")

	return view, nil
}

// GetTank retrieves a single tank by ID.
func (s *PlanningService) GetTank(ctx context.Context, id string) (*TankView, error) {
	if id == "" {
		return nil, invalidArg("tank id is required")
	}

	tank, err := s.repo.GetTank(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("tank_id", id).Error("failed to get tank")
		return nil, err
	}
	return s.tankView(tank), nil
}

// UpdateTank replaces a stored tank record.
func (s *PlanningService) UpdateTank(ctx context.Context, tank *domain.TankRecord) (*TankView, error) {
	if tank == nil || tank.ID == "" {
		return nil, invalidArg("tank id is required")
	}
	if strings.TrimSpace(tank.Name) == "" {
		return nil, invalidArg("tank name is required")
	}

	if err := s.repo.UpdateTank(ctx, tank); err != nil {
		s.logger.WithError(err).WithField("tank_id", tank.ID).Error("failed to update tank")
		return nil, err
	}

	view := s.tankView(tank)
	s.logger.WithFields(logrus.Fields{
		"tank_id":       tank.ID,
		"volume_liters": view.VolumeLiters,
	}).Info("tank updated")

	return view, nil
}

// DeleteTank removes a tank record.
func (s *PlanningService) DeleteTank(ctx context.Context, id string) error {
	if id == "" {
		return invalidArg("tank id is required")
	}

	if err := s.repo.DeleteTank(ctx, id); err != nil {
		s.logger.WithError(err).WithField("tank_id", id).Error("failed to delete tank")
		return err
	}

	s.logger.WithField("tank_id", id).Info("tank deleted")
	return nil
}

// ListTanks returns all stored tanks with derived volumes.
func (s *PlanningService) ListTanks(ctx context.Context) ([]*TankView, error) {
	tanks, err := s.repo.ListTanks(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list tanks")
		return nil, fmt.Errorf("failed to list tanks: %w", err)
	}

	views := make([]*TankView, 0, len(tanks))
	for _, tank := range tanks {
		views = append(views, s.tankView(tank))
	}
	return views, nil
}

// CreateFeed stores a new feed record. An empty category is resolved
// from the feed name; an explicit one must be a known tag.
func (s *PlanningService) CreateFeed(ctx context.Context, feed *domain.FeedRecord) (*domain.FeedRecord, error) {
	if feed == nil || strings.TrimSpace(feed.Name) == "" {
		return nil, invalidArg("feed name is required")
	}
	if feed.OnHandGrams < 0 {
		return nil, invalidArg("on_hand_grams must not be negative")
	}
	if err := s.resolveCategory(feed); err != nil {
		return nil, err
	}

	if err := s.repo.AddFeed(ctx, feed); err != nil {
		s.logger.WithError(err).WithField("feed_name", feed.Name).Error("failed to add feed")
		return nil, fmt.Errorf("failed to add feed: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"feed_id":       feed.ID,
		"feed_name":     feed.Name,
		"category":      feed.Category,
		"on_hand_grams": feed.OnHandGrams,
	}).Info("feed created")

	return feed, nil
}

// GetFeed retrieves a single feed by ID.
func (s *PlanningService) GetFeed(ctx context.Context, id string) (*domain.FeedRecord, error) {
	if id == "" {
		return nil, invalidArg("feed id is required")
	}

	feed, err := s.repo.GetFeed(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("feed_id", id).Error("failed to get feed")
		return nil, err
	}
	return feed, nil
}

// UpdateFeed replaces a stored feed record.
func (s *PlanningService) UpdateFeed(ctx context.Context, feed *domain.FeedRecord) (*domain.FeedRecord, error) {
	if feed == nil || feed.ID == "" {
		return nil, invalidArg("feed id is required")
	}
	if strings.TrimSpace(feed.Name) == "" {
		return nil, invalidArg("feed name is required")
	}
	if feed.OnHandGrams < 0 {
		return nil, invalidArg("on_hand_grams must not be negative")
	}
	if err := s.resolveCategory(feed); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFeed(ctx, feed); err != nil {
		s.logger.WithError(err).WithField("feed_id", feed.ID).Error("failed to update feed")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"feed_id":       feed.ID,
		"on_hand_grams": feed.OnHandGrams,
	}).Info("feed updated")

	return feed, nil
}

// DeleteFeed removes a feed record.
func (s *PlanningService) DeleteFeed(ctx context.Context, id string) error {
	if id == "" {
		return invalidArg("feed id is required")
	}

	if err := s.repo.DeleteFeed(ctx, id); err != nil {
		s.logger.WithError(err).WithField("feed_id", id).Error("failed to delete feed")
		return err
	}

	s.logger.WithField("feed_id", id).Info("feed deleted")
	return nil
}

// ListFeeds pages through stored feeds. A zero limit defaults to 50.
func (s *PlanningService) ListFeeds(ctx context.Context, filters repository.ListFilters) ([]*domain.FeedRecord, int, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultListLimit
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	feeds, total, err := s.repo.ListFeeds(ctx, filters)
	if err != nil {
		s.logger.WithError(err).Error("failed to list feeds")
		return nil, 0, fmt.Errorf("failed to list feeds: %w", err)
	}
	return feeds, total, nil
}

// ListEmptyFeeds returns the feeds that are entirely out of stock.
func (s *PlanningService) ListEmptyFeeds(ctx context.Context) ([]*domain.FeedRecord, error) {
	feeds, err := s.repo.GetEmptyFeeds(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list empty feeds")
		return nil, fmt.Errorf("failed to list empty feeds: %w", err)
	}
	return feeds, nil
}

// PutSpeciesSize stores an authoritative adult size for a species,
// overriding the catalog figure in every later weight estimate.
func (s *PlanningService) PutSpeciesSize(ctx context.Context, record *domain.SpeciesSizeRecord) (*domain.SpeciesSizeRecord, error) {
	if record == nil || strings.TrimSpace(record.Species) == "" {
		return nil, invalidArg("species name is required")
	}
	if record.AdultSizeCm <= 0 {
		return nil, invalidArg("adult_size_cm must be positive")
	}

	if err := s.repo.PutSpeciesSize(ctx, record); err != nil {
		s.logger.WithError(err).WithField("species", record.Species).Error("failed to store species size")
		return nil, fmt.Errorf("failed to store species size: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"species":       record.Species,
		"adult_size_cm": record.AdultSizeCm,
	}).Info("species size stored")

	return record, nil
}

// ListSpeciesSizes returns all stored size overrides.
func (s *PlanningService) ListSpeciesSizes(ctx context.Context) ([]*domain.SpeciesSizeRecord, error) {
	records, err := s.repo.ListSpeciesSizes(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list species sizes")
		return nil, fmt.Errorf("failed to list species sizes: %w", err)
	}
	return records, nil
}

func (s *PlanningService) resolveCategory(feed *domain.FeedRecord) error {
	if feed.Category == "" {
		feed.Category = feeding.ResolveFeedCategory(feed.Name)
		return nil
	}
	parsed, ok := feeding.ParseFeedCategory(string(feed.Category))
	if !ok {
		return invalidArg("unknown feed category %q", feed.Category)
	}
	feed.Category = parsed
	return nil
}
