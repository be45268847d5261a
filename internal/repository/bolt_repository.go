package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/catalog"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
)

const (
	tanksBucket   = "tanks"
	feedsBucket   = "feeds"
	speciesBucket = "species_sizes"
)

// BoltPlannerRepository implements PlannerRepository using BoltDB
// (bbolt). BoltDB keeps everything in one compact file, which suits the
// small record counts a single household produces.
type BoltPlannerRepository struct {
	db *bbolt.DB
}

// NewBoltPlannerRepository opens (creating if needed) a BoltDB file.
func NewBoltPlannerRepository(dbPath string) (*BoltPlannerRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent directory for bolt db: %w", err)
	}

	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{
		Timeout:      1 * time.Second,
		NoGrowSync:   false,
		FreelistType: bbolt.FreelistMapType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range []string{tanksBucket, feedsBucket, speciesBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &BoltPlannerRepository{db: db}, nil
}

// Close closes the database connection.
func (r *BoltPlannerRepository) Close() error {
	return r.db.Close()
}

// AddTank stores a new tank record, assigning an ID when missing.
func (r *BoltPlannerRepository) AddTank(ctx context.Context, tank *domain.TankRecord) error {
	if tank.ID == "" {
		tank.ID = uuid.New().String()
	}
	stampNewTank(tank)

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(tanksBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", tanksBucket)
		}

		data, err := json.Marshal(tank)
		if err != nil {
			return fmt.Errorf("failed to marshal tank: %w", err)
		}
		return bucket.Put([]byte(tank.ID), data)
	})
}

// GetTank retrieves a tank record by ID.
func (r *BoltPlannerRepository) GetTank(ctx context.Context, id string) (*domain.TankRecord, error) {
	var tank *domain.TankRecord

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(tanksBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", tanksBucket)
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return &domain.TankNotFoundError{ID: id}
		}

		var found domain.TankRecord
		if err := json.Unmarshal(data, &found); err != nil {
			return fmt.Errorf("failed to unmarshal tank: %w", err)
		}
		tank = &found
		return nil
	})

	return tank, err
}

// UpdateTank replaces an existing tank record.
func (r *BoltPlannerRepository) UpdateTank(ctx context.Context, tank *domain.TankRecord) error {
	tank.UpdatedAt = time.Now()

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(tanksBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", tanksBucket)
		}

		if bucket.Get([]byte(tank.ID)) == nil {
			return &domain.TankNotFoundError{ID: tank.ID}
		}

		data, err := json.Marshal(tank)
		if err != nil {
			return fmt.Errorf("failed to marshal tank: %w", err)
		}
		return bucket.Put([]byte(tank.ID), data)
	})
}

// DeleteTank removes a tank record.
func (r *BoltPlannerRepository) DeleteTank(ctx context.Context, id string) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(tanksBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", tanksBucket)
		}

		if bucket.Get([]byte(id)) == nil {
			return &domain.TankNotFoundError{ID: id}
		}
		return bucket.Delete([]byte(id))
	})
}

// ListTanks returns every stored tank record.
func (r *BoltPlannerRepository) ListTanks(ctx context.Context) ([]*domain.TankRecord, error) {
	var tanks []*domain.TankRecord

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(tanksBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", tanksBucket)
		}

		cursor := bucket.Cursor()
		for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
			var tank domain.TankRecord
			if err := json.Unmarshal(value, &tank); err != nil {
				continue // Skip malformed records
			}
			tanks = append(tanks, &tank)
		}
		return nil
	})

	return tanks, err
}

// AddFeed stores a new feed record, assigning an ID when missing.
func (r *BoltPlannerRepository) AddFeed(ctx context.Context, feed *domain.FeedRecord) error {
	if feed.ID == "" {
		feed.ID = uuid.New().String()
	}
	stampNewFeed(feed)

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(feedsBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", feedsBucket)
		}

		data, err := json.Marshal(feed)
		if err != nil {
			return fmt.Errorf("failed to marshal feed: %w", err)
		}
		return bucket.Put([]byte(feed.ID), data)
	})
}

// GetFeed retrieves a feed record by ID.
func (r *BoltPlannerRepository) GetFeed(ctx context.Context, id string) (*domain.FeedRecord, error) {
	var feed *domain.FeedRecord

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(feedsBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", feedsBucket)
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return &domain.FeedNotFoundError{ID: id}
		}

		var found domain.FeedRecord
		if err := json.Unmarshal(data, &found); err != nil {
			return fmt.Errorf("failed to unmarshal feed: %w", err)
		}
		feed = &found
		return nil
	})

	return feed, err
}

// UpdateFeed replaces an existing feed record.
func (r *BoltPlannerRepository) UpdateFeed(ctx context.Context, feed *domain.FeedRecord) error {
	feed.UpdatedAt = time.Now()

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(feedsBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", feedsBucket)
		}

		if bucket.Get([]byte(feed.ID)) == nil {
			return &domain.FeedNotFoundError{ID: feed.ID}
		}

		data, err := json.Marshal(feed)
		if err != nil {
			return fmt.Errorf("failed to marshal feed: %w", err)
		}
		return bucket.Put([]byte(feed.ID), data)
	})
}

// DeleteFeed removes a feed record.
func (r *BoltPlannerRepository) DeleteFeed(ctx context.Context, id string) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(feedsBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", feedsBucket)
		}

		if bucket.Get([]byte(id)) == nil {
			return &domain.FeedNotFoundError{ID: id}
		}
		return bucket.Delete([]byte(id))
	})
}

// ListFeeds returns feed records matching the filters along with the
// total match count before pagination.
func (r *BoltPlannerRepository) ListFeeds(ctx context.Context, filters ListFilters) ([]*domain.FeedRecord, int, error) {
	var feeds []*domain.FeedRecord
	var totalCount int

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(feedsBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", feedsBucket)
		}

		cursor := bucket.Cursor()
		for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
			var feed domain.FeedRecord
			if err := json.Unmarshal(value, &feed); err != nil {
				continue // Skip malformed records
			}

			if !filters.matches(&feed) {
				continue
			}

			totalCount++
			if filters.Offset > 0 && totalCount <= filters.Offset {
				continue
			}
			if filters.Limit > 0 && len(feeds) >= filters.Limit {
				continue
			}
			feeds = append(feeds, &feed)
		}
		return nil
	})

	return feeds, totalCount, err
}

// GetEmptyFeeds returns feeds with nothing left on hand.
func (r *BoltPlannerRepository) GetEmptyFeeds(ctx context.Context) ([]*domain.FeedRecord, error) {
	feeds, _, err := r.ListFeeds(ctx, ListFilters{EmptyOnly: true})
	return feeds, err
}

// PutSpeciesSize stores or replaces an adult-size override for a
// species. Records are keyed by the normalized species name.
func (r *BoltPlannerRepository) PutSpeciesSize(ctx context.Context, record *domain.SpeciesSizeRecord) error {
	record.UpdatedAt = time.Now()
	key := catalog.Normalize(record.Species)

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(speciesBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", speciesBucket)
		}

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal species size: %w", err)
		}
		return bucket.Put([]byte(key), data)
	})
}

// GetSpeciesSize retrieves the adult-size override for a species.
func (r *BoltPlannerRepository) GetSpeciesSize(ctx context.Context, species string) (*domain.SpeciesSizeRecord, error) {
	var record *domain.SpeciesSizeRecord
	key := catalog.Normalize(species)

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(speciesBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", speciesBucket)
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return &domain.SpeciesSizeNotFoundError{Species: species}
		}

		var found domain.SpeciesSizeRecord
		if err := json.Unmarshal(data, &found); err != nil {
			return fmt.Errorf("failed to unmarshal species size: %w", err)
		}
		record = &found
		return nil
	})

	return record, err
}

// ListSpeciesSizes returns every stored adult-size override.
func (r *BoltPlannerRepository) ListSpeciesSizes(ctx context.Context) ([]*domain.SpeciesSizeRecord, error) {
	var records []*domain.SpeciesSizeRecord

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(speciesBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", speciesBucket)
		}

		cursor := bucket.Cursor()
		for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
			var record domain.SpeciesSizeRecord
			if err := json.Unmarshal(value, &record); err != nil {
				continue
			}
			records = append(records, &record)
		}
		return nil
	})

	return records, err
}

func stampNewTank(tank *domain.TankRecord) {
	now := time.Now()
	if tank.CreatedAt.IsZero() {
		tank.CreatedAt = now
	}
	tank.UpdatedAt = now
}

func stampNewFeed(feed *domain.FeedRecord) {
	now := time.Now()
	if feed.CreatedAt.IsZero() {
		feed.CreatedAt = now
	}
	feed.UpdatedAt = now
}
