package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/catalog"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
)

const (
	tankPrefix    = "tank:"
	feedPrefix    = "feed:"
	speciesPrefix = "species:"
)

// BadgerPlannerRepository implements PlannerRepository using BadgerDB.
type BadgerPlannerRepository struct {
	db *badger.DB
}

// NewBadgerPlannerRepository opens a BadgerDB directory.
func NewBadgerPlannerRepository(dbPath string) (*BadgerPlannerRepository, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Disable badger logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	return &BadgerPlannerRepository{db: db}, nil
}

// Close closes the database connection.
func (r *BadgerPlannerRepository) Close() error {
	return r.db.Close()
}

// AddTank stores a new tank record, assigning an ID when missing.
func (r *BadgerPlannerRepository) AddTank(ctx context.Context, tank *domain.TankRecord) error {
	if tank.ID == "" {
		tank.ID = uuid.New().String()
	}
	stampNewTank(tank)

	return r.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(tank)
		if err != nil {
			return fmt.Errorf("failed to marshal tank: %w", err)
		}
		return txn.Set([]byte(tankPrefix+tank.ID), data)
	})
}

// GetTank retrieves a tank record by ID.
func (r *BadgerPlannerRepository) GetTank(ctx context.Context, id string) (*domain.TankRecord, error) {
	var tank *domain.TankRecord

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tankPrefix + id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return &domain.TankNotFoundError{ID: id}
			}
			return err
		}

		return item.Value(func(val []byte) error {
			tank = &domain.TankRecord{}
			return json.Unmarshal(val, tank)
		})
	})

	return tank, err
}

// UpdateTank replaces an existing tank record.
func (r *BadgerPlannerRepository) UpdateTank(ctx context.Context, tank *domain.TankRecord) error {
	tank.UpdatedAt = time.Now()

	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(tankPrefix + tank.ID)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return &domain.TankNotFoundError{ID: tank.ID}
			}
			return err
		}

		data, err := json.Marshal(tank)
		if err != nil {
			return fmt.Errorf("failed to marshal tank: %w", err)
		}
		return txn.Set(key, data)
	})
}

// DeleteTank removes a tank record.
func (r *BadgerPlannerRepository) DeleteTank(ctx context.Context, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(tankPrefix + id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return &domain.TankNotFoundError{ID: id}
			}
			return err
		}
		return txn.Delete(key)
	})
}

// ListTanks returns every stored tank record.
func (r *BadgerPlannerRepository) ListTanks(ctx context.Context) ([]*domain.TankRecord, error) {
	var tanks []*domain.TankRecord

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 10
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(tankPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var tank domain.TankRecord
				if err := json.Unmarshal(val, &tank); err != nil {
					return err
				}
				tanks = append(tanks, &tank)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return tanks, err
}

// AddFeed stores a new feed record, assigning an ID when missing.
func (r *BadgerPlannerRepository) AddFeed(ctx context.Context, feed *domain.FeedRecord) error {
	if feed.ID == "" {
		feed.ID = uuid.New().String()
	}
	stampNewFeed(feed)

	return r.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(feed)
		if err != nil {
			return fmt.Errorf("failed to marshal feed: %w", err)
		}
		return txn.Set([]byte(feedPrefix+feed.ID), data)
	})
}

// GetFeed retrieves a feed record by ID.
func (r *BadgerPlannerRepository) GetFeed(ctx context.Context, id string) (*domain.FeedRecord, error) {
	var feed *domain.FeedRecord

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(feedPrefix + id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return &domain.FeedNotFoundError{ID: id}
			}
			return err
		}

		return item.Value(func(val []byte) error {
			feed = &domain.FeedRecord{}
			return json.Unmarshal(val, feed)
		})
	})

	return feed, err
}

// UpdateFeed replaces an existing feed record.
func (r *BadgerPlannerRepository) UpdateFeed(ctx context.Context, feed *domain.FeedRecord) error {
	feed.UpdatedAt = time.Now()

	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(feedPrefix + feed.ID)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return &domain.FeedNotFoundError{ID: feed.ID}
			}
			return err
		}

		data, err := json.Marshal(feed)
		if err != nil {
			return fmt.Errorf("failed to marshal feed: %w", err)
		}
		return txn.Set(key, data)
	})
}

// DeleteFeed removes a feed record.
func (r *BadgerPlannerRepository) DeleteFeed(ctx context.Context, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(feedPrefix + id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return &domain.FeedNotFoundError{ID: id}
			}
			return err
		}
		return txn.Delete(key)
	})
}

// ListFeeds returns feed records matching the filters along with the
// total match count before pagination.
func (r *BadgerPlannerRepository) ListFeeds(ctx context.Context, filters ListFilters) ([]*domain.FeedRecord, int, error) {
	var feeds []*domain.FeedRecord

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 10
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(feedPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var feed domain.FeedRecord
				if err := json.Unmarshal(val, &feed); err != nil {
					return err
				}
				if filters.matches(&feed) {
					feeds = append(feeds, &feed)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	total := len(feeds)

	if filters.Offset > 0 {
		if filters.Offset >= len(feeds) {
			feeds = []*domain.FeedRecord{}
		} else {
			feeds = feeds[filters.Offset:]
		}
	}
	if filters.Limit > 0 && filters.Limit < len(feeds) {
		feeds = feeds[:filters.Limit]
	}

	return feeds, total, err
}

// GetEmptyFeeds returns feeds with nothing left on hand.
func (r *BadgerPlannerRepository) GetEmptyFeeds(ctx context.Context) ([]*domain.FeedRecord, error) {
	feeds, _, err := r.ListFeeds(ctx, ListFilters{EmptyOnly: true})
	return feeds, err
}

// PutSpeciesSize stores or replaces an adult-size override for a
// species. Records are keyed by the normalized species name.
func (r *BadgerPlannerRepository) PutSpeciesSize(ctx context.Context, record *domain.SpeciesSizeRecord) error {
	record.UpdatedAt = time.Now()
	key := speciesPrefix + catalog.Normalize(record.Species)

	return r.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal species size: %w", err)
		}
		return txn.Set([]byte(key), data)
	})
}

// GetSpeciesSize retrieves the adult-size override for a species.
func (r *BadgerPlannerRepository) GetSpeciesSize(ctx context.Context, species string) (*domain.SpeciesSizeRecord, error) {
	var record *domain.SpeciesSizeRecord
	key := speciesPrefix + catalog.Normalize(species)

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return &domain.SpeciesSizeNotFoundError{Species: species}
			}
			return err
		}

		return item.Value(func(val []byte) error {
			record = &domain.SpeciesSizeRecord{}
			return json.Unmarshal(val, record)
		})
	})

	return record, err
}

// ListSpeciesSizes returns every stored adult-size override.
func (r *BadgerPlannerRepository) ListSpeciesSizes(ctx context.Context) ([]*domain.SpeciesSizeRecord, error) {
	var records []*domain.SpeciesSizeRecord

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 10
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(speciesPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record domain.SpeciesSizeRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				records = append(records, &record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return records, err
}
