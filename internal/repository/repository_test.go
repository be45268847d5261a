package repository

import (
	"context"
	"errors"
	"iter"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
)

// createTestRepositories yields one repository per backend so every
// test runs against both badger and bolt.
func createTestRepositories(t *testing.T) iter.Seq2[PlannerRepository, func()] {
	return func(yield func(PlannerRepository, func()) bool) {
		badgerRepo, err := NewBadgerPlannerRepository(filepath.Join(t.TempDir(), "badger"))
		if err != nil {
			t.Fatalf("Failed to create badger repository: %v", err)
		}
		if !yield(badgerRepo, func() { badgerRepo.Close() }) {
			badgerRepo.Close()
			return
		}

		boltRepo, err := NewBoltPlannerRepository(filepath.Join(t.TempDir(), "planner.bolt"))
		if err != nil {
			t.Fatalf("Failed to create bolt repository: %v", err)
		}
		if !yield(boltRepo, func() { boltRepo.Close() }) {
			boltRepo.Close()
		}
	}
}

func testTank() *domain.TankRecord {
	return &domain.TankRecord{
		Name: "Living Room Tank",
		Geometry: domain.TankGeometry{
			Shape:  domain.ShapeRectangle,
			Length: 100,
			Width:  40,
			Height: 25,
			Unit:   domain.UnitCentimeters,
		},
		Metadata: map[string]string{"location": "living room"},
	}
}

func TestRepositoryAddTank(t *testing.T) {
	for repo, cleanup := range createTestRepositories(t) {
		defer cleanup()

		ctx := context.Background()
		tank := testTank()

		if err := repo.AddTank(ctx, tank); err != nil {
			t.Fatalf("Failed to add tank: %v", err)
		}
		if tank.ID == "" {
			t.Error("Expected tank ID to be generated")
		}
		if tank.CreatedAt.IsZero() || tank.UpdatedAt.IsZero() {
			t.Error("Expected timestamps to be stamped")
		}
	}
}

func TestRepositoryGetTank(t *testing.T) {
	for repo, cleanup := range createTestRepositories(t) {
		defer cleanup()

		ctx := context.Background()
		original := testTank()

		if err := repo.AddTank(ctx, original); err != nil {
			t.Fatalf("Failed to add tank: %v", err)
		}

		retrieved, err := repo.GetTank(ctx, original.ID)
		if err != nil {
			t.Fatalf("Failed to get tank: %v", err)
		}

		if diff := cmp.Diff(original, retrieved); diff != "" {
			t.Errorf("Retrieved tank differs from stored (-want +got):\n%s", diff)
		}
	}
}

func TestRepositoryGetTankNotFound(t *testing.T) {
	for repo, cleanup := range createTestRepositories(t) {
		defer cleanup()

		_, err := repo.GetTank(context.Background(), "missing-id")
		var notFound *domain.TankNotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("Expected TankNotFoundError, got %v", err)
		}
	}
}

func TestRepositoryUpdateTank(t *testing.T) {
	for repo, cleanup := range createTestRepositories(t) {
		defer cleanup()

		ctx := context.Background()
		tank := testTank()

		if err := repo.AddTank(ctx, tank); err != nil {
			t.Fatalf("Failed to add tank: %v", err)
		}

		tank.Name = "Bedroom Tank"
		tank.Geometry.Shape = domain.ShapeCylinder
		if err := repo.UpdateTank(ctx, tank); err != nil {
			t.Fatalf("Failed to update tank: %v", err)
		}

		retrieved, err := repo.GetTank(ctx, tank.ID)
		if err != nil {
			t.Fatalf("Failed to get updated tank: %v", err)
		}
		if retrieved.Name != "Bedroom Tank" {
			t.Errorf("Expected updated name, got %s", retrieved.Name)
		}
		if retrieved.Geometry.Shape != domain.ShapeCylinder {
			t.Errorf("Expected updated shape, got %s", retrieved.Geometry.Shape)
		}

		missing := testTank()
		missing.ID = "missing-id"
		var notFound *domain.TankNotFoundError
		if err := repo.UpdateTank(ctx, missing); !errors.As(err, &notFound) {
			t.Errorf("Expected TankNotFoundError, got %v", err)
		}
	}
}

func TestRepositoryDeleteTank(t *testing.T) {
	for repo, cleanup := range createTestRepositories(t) {
		defer cleanup()

		ctx := context.Background()
		tank := testTank()

		if err := repo.AddTank(ctx, tank); err != nil {
			t.Fatalf("Failed to add tank: %v", err)
		}
		if err := repo.DeleteTank(ctx, tank.ID); err != nil {
			t.Fatalf("Failed to delete tank: %v", err)
		}

		var notFound *domain.TankNotFoundError
		if _, err := repo.GetTank(ctx, tank.ID); !errors.As(err, &notFound) {
			t.Errorf("Expected TankNotFoundError after delete, got %v", err)
		}
		if err := repo.DeleteTank(ctx, tank.ID); !errors.As(err, &notFound) {
			t.Errorf("Expected TankNotFoundError on double delete, got %v", err)
		}
	}
}

func TestRepositoryListTanks(t *testing.T) {
	for repo, cleanup := range createTestRepositories(t) {
		defer cleanup()

		ctx := context.Background()
		for i := 0; i < 3; i++ {
			if err := repo.AddTank(ctx, testTank()); err != nil {
				t.Fatalf("Failed to add tank: %v", err)
			}
		}

		tanks, err := repo.ListTanks(ctx)
		if err != nil {
			t.Fatalf("Failed to list tanks: %v", err)
		}
		if len(tanks) != 3 {
			t.Errorf("Expected 3 tanks, got %d", len(tanks))
		}
	}
}

func TestRepositoryFeedRoundTrip(t *testing.T) {
	for repo, cleanup := range createTestRepositories(t) {
		defer cleanup()

		ctx := context.Background()
		feed := &domain.FeedRecord{
			Name:        "Tropical Flakes",
			Category:    domain.FeedDry,
			OnHandGrams: 150,
		}

		if err := repo.AddFeed(ctx, feed); err != nil {
			t.Fatalf("Failed to add feed: %v", err)
		}
		if feed.ID == "" {
			t.Error("Expected feed ID to be generated")
		}

		retrieved, err := repo.GetFeed(ctx, feed.ID)
		if err != nil {
			t.Fatalf("Failed to get feed: %v", err)
		}
		if diff := cmp.Diff(feed, retrieved); diff != "" {
			t.Errorf("Retrieved feed differs from stored (-want +got):\n%s", diff)
		}

		feed.OnHandGrams = 75
		if err := repo.UpdateFeed(ctx, feed); err != nil {
			t.Fatalf("Failed to update feed: %v", err)
		}
		retrieved, err = repo.GetFeed(ctx, feed.ID)
		if err != nil {
			t.Fatalf("Failed to get updated feed: %v", err)
		}
		if retrieved.OnHandGrams != 75 {
			t.Errorf("Expected updated level 75, got %v", retrieved.OnHandGrams)
		}

		if err := repo.DeleteFeed(ctx, feed.ID); err != nil {
			t.Fatalf("Failed to delete feed: %v", err)
		}
		var notFound *domain.FeedNotFoundError
		if _, err := repo.GetFeed(ctx, feed.ID); !errors.As(err, &notFound) {
			t.Errorf("Expected FeedNotFoundError after delete, got %v", err)
		}
	}
}

func TestRepositoryListFeedsFilters(t *testing.T) {
	for repo, cleanup := range createTestRepositories(t) {
		defer cleanup()

		ctx := context.Background()
		feeds := []*domain.FeedRecord{
			{Name: "Flakes", Category: domain.FeedDry, OnHandGrams: 100},
			{Name: "Empty Pellets", Category: domain.FeedDry, OnHandGrams: 0},
			{Name: "Bloodworms", Category: domain.FeedFrozen, OnHandGrams: 50},
		}
		for _, feed := range feeds {
			if err := repo.AddFeed(ctx, feed); err != nil {
				t.Fatalf("Failed to add feed: %v", err)
			}
		}

		dryFeeds, total, err := repo.ListFeeds(ctx, ListFilters{Category: domain.FeedDry})
		if err != nil {
			t.Fatalf("Failed to list dry feeds: %v", err)
		}
		if total != 2 || len(dryFeeds) != 2 {
			t.Errorf("Expected 2 dry feeds, got %d (total %d)", len(dryFeeds), total)
		}

		emptyFeeds, err := repo.GetEmptyFeeds(ctx)
		if err != nil {
			t.Fatalf("Failed to get empty feeds: %v", err)
		}
		if len(emptyFeeds) != 1 || emptyFeeds[0].Name != "Empty Pellets" {
			t.Errorf("Expected the empty pellets feed, got %+v", emptyFeeds)
		}

		paged, total, err := repo.ListFeeds(ctx, ListFilters{Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("Failed to list paged feeds: %v", err)
		}
		if total != 3 {
			t.Errorf("Expected total 3 before pagination, got %d", total)
		}
		if len(paged) != 1 {
			t.Errorf("Expected 1 paged feed, got %d", len(paged))
		}
	}
}

func TestRepositorySpeciesSizes(t *testing.T) {
	for repo, cleanup := range createTestRepositories(t) {
		defer cleanup()

		ctx := context.Background()
		record := &domain.SpeciesSizeRecord{
			Species:     "Neon Tetra",
			AdultSizeCm: 3.8,
			Source:      "measured",
		}

		if err := repo.PutSpeciesSize(ctx, record); err != nil {
			t.Fatalf("Failed to put species size: %v", err)
		}

		// Lookups normalize the name, so any spelling resolves.
		retrieved, err := repo.GetSpeciesSize(ctx, "  NEON tetra ")
		if err != nil {
			t.Fatalf("Failed to get species size: %v", err)
		}
		if retrieved.AdultSizeCm != 3.8 {
			t.Errorf("Expected size 3.8, got %v", retrieved.AdultSizeCm)
		}

		record.AdultSizeCm = 4.0
		if err := repo.PutSpeciesSize(ctx, record); err != nil {
			t.Fatalf("Failed to overwrite species size: %v", err)
		}
		retrieved, err = repo.GetSpeciesSize(ctx, "neon tetra")
		if err != nil {
			t.Fatalf("Failed to get overwritten species size: %v", err)
		}
		if retrieved.AdultSizeCm != 4.0 {
			t.Errorf("Expected overwritten size 4.0, got %v", retrieved.AdultSizeCm)
		}

		records, err := repo.ListSpeciesSizes(ctx)
		if err != nil {
			t.Fatalf("Failed to list species sizes: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("Expected 1 species size record, got %d", len(records))
		}

		var notFound *domain.SpeciesSizeNotFoundError
		if _, err := repo.GetSpeciesSize(ctx, "axolotl"); !errors.As(err, &notFound) {
			t.Errorf("Expected SpeciesSizeNotFoundError, got %v", err)
		}
	}
}

func TestNewPlannerRepository(t *testing.T) {
	t.Run("bolt backend", func(t *testing.T) {
		repo, err := NewPlannerRepository(filepath.Join(t.TempDir(), "planner"), DatabaseTypeBolt)
		if err != nil {
			t.Fatalf("Failed to create bolt repository: %v", err)
		}
		repo.Close()
	})

	t.Run("badger backend", func(t *testing.T) {
		repo, err := NewPlannerRepository(filepath.Join(t.TempDir(), "planner"), DatabaseTypeBadger)
		if err != nil {
			t.Fatalf("Failed to create badger repository: %v", err)
		}
		repo.Close()
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, err := NewPlannerRepository(filepath.Join(t.TempDir(), "planner"), DatabaseType("sqlite")); err == nil {
			t.Error("Expected error for unsupported database type")
		}
	})
}

func TestParseDatabaseType(t *testing.T) {
	tests := []struct {
		input    string
		expected DatabaseType
		wantErr  bool
	}{
		{"badger", DatabaseTypeBadger, false},
		{" Bolt ", DatabaseTypeBolt, false},
		{"sqlite", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			dbType, err := ParseDatabaseType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDatabaseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if dbType != tt.expected {
				t.Errorf("ParseDatabaseType(%q) = %q, expected %q", tt.input, dbType, tt.expected)
			}
		})
	}
}
