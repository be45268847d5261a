package domain

import (
	"fmt"
	"time"
)

// FeedCategory groups feed products by how they are preserved, which decides
// their shelf life and how a portion of them is described.
type FeedCategory string

const (
	FeedDry            FeedCategory = "dry"
	FeedFreezeDried    FeedCategory = "freeze-dried"
	FeedFrozen         FeedCategory = "frozen"
	FeedLive           FeedCategory = "live"
	FeedFreshVegetable FeedCategory = "fresh-vegetable"
	FeedOther          FeedCategory = "other"
)

// FeedInventoryState is the on-demand view of one feed: what mass is on hand
// and how fast the currently selected fish consume it. It is recomputed from
// the active selection rather than stored.
type FeedInventoryState struct {
	Category              FeedCategory `json:"category"`
	OnHandGrams           float64      `json:"on_hand_grams"`
	DailyConsumptionGrams float64      `json:"daily_consumption_grams"`
}

// ForecastUrgency tags how soon the keeper must act on a feed.
type ForecastUrgency string

const (
	UrgencyUrgent    ForecastUrgency = "urgent"
	UrgencyAttention ForecastUrgency = "attention"
	UrgencyNormal    ForecastUrgency = "normal"
	UrgencyInfo      ForecastUrgency = "info"
	UrgencyWarning   ForecastUrgency = "warning"
)

// FeedForecast is the forecaster's answer for one feed: how long the on-hand
// mass lasts, how urgent restocking is, and how much to buy next time.
type FeedForecast struct {
	DurationDays             float64         `json:"duration_days"`
	Urgency                  ForecastUrgency `json:"urgency"`
	Recommendation           string          `json:"recommendation"`
	RecommendedPurchaseGrams int             `json:"recommended_purchase_grams"`
}

// FeedRecord is a stored feed product and its remaining mass.
type FeedRecord struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    FeedCategory `json:"category"`
	OnHandGrams float64      `json:"on_hand_grams"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// IsEmpty checks if the feed has no stock left
func (f *FeedRecord) IsEmpty() bool {
	return f.OnHandGrams <= 0
}

// SpeciesSizeRecord stores an authoritative adult size for a species. When
// present it is preferred over both the catalog figure and the external
// weight oracle.
type SpeciesSizeRecord struct {
	Species     string    `json:"species"`
	AdultSizeCm float64   `json:"adult_size_cm"`
	Source      string    `json:"source,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FeedNotFoundError represents an error when a feed record is not found
type FeedNotFoundError struct {
	ID string
}

func (e *FeedNotFoundError) Error() string {
	return fmt.Sprintf("feed with ID '%s' not found", e.ID)
}

// SpeciesSizeNotFoundError represents an error when no stored size exists
type SpeciesSizeNotFoundError struct {
	Species string
}

func (e *SpeciesSizeNotFoundError) Error() string {
	return fmt.Sprintf("no stored size for species '%s'", e.Species)
}
