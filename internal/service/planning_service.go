package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/catalog"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/compatibility"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/feeding"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/geometry"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/metrics"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/repository"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/stocking"
)

// Metric operation labels.
const (
	opVolume       = "volume"
	opStockingPlan = "stocking_plan"
	opFeedingPlan  = "feeding_plan"
	opFeedForecast = "feed_forecast"
)

// ValidationError marks a request rejected before any planning work ran.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidArg(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// PlanningService answers the planning questions the mobile and web
// clients ask: tank volume, stocking counts, daily feed consumption,
// and feed-inventory forecasts. It also owns the thin pass-throughs for
// the stored records those answers draw on.
type PlanningService struct {
	repo      repository.PlannerRepository
	catalog   *catalog.Catalog
	solver    *stocking.Solver
	judge     *compatibility.Judge
	estimator *feeding.Estimator
	metrics   *metrics.Metrics
	logger    *logrus.Logger
}

// NewPlanningService creates a new planning service instance. The
// metrics set may be nil, in which case requests are not instrumented.
func NewPlanningService(
	repo repository.PlannerRepository,
	cat *catalog.Catalog,
	judge *compatibility.Judge,
	estimator *feeding.Estimator,
	m *metrics.Metrics,
	logger *logrus.Logger,
) *PlanningService {
	return &PlanningService{
		repo:      repo,
		catalog:   cat,
		solver:    stocking.NewSolver(cat),
		judge:     judge,
		estimator: estimator,
		metrics:   m,
		logger:    logger,
	}
}

// NewSizeSource builds the adult-size lookup the consumption estimator
// runs on: a stored per-species override wins, the static catalog fills
// the rest, and unknown species report no size so the estimator moves
// on to its next stage.
func NewSizeSource(repo repository.PlannerRepository, cat *catalog.Catalog) feeding.SizeSource {
	return &sizeSource{repo: repo, catalog: cat}
}

type sizeSource struct {
	repo    repository.PlannerRepository
	catalog *catalog.Catalog
}

func (s *sizeSource) AdultSizeCm(ctx context.Context, species string) (float64, bool) {
	if record, err := s.repo.GetSpeciesSize(ctx, species); err == nil && record.AdultSizeCm > 0 {
		return record.AdultSizeCm, true
	}
	return s.catalog.AdultSizeCm(species)
}

func (s *PlanningService) observe(operation string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
	}
	s.metrics.ObserveRequest(operation, outcome, time.Since(start))
}

// VolumeRequest carries one or more tank geometries to evaluate.
type VolumeRequest struct {
	Geometries []domain.TankGeometry `json:"geometries"`
}

// VolumeResponse reports per-tank volumes in input order plus their sum.
type VolumeResponse struct {
	TankLiters  []float64 `json:"tank_liters"`
	TotalLiters float64   `json:"total_liters"`
}

// ComputeVolume derives water volume from tank geometry.
func (s *PlanningService) ComputeVolume(ctx context.Context, req *VolumeRequest) (_ *VolumeResponse, err error) {
	defer func(start time.Time) { s.observe(opVolume, start, err) }(time.Now())

	if req == nil || len(req.Geometries) == 0 {
		return nil, invalidArg("at least one tank geometry is required")
	}

	liters := make([]float64, 0, len(req.Geometries))
	total := 0.0
	for _, g := range req.Geometries {
		v := geometry.VolumeLiters(g)
		liters = append(liters, v)
		total += v
	}

	s.logger.WithFields(logrus.Fields{
		"tank_count":   len(liters),
		"total_liters": total,
	}).Debug("computed tank volumes")

	return &VolumeResponse{TankLiters: liters, TotalLiters: total}, nil
}

// StockingPlanRequest names the species to stock and the tank to stock
// them in, either by stored ID or as an inline geometry.
type StockingPlanRequest struct {
	TankID   string               `json:"tank_id,omitempty"`
	Geometry *domain.TankGeometry `json:"geometry,omitempty"`
	Species  []string             `json:"species"`
}

// StockingPlanResponse is the solver's answer plus the inputs it was
// derived from, so clients can show how the counts came about.
type StockingPlanResponse struct {
	VolumeLiters   float64                       `json:"volume_liters"`
	Verdict        domain.CompatibilityVerdict   `json:"verdict"`
	Recommendation domain.StockingRecommendation `json:"recommendation"`
	TotalFish      int                           `json:"total_fish"`
}

// PlanStocking recommends how many of each selected species the tank
// supports. The compatibility verdict always resolves, via the
// configured fallback if the classifier cannot answer.
func (s *PlanningService) PlanStocking(ctx context.Context, req *StockingPlanRequest) (_ *StockingPlanResponse, err error) {
	defer func(start time.Time) { s.observe(opStockingPlan, start, err) }(time.Now())

	if req == nil || len(req.Species) == 0 {
		return nil, invalidArg("at least one species is required")
	}
	for _, name := range req.Species {
		if strings.TrimSpace(name) == "" {
			return nil, invalidArg("species names must not be blank")
		}
	}

	volume := 0.0
	switch {
	case req.TankID != "":
		tank, getErr := s.repo.GetTank(ctx, req.TankID)
		if getErr != nil {
			s.logger.WithError(getErr).WithField("tank_id", req.TankID).Error("failed to load tank for stocking plan")
			return nil, getErr
		}
		volume = geometry.VolumeLiters(tank.Geometry)
	case req.Geometry != nil:
		volume = geometry.VolumeLiters(*req.Geometry)
	default:
		return nil, invalidArg("tank_id or geometry is required")
	}

	verdict := s.judge.Verdict(ctx, req.Species)
	recommendation := s.solver.Recommend(volume, req.Species, verdict)

	s.logger.WithFields(logrus.Fields{
		"tank_id":       req.TankID,
		"volume_liters": volume,
		"species_count": len(req.Species),
		"status":        verdict.Status,
		"total_fish":    recommendation.TotalFish(),
	}).Info("stocking plan computed")

	return &StockingPlanResponse{
		VolumeLiters:   volume,
		Verdict:        verdict,
		Recommendation: recommendation,
		TotalFish:      recommendation.TotalFish(),
	}, nil
}

// FeedingPlanRequest asks how much the selected fish eat per day. An
// optional feed name turns the total into a serving description.
type FeedingPlanRequest struct {
	Selections []domain.SpeciesSelection `json:"selections"`
	FeedName   string                    `json:"feed_name,omitempty"`
}

// SpeciesConsumption is the per-species breakdown of a feeding plan.
type SpeciesConsumption struct {
	Species         string  `json:"species"`
	Quantity        int     `json:"quantity"`
	GramsPerFishDay float64 `json:"grams_per_fish_day"`
	GramsPerDay     float64 `json:"grams_per_day"`
}

// FeedingPlanResponse totals daily consumption across the selection.
type FeedingPlanResponse struct {
	PerSpecies       []SpeciesConsumption `json:"per_species"`
	TotalGramsPerDay float64              `json:"total_grams_per_day"`
	Portion          string               `json:"portion,omitempty"`
}

// PlanFeeding estimates daily food consumption for a species selection.
func (s *PlanningService) PlanFeeding(ctx context.Context, req *FeedingPlanRequest) (_ *FeedingPlanResponse, err error) {
	defer func(start time.Time) { s.observe(opFeedingPlan, start, err) }(time.Now())

	if req == nil || len(req.Selections) == 0 {
		return nil, invalidArg("at least one species selection is required")
	}
	if valErr := validateSelections(req.Selections); valErr != nil {
		return nil, valErr
	}

	perSpecies := make([]SpeciesConsumption, 0, len(req.Selections))
	total := 0.0
	for _, sel := range req.Selections {
		perFish := s.estimator.DailyGramsPerFish(ctx, sel.Species)
		daily := perFish * float64(sel.Quantity)
		perSpecies = append(perSpecies, SpeciesConsumption{
			Species:         sel.Species,
			Quantity:        sel.Quantity,
			GramsPerFishDay: perFish,
			GramsPerDay:     daily,
		})
		total += daily
	}

	resp := &FeedingPlanResponse{
		PerSpecies:       perSpecies,
		TotalGramsPerDay: total,
	}
	if req.FeedName != "" {
		resp.Portion = feeding.DescribePortionFor(total, req.FeedName)
	}

	s.logger.WithFields(logrus.Fields{
		"species_count":       len(req.Selections),
		"total_grams_per_day": total,
	}).Info("feeding plan computed")

	return resp, nil
}

// FeedForecastRequest describes the feed to forecast. A stored feed ID
// supplies category and on-hand mass; otherwise they are given inline.
// Daily consumption comes from a species selection when one is present,
// or from the explicit figure when not.
type FeedForecastRequest struct {
	FeedID                string                    `json:"feed_id,omitempty"`
	Category              domain.FeedCategory       `json:"category,omitempty"`
	OnHandGrams           float64                   `json:"on_hand_grams,omitempty"`
	DailyConsumptionGrams float64                   `json:"daily_consumption_grams,omitempty"`
	Selections            []domain.SpeciesSelection `json:"selections,omitempty"`
}

// FeedForecastResponse reports the depletion forecast along with the
// state it was computed from.
type FeedForecastResponse struct {
	FeedID   string                    `json:"feed_id,omitempty"`
	FeedName string                    `json:"feed_name,omitempty"`
	State    domain.FeedInventoryState `json:"state"`
	Forecast domain.FeedForecast       `json:"forecast"`
	Portion  string                    `json:"portion,omitempty"`
}

// ForecastFeed predicts how long a feed lasts and how much to buy next.
func (s *PlanningService) ForecastFeed(ctx context.Context, req *FeedForecastRequest) (_ *FeedForecastResponse, err error) {
	defer func(start time.Time) { s.observe(opFeedForecast, start, err) }(time.Now())

	if req == nil {
		return nil, invalidArg("request body is required")
	}

	resp := &FeedForecastResponse{}
	state := domain.FeedInventoryState{
		Category:    req.Category,
		OnHandGrams: req.OnHandGrams,
	}
	if req.FeedID != "" {
		feed, getErr := s.repo.GetFeed(ctx, req.FeedID)
		if getErr != nil {
			s.logger.WithError(getErr).WithField("feed_id", req.FeedID).Error("failed to load feed for forecast")
			return nil, getErr
		}
		state.Category = feed.Category
		state.OnHandGrams = feed.OnHandGrams
		resp.FeedID = feed.ID
		resp.FeedName = feed.Name
	}
	if state.OnHandGrams < 0 {
		return nil, invalidArg("on_hand_grams must not be negative")
	}

	switch {
	case len(req.Selections) > 0:
		if valErr := validateSelections(req.Selections); valErr != nil {
			return nil, valErr
		}
		state.DailyConsumptionGrams = s.estimator.DailyConsumptionGrams(ctx, req.Selections)
	case req.DailyConsumptionGrams < 0:
		return nil, invalidArg("daily_consumption_grams must not be negative")
	default:
		state.DailyConsumptionGrams = req.DailyConsumptionGrams
	}

	resp.State = state
	resp.Forecast = feeding.Forecast(state)
	if resp.FeedName != "" && state.DailyConsumptionGrams > 0 {
		resp.Portion = feeding.DescribePortionFor(state.DailyConsumptionGrams, resp.FeedName)
	}

	s.logger.WithFields(logrus.Fields{
		"feed_id":       resp.FeedID,
		"urgency":       resp.Forecast.Urgency,
		"duration_days": resp.Forecast.DurationDays,
	}).Info("feed forecast computed")

	return resp, nil
}

// SpeciesInfoResponse bundles everything known about one species: the
// catalog profile (or the conservative default), whether the catalog
// actually matched, any stored size override, and the estimated daily
// ration for a single fish.
type SpeciesInfoResponse struct {
	Profile         domain.SpeciesProfile     `json:"profile"`
	Matched         bool                      `json:"matched"`
	StoredSize      *domain.SpeciesSizeRecord `json:"stored_size,omitempty"`
	GramsPerFishDay float64                   `json:"grams_per_fish_day"`
}

// SpeciesInfo resolves the planning profile for a species name.
func (s *PlanningService) SpeciesInfo(ctx context.Context, name string) (*SpeciesInfoResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidArg("species name is required")
	}

	profile, matched := s.catalog.Lookup(name)
	resp := &SpeciesInfoResponse{
		Profile:         profile,
		Matched:         matched,
		GramsPerFishDay: s.estimator.DailyGramsPerFish(ctx, name),
	}
	if stored, getErr := s.repo.GetSpeciesSize(ctx, name); getErr == nil {
		resp.StoredSize = stored
	}
	return resp, nil
}

func validateSelections(selections []domain.SpeciesSelection) error {
	for _, sel := range selections {
		if strings.TrimSpace(sel.Species) == "" {
			return invalidArg("species names must not be blank")
		}
		if sel.Quantity < 0 {
			return invalidArg("quantity for %q must not be negative", sel.Species)
		}
	}
	return nil
}
