package httpapi_test

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/catalog"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/compatibility"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/feeding"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/httpapi"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/metrics"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/repository"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/service"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	repo, err := repository.NewPlannerRepository(
		filepath.Join(t.TempDir(), "records.db"), repository.DatabaseTypeBolt)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	cat := catalog.New()
	judge := compatibility.NewJudge(nil, time.Second, "")
	estimator := feeding.NewEstimator(service.NewSizeSource(repo, cat), nil, time.Second)
	m := metrics.New()
	svc := service.NewPlanningService(repo, cat, judge, estimator, m, logger)

	return httpapi.BuildServer(svc, m, logger)
}

func doRequest(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestVolumeRoute(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/v1/volume",
		`{"geometries":[{"shape":"rectangle","length":100,"width":50,"height":20,"unit":"cm"},{"shape":"bowl"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp service.VolumeResponse
	decodeBody(t, rec, &resp)

	switch {
	case len(resp.TankLiters) != 2:
		t.Fatalf("Expected 2 tank volumes, got %d", len(resp.TankLiters))
	case resp.TankLiters[0] != 100.0:
		t.Errorf("Expected first tank 100.0 L, got %v", resp.TankLiters[0])
	case resp.TotalLiters != 110.0:
		t.Errorf("Expected total 110.0 L, got %v", resp.TotalLiters)
	}
}

func TestVolumeRoute_MalformedBody(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/v1/volume", `{"geometries": [`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestStockingPlanRoute(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/v1/stocking/plan",
		`{"geometry":{"shape":"rectangle","length":100,"width":50,"height":20,"unit":"cm"},"species":["Neon Tetra"]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp service.StockingPlanResponse
	decodeBody(t, rec, &resp)

	switch {
	case resp.VolumeLiters != 100.0:
		t.Errorf("Expected volume 100.0 L, got %v", resp.VolumeLiters)
	case resp.Verdict.Status != domain.CompatibilityCompatible:
		t.Errorf("Expected compatible verdict, got %s", resp.Verdict.Status)
	case resp.Recommendation["Neon Tetra"] != 32:
		t.Errorf("Expected 32 neon tetras, got %d", resp.Recommendation["Neon Tetra"])
	case resp.TotalFish != 32:
		t.Errorf("Expected total 32 fish, got %d", resp.TotalFish)
	}
}

func TestStockingPlanRoute_ValidationError(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/v1/stocking/plan", `{"species":[]}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] == "" {
		t.Error("Expected an error message in the body")
	}
}

func TestFeedingPlanRoute(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/v1/feeding/plan",
		`{"selections":[{"species":"Neon Tetra","quantity":15}],"feed_name":"Tropical Flakes"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp service.FeedingPlanResponse
	decodeBody(t, rec, &resp)

	expected := 15 * 0.12 * math.Pow(3.5, 2.8) * 0.0075

	switch {
	case len(resp.PerSpecies) != 1:
		t.Fatalf("Expected 1 per-species entry, got %d", len(resp.PerSpecies))
	case math.Abs(resp.TotalGramsPerDay-expected) > 1e-9:
		t.Errorf("Expected total %v g, got %v", expected, resp.TotalGramsPerDay)
	case resp.Portion != "a pinch of flakes":
		t.Errorf("Expected portion 'a pinch of flakes', got %q", resp.Portion)
	}
}

func TestFeedForecastRoute_WithStoredFeed(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/v1/feeds",
		`{"name":"Premium Flakes","category":"dry","on_hand_grams":50}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201 creating feed, got %d: %s", rec.Code, rec.Body.String())
	}

	var created domain.FeedRecord
	decodeBody(t, rec, &created)
	if created.ID == "" {
		t.Fatal("Expected feed to be assigned an ID")
	}

	rec = doRequest(t, e, http.MethodPost, "/api/v1/feeds/forecast",
		fmt.Sprintf(`{"feed_id":%q,"daily_consumption_grams":2.0}`, created.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp service.FeedForecastResponse
	decodeBody(t, rec, &resp)

	switch {
	case resp.FeedName != "Premium Flakes":
		t.Errorf("Expected feed name 'Premium Flakes', got %q", resp.FeedName)
	case resp.Forecast.DurationDays != 25.0:
		t.Errorf("Expected 25 days duration, got %v", resp.Forecast.DurationDays)
	case resp.Forecast.Urgency != domain.UrgencyNormal:
		t.Errorf("Expected normal urgency, got %s", resp.Forecast.Urgency)
	case resp.Forecast.RecommendedPurchaseGrams != 198:
		t.Errorf("Expected 198 g purchase, got %d", resp.Forecast.RecommendedPurchaseGrams)
	case resp.Portion != "about 4 pinches of flakes":
		t.Errorf("Expected portion 'about 4 pinches of flakes', got %q", resp.Portion)
	}
}

func TestFeedForecastRoute_FeedNotFound(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/v1/feeds/forecast", `{"feed_id":"missing"}`)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing feed, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTankCRUDRoutes(t *testing.T) {
	e := newTestServer(t)

	// Create
	rec := doRequest(t, e, http.MethodPost, "/api/v1/tanks",
		`{"name":"Nursery","geometry":{"shape":"rectangle","length":60,"width":30,"height":30,"unit":"cm"}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created service.TankView
	decodeBody(t, rec, &created)

	switch {
	case created.ID == "":
		t.Fatal("Expected tank to be assigned an ID")
	case created.VolumeLiters != 54.0:
		t.Errorf("Expected volume 54.0 L, got %v", created.VolumeLiters)
	}

	// List
	rec = doRequest(t, e, http.MethodGet, "/api/v1/tanks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 listing tanks, got %d", rec.Code)
	}
	var views []service.TankView
	decodeBody(t, rec, &views)
	if len(views) != 1 {
		t.Fatalf("Expected 1 tank, got %d", len(views))
	}

	// Get
	rec = doRequest(t, e, http.MethodGet, "/api/v1/tanks/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 getting tank, got %d", rec.Code)
	}

	// Update: same tank as a bowl, volume becomes the fixed 10 L
	rec = doRequest(t, e, http.MethodPut, "/api/v1/tanks/"+created.ID,
		`{"name":"Desk Bowl","geometry":{"shape":"bowl"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 updating tank, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated service.TankView
	decodeBody(t, rec, &updated)

	switch {
	case updated.Name != "Desk Bowl":
		t.Errorf("Expected updated name 'Desk Bowl', got %q", updated.Name)
	case updated.VolumeLiters != 10.0:
		t.Errorf("Expected bowl volume 10.0 L, got %v", updated.VolumeLiters)
	}

	// Delete
	rec = doRequest(t, e, http.MethodDelete, "/api/v1/tanks/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204 deleting tank, got %d", rec.Code)
	}

	rec = doRequest(t, e, http.MethodGet, "/api/v1/tanks/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", rec.Code)
	}
}

func TestTankRoute_NotFound(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(t, e, http.MethodGet, "/api/v1/tanks/missing", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if !strings.Contains(body["error"], "not found") {
		t.Errorf("Expected a not-found message, got %q", body["error"])
	}
}

func TestFeedListRoute_Filters(t *testing.T) {
	e := newTestServer(t)

	seeds := []string{
		`{"name":"Premium Flakes","category":"dry","on_hand_grams":50}`,
		`{"name":"Old Pellets","category":"dry","on_hand_grams":0}`,
		`{"name":"Frozen Bloodworms","category":"frozen","on_hand_grams":100}`,
	}
	for _, body := range seeds {
		if rec := doRequest(t, e, http.MethodPost, "/api/v1/feeds", body); rec.Code != http.StatusCreated {
			t.Fatalf("Expected 201 seeding feed, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	tests := []struct {
		name     string
		target   string
		expected int
	}{
		{name: "all", target: "/api/v1/feeds", expected: 3},
		{name: "empty_only", target: "/api/v1/feeds?empty=true", expected: 1},
		{name: "dry_only", target: "/api/v1/feeds?category=dry", expected: 2},
		{name: "paged", target: "/api/v1/feeds?limit=2", expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, e, http.MethodGet, tt.target, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", rec.Code)
			}

			var body struct {
				Feeds []*domain.FeedRecord `json:"feeds"`
				Total int                  `json:"total"`
			}
			decodeBody(t, rec, &body)
			if body.Total != tt.expected {
				t.Errorf("Expected total %d, got %d", tt.expected, body.Total)
			}
		})
	}

	rec := doRequest(t, e, http.MethodGet, "/api/v1/feeds?limit=two", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-integer limit, got %d", rec.Code)
	}

	rec = doRequest(t, e, http.MethodGet, "/api/v1/feeds/empty", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 listing empty feeds, got %d", rec.Code)
	}
	var empty []*domain.FeedRecord
	decodeBody(t, rec, &empty)
	if len(empty) != 1 || empty[0].Name != "Old Pellets" {
		t.Errorf("Expected only 'Old Pellets' to be empty, got %v", empty)
	}
}

func TestSpeciesRoutes(t *testing.T) {
	e := newTestServer(t)

	// Catalog-backed lookup, URL-encoded name.
	rec := doRequest(t, e, http.MethodGet, "/api/v1/species/Neon%20Tetra", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var info service.SpeciesInfoResponse
	decodeBody(t, rec, &info)

	switch {
	case !info.Matched:
		t.Error("Expected a catalog match for Neon Tetra")
	case info.Profile.Name != "Neon Tetra":
		t.Errorf("Expected profile 'Neon Tetra', got %q", info.Profile.Name)
	case info.StoredSize != nil:
		t.Error("Expected no stored size yet")
	}

	// Store an override for a species the catalog has never heard of.
	rec = doRequest(t, e, http.MethodPut, "/api/v1/species/Axolotl/size",
		`{"adult_size_cm":20,"source":"measured"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 storing size, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, e, http.MethodGet, "/api/v1/species/Axolotl", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	decodeBody(t, rec, &info)

	expected := 0.12 * math.Pow(20, 2.8) * 0.0075

	switch {
	case info.Matched:
		t.Error("Expected no catalog match for Axolotl")
	case info.StoredSize == nil:
		t.Fatal("Expected stored size, got nil")
	case info.StoredSize.AdultSizeCm != 20:
		t.Errorf("Expected stored size 20 cm, got %v", info.StoredSize.AdultSizeCm)
	case math.Abs(info.GramsPerFishDay-expected) > 1e-9:
		t.Errorf("Expected %v g per fish from stored size, got %v", expected, info.GramsPerFishDay)
	}

	// Listing includes the stored override.
	rec = doRequest(t, e, http.MethodGet, "/api/v1/species", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 listing species sizes, got %d", rec.Code)
	}
	var records []*domain.SpeciesSizeRecord
	decodeBody(t, rec, &records)
	if len(records) != 1 {
		t.Errorf("Expected 1 stored size, got %d", len(records))
	}

	// Invalid size is rejected.
	rec = doRequest(t, e, http.MethodPut, "/api/v1/species/Axolotl/size", `{"adult_size_cm":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for zero size, got %d", rec.Code)
	}
}

func TestHealthRoute(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(t, e, http.MethodGet, "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("Expected status 'ok', got %q", body["status"])
	}
}

func TestMetricsRoute(t *testing.T) {
	e := newTestServer(t)

	// One planning request so the counter family has a sample.
	doRequest(t, e, http.MethodPost, "/api/v1/volume", `{"geometries":[{"shape":"bowl"}]}`)

	rec := doRequest(t, e, http.MethodGet, "/metrics", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "aquasync_planning_requests_total") {
		t.Error("Expected planning request counter in metrics output")
	}
}
