package httpapi

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/repository"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/service"
)

// ComputeVolumeHandler derives water volume from tank geometry.
func ComputeVolumeHandler(svc *service.PlanningService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(service.VolumeRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "malformed request body")
		}

		resp, err := svc.ComputeVolume(c.Request().Context(), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// PlanStockingHandler recommends stocking counts for a species selection.
func PlanStockingHandler(svc *service.PlanningService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(service.StockingPlanRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "malformed request body")
		}

		resp, err := svc.PlanStocking(c.Request().Context(), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// PlanFeedingHandler estimates daily feed consumption for a selection.
func PlanFeedingHandler(svc *service.PlanningService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(service.FeedingPlanRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "malformed request body")
		}

		resp, err := svc.PlanFeeding(c.Request().Context(), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// ForecastFeedHandler predicts feed depletion and restock amounts.
func ForecastFeedHandler(svc *service.PlanningService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(service.FeedForecastRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "malformed request body")
		}

		resp, err := svc.ForecastFeed(c.Request().Context(), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// SpeciesInfoHandler resolves the planning profile for one species.
func SpeciesInfoHandler(svc *service.PlanningService, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := pathValue(c, paramKey)

		resp, err := svc.SpeciesInfo(c.Request().Context(), name)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// putSpeciesSizeBody is the payload for storing a size override.
type putSpeciesSizeBody struct {
	AdultSizeCm float64 `json:"adult_size_cm"`
	Source      string  `json:"source,omitempty"`
}

// PutSpeciesSizeHandler stores an authoritative adult size for a species.
func PutSpeciesSizeHandler(svc *service.PlanningService, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := new(putSpeciesSizeBody)
		if err := c.Bind(body); err != nil {
			return badRequest(c, "malformed request body")
		}

		record := &domain.SpeciesSizeRecord{
			Species:     pathValue(c, paramKey),
			AdultSizeCm: body.AdultSizeCm,
			Source:      body.Source,
		}
		stored, err := svc.PutSpeciesSize(c.Request().Context(), record)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, stored)
	}
}

// ListSpeciesSizesHandler returns all stored size overrides.
func ListSpeciesSizesHandler(svc *service.PlanningService) echo.HandlerFunc {
	return func(c echo.Context) error {
		records, err := svc.ListSpeciesSizes(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, records)
	}
}

// CreateTankHandler stores a new tank record.
func CreateTankHandler(svc *service.PlanningService) echo.HandlerFunc {
	return func(c echo.Context) error {
		tank := new(domain.TankRecord)
		if err := c.Bind(tank); err != nil {
			return badRequest(c, "malformed request body")
		}

		view, err := svc.CreateTank(c.Request().Context(), tank)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, view)
	}
}

// GetTankHandler retrieves one tank with its derived volume.
func GetTankHandler(svc *service.PlanningService, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		view, err := svc.GetTank(c.Request().Context(), c.Param(paramKey))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, view)
	}
}

// UpdateTankHandler replaces a stored tank record. The path ID wins
// over any ID in the body.
func UpdateTankHandler(svc *service.PlanningService, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		tank := new(domain.TankRecord)
		if err := c.Bind(tank); err != nil {
			return badRequest(c, "malformed request body")
		}
		tank.ID = c.Param(paramKey)

		view, err := svc.UpdateTank(c.Request().Context(), tank)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, view)
	}
}

// DeleteTankHandler removes a tank record.
func DeleteTankHandler(svc *service.PlanningService, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.DeleteTank(c.Request().Context(), c.Param(paramKey)); err != nil {
			return writeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// ListTanksHandler returns all stored tanks with derived volumes.
func ListTanksHandler(svc *service.PlanningService) echo.HandlerFunc {
	return func(c echo.Context) error {
		views, err := svc.ListTanks(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, views)
	}
}

// CreateFeedHandler stores a new feed record.
func CreateFeedHandler(svc *service.PlanningService) echo.HandlerFunc {
	return func(c echo.Context) error {
		feed := new(domain.FeedRecord)
		if err := c.Bind(feed); err != nil {
			return badRequest(c, "malformed request body")
		}

		created, err := svc.CreateFeed(c.Request().Context(), feed)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, created)
	}
}

// GetFeedHandler retrieves one feed record.
func GetFeedHandler(svc *service.PlanningService, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		feed, err := svc.GetFeed(c.Request().Context(), c.Param(paramKey))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, feed)
	}
}

// UpdateFeedHandler replaces a stored feed record.
func UpdateFeedHandler(svc *service.PlanningService, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		feed := new(domain.FeedRecord)
		if err := c.Bind(feed); err != nil {
			return badRequest(c, "malformed request body")
		}
		feed.ID = c.Param(paramKey)

		updated, err := svc.UpdateFeed(c.Request().Context(), feed)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, updated)
	}
}

// DeleteFeedHandler removes a feed record.
func DeleteFeedHandler(svc *service.PlanningService, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.DeleteFeed(c.Request().Context(), c.Param(paramKey)); err != nil {
			return writeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// feedListBody pages feed listings.
type feedListBody struct {
	Feeds []*domain.FeedRecord `json:"feeds"`
	Total int                  `json:"total"`
}

// ListFeedsHandler pages through feeds, filtered by query parameters:
// empty=true, category=<tag>, limit, offset.
func ListFeedsHandler(svc *service.PlanningService) echo.HandlerFunc {
	return func(c echo.Context) error {
		filters := repository.ListFilters{
			EmptyOnly: c.QueryParam("empty") == "true",
			Category:  domain.FeedCategory(c.QueryParam("category")),
		}
		if raw := c.QueryParam("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				return badRequest(c, "limit must be an integer")
			}
			filters.Limit = limit
		}
		if raw := c.QueryParam("offset"); raw != "" {
			offset, err := strconv.Atoi(raw)
			if err != nil {
				return badRequest(c, "offset must be an integer")
			}
			filters.Offset = offset
		}

		feeds, total, err := svc.ListFeeds(c.Request().Context(), filters)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, feedListBody{Feeds: feeds, Total: total})
	}
}

// ListEmptyFeedsHandler returns feeds that are out of stock.
func ListEmptyFeedsHandler(svc *service.PlanningService) echo.HandlerFunc {
	return func(c echo.Context) error {
		feeds, err := svc.ListEmptyFeeds(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, feeds)
	}
}

// HealthHandler reports process liveness.
func HealthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

// pathValue returns a path parameter with percent-encoding undone, so
// species names with spaces route correctly.
func pathValue(c echo.Context, paramKey string) string {
	raw := c.Param(paramKey)
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}
