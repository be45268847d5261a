// Package httpapi exposes the planning service over JSON HTTP. Handlers
// stay thin: decode, call the service, encode, map errors to statuses.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/metrics"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/service"
)

// BuildServer assembles the echo instance with every route registered.
// The metrics set may be nil, in which case no /metrics route is served.
func BuildServer(svc *service.PlanningService, m *metrics.Metrics, logger *logrus.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	v1 := e.Group("/api/v1")

	v1.POST("/volume", ComputeVolumeHandler(svc))
	v1.POST("/stocking/plan", PlanStockingHandler(svc))
	v1.POST("/feeding/plan", PlanFeedingHandler(svc))
	v1.POST("/feeds/forecast", ForecastFeedHandler(svc))

	v1.GET("/species", ListSpeciesSizesHandler(svc))
	v1.GET("/species/:name", SpeciesInfoHandler(svc, "name"))
	v1.PUT("/species/:name/size", PutSpeciesSizeHandler(svc, "name"))

	v1.POST("/tanks", CreateTankHandler(svc))
	v1.GET("/tanks", ListTanksHandler(svc))
	v1.GET("/tanks/:id", GetTankHandler(svc, "id"))
	v1.PUT("/tanks/:id", UpdateTankHandler(svc, "id"))
	v1.DELETE("/tanks/:id", DeleteTankHandler(svc, "id"))

	v1.POST("/feeds", CreateFeedHandler(svc))
	v1.GET("/feeds", ListFeedsHandler(svc))
	v1.GET("/feeds/empty", ListEmptyFeedsHandler(svc))
	v1.GET("/feeds/:id", GetFeedHandler(svc, "id"))
	v1.PUT("/feeds/:id", UpdateFeedHandler(svc, "id"))
	v1.DELETE("/feeds/:id", DeleteFeedHandler(svc, "id"))

	e.GET("/healthz", HealthHandler())
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))
	}

	return e
}

// requestLogger records method, path, status and latency for every
// request at debug level.
func requestLogger(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.WithFields(logrus.Fields{
				"method":  c.Request().Method,
				"path":    c.Request().URL.Path,
				"status":  c.Response().Status,
				"elapsed": time.Since(start).String(),
			}).Debug("request handled")
			return err
		}
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps service and repository errors onto HTTP statuses:
// validation failures are 400, missing records 404, the rest 500.
func writeError(c echo.Context, err error) error {
	var valErr *service.ValidationError
	var tankNotFound *domain.TankNotFoundError
	var feedNotFound *domain.FeedNotFoundError
	var sizeNotFound *domain.SpeciesSizeNotFoundError

	switch {
	case errors.As(err, &valErr):
		return c.JSON(http.StatusBadRequest, errorBody{Error: valErr.Message})
	case errors.As(err, &tankNotFound), errors.As(err, &feedNotFound), errors.As(err, &sizeNotFound):
		return c.JSON(http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorBody{Error: message})
}
