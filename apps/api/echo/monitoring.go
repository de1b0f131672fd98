package echoapi

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lefika/ripota/core"
	"github.com/lefika/ripota/core/monitoring"
	"github.com/lefika/ripota/storage/cache"
)

type monitoringApi struct {
	svc   monitoring.Service
	cache *cache.Client
	conf  *core.Config
}

func registerMonitoringRoutes(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := monitoringApi{svc: deps.MonitoringSvc, cache: deps.Cache, conf: deps.Conf}

	g.GET("/monitoring", api.metrics, jwt)
}

func (api *monitoringApi) metrics(ctx echo.Context) error {
	timeframe := ctx.QueryParam("timeframe")
	if !monitoring.ValidTimeframe(timeframe) {
		timeframe = monitoring.TimeframeWeek
	}

	key := "monitoring:" + timeframe
	if api.cache != nil {
		if data := api.cache.Get(ctx.Request().Context(), key); data != nil {
			return ctx.JSONBlob(http.StatusOK, data)
		}
	}

	metrics, err := api.svc.Metrics(ctx.Request().Context(), timeframe)
	if err != nil {
		return errors.Wrap(err, "computing metrics")
	}

	if api.cache != nil {
		if data, mErr := json.Marshal(metrics); mErr == nil {
			api.cache.Set(ctx.Request().Context(), key, data, api.conf.MonitoringCacheTTL)
		}
	}
	return ctx.JSON(http.StatusOK, metrics)
}
