package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leaf-supply-chain/internal/service"
	"github.com/iliyamo/leaf-supply-chain/internal/utils"
)

type StatisticsHandler struct {
	Stats *service.Statistics
}

func NewStatisticsHandler(stats *service.Statistics) *StatisticsHandler {
	if stats == nil {
		panic("nil service passed to NewStatisticsHandler")
	}
	return &StatisticsHandler{Stats: stats}
}

func formatted(t service.Totals) echo.Map {
	return echo.Map{
		"sum_wet_leaves":        utils.FormatLargeNumber(t.WetLeaves),
		"sum_dry_leaves":        utils.FormatLargeNumber(t.DryLeaves),
		"sum_flour":             utils.FormatLargeNumber(t.Flour),
		"sum_shipment_quantity": utils.FormatLargeNumber(t.ShipmentQuantity),
	}
}

// All handles GET /statistics/all.
func (h *StatisticsHandler) All(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	t, err := h.Stats.Totals(ctx, "")
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, formatted(t))
}

// AllRaw handles GET /statistics/all_no_format.
func (h *StatisticsHandler) AllRaw(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	t, err := h.Stats.Totals(ctx, "")
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, t)
}

// Centra handles GET /centra/statistics/:user_id.
func (h *StatisticsHandler) Centra(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	t, err := h.Stats.Totals(ctx, c.Param("user_id"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, formatted(t))
}
