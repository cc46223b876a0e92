package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
	"github.com/iliyamo/leaf-supply-chain/internal/repository"
)

// ReferenceHandler serves couriers, locations and cities.
type ReferenceHandler struct {
	Couriers  *repository.CourierRepo
	Locations *repository.LocationRepo
	Cities    *repository.CityRepo
}

func NewReferenceHandler(couriers *repository.CourierRepo, locations *repository.LocationRepo, cities *repository.CityRepo) *ReferenceHandler {
	if couriers == nil || locations == nil || cities == nil {
		panic("nil repository passed to NewReferenceHandler")
	}
	return &ReferenceHandler{Couriers: couriers, Locations: locations, Cities: cities}
}

func (h *ReferenceHandler) CreateCourier(c echo.Context) error {
	var req model.Courier
	if err := bind(c, &req); err != nil {
		return err
	}
	req.CourierName = strings.TrimSpace(req.CourierName)
	if req.CourierName == "" {
		return badRequest("CourierName is required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	req.CourierID = 0
	if err := h.Couriers.Create(ctx, &req); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, req)
}

func (h *ReferenceHandler) ListCouriers(c echo.Context) error {
	skip, limit, err := skipLimit(c, repository.DefaultListLimit)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	out, err := h.Couriers.List(ctx, skip, limit)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReferenceHandler) GetCourier(c echo.Context) error {
	id, err := pathID(c, "courier_id")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	courier, err := h.Couriers.GetByID(ctx, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, courier)
}

// DeleteCourier answers 404 when nothing was deleted, unlike the other
// delete endpoints.
func (h *ReferenceHandler) DeleteCourier(c echo.Context) error {
	id, err := pathID(c, "courier_id")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	ok, err := h.Couriers.Delete(ctx, id)
	if err != nil && apperr.KindOf(err) != apperr.KindConflict {
		return fail(err)
	}
	if !ok || err != nil {
		return fail(apperr.NotFound("Courier not found or deletion failed"))
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Courier deleted successfully"})
}

func (h *ReferenceHandler) CreateLocation(c echo.Context) error {
	var req model.Location
	if err := bind(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.LocationAddress) == "" {
		return badRequest("LocationAddress is required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	req.LocationID = 0
	if err := h.Locations.Create(ctx, &req); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, req)
}

func (h *ReferenceHandler) ListLocations(c echo.Context) error {
	skip, limit, err := skipLimit(c, repository.DefaultListLimit)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	out, err := h.Locations.List(ctx, skip, limit)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReferenceHandler) GetLocation(c echo.Context) error {
	id, err := pathID(c, "location_id")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	loc, err := h.Locations.GetByID(ctx, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, loc)
}

func (h *ReferenceHandler) DeleteLocation(c echo.Context) error {
	id, err := pathID(c, "location_id")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	ok, err := h.Locations.Delete(ctx, id)
	return deleted(c, "location", ok, err)
}

// ListCities handles GET /cities.
func (h *ReferenceHandler) ListCities(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	out, err := h.Cities.List(ctx)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, out)
}
