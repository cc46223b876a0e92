package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
	"github.com/iliyamo/leaf-supply-chain/internal/repository"
	"github.com/iliyamo/leaf-supply-chain/internal/service"
)

type ShipmentHandler struct {
	Shipments *service.Shipments
	Repo      *repository.ShipmentRepo
}

func NewShipmentHandler(svc *service.Shipments, repo *repository.ShipmentRepo) *ShipmentHandler {
	if svc == nil || repo == nil {
		panic("nil dependency passed to NewShipmentHandler")
	}
	return &ShipmentHandler{Shipments: svc, Repo: repo}
}

func (h *ShipmentHandler) Create(c echo.Context) error {
	var req service.NewShipment
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.CourierID == 0 || req.UserID == "" {
		return badRequest("CourierID and UserID are required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	v, err := h.Shipments.Create(ctx, req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *ShipmentHandler) List(c echo.Context) error {
	skip, limit, err := skipLimit(c, repository.DefaultListLimit)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	out, err := h.Repo.List(ctx, skip, limit)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /shipment/getid/:shipment_id.
func (h *ShipmentHandler) Get(c echo.Context) error {
	id, err := pathID(c, "shipment_id")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	d, err := h.Shipments.Get(ctx, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *ShipmentHandler) ByUser(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	out, err := h.Repo.ListByUser(ctx, c.Param("user_id"))
	if err != nil {
		return fail(err)
	}
	if len(out) == 0 {
		return fail(apperr.NotFound("shipments not found"))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShipmentHandler) IDs(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	ids, err := h.Repo.IDs(ctx)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, ids)
}

// PendingCheckIn handles GET /check_shipment_ids: the ids of shipments that
// were dispatched but not checked in, as strings.
func (h *ShipmentHandler) PendingCheckIn(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	ids, err := h.Repo.DispatchedNotCheckedIn(ctx)
	if err != nil {
		return fail(err)
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatInt(id, 10)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShipmentHandler) Associations(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	out, err := h.Repo.Associations(ctx)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShipmentHandler) Update(c echo.Context) error {
	id, err := pathID(c, "shipment_id")
	if err != nil {
		return err
	}
	var req service.ShipmentPatch
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	v, err := h.Shipments.Update(ctx, id, req)
	return h.respond(c, v, err)
}

func (h *ShipmentHandler) UpdateDate(c echo.Context) error {
	var req struct {
		ShipmentDate *time.Time `json:"ShipmentDate"`
	}
	return h.narrow(c, &req, func(ctx context.Context, id int64) (*model.ShipmentView, error) {
		return h.Shipments.UpdateDate(ctx, id, req.ShipmentDate)
	})
}

func (h *ShipmentHandler) UpdateCheckIn(c echo.Context) error {
	var req struct {
		CheckInDate     *time.Time `json:"Check_in_Date"`
		CheckInQuantity *int64     `json:"Check_in_Quantity"`
	}
	return h.narrow(c, &req, func(ctx context.Context, id int64) (*model.ShipmentView, error) {
		return h.Shipments.UpdateCheckIn(ctx, id, req.CheckInDate, req.CheckInQuantity)
	})
}

func (h *ShipmentHandler) UpdateRescale(c echo.Context) error {
	var req struct {
		RescaledWeight *float64   `json:"Rescalled_Weight"`
		RescaledDate   *time.Time `json:"Rescalled_Date"`
	}
	return h.narrow(c, &req, func(ctx context.Context, id int64) (*model.ShipmentView, error) {
		return h.Shipments.UpdateRescale(ctx, id, req.RescaledWeight, req.RescaledDate)
	})
}

func (h *ShipmentHandler) UpdateHarborReception(c echo.Context) error {
	var req struct {
		HarborReceptionFile *bool `json:"Harbor_Reception_File"`
	}
	return h.narrow(c, &req, func(ctx context.Context, id int64) (*model.ShipmentView, error) {
		return h.Shipments.UpdateHarborReception(ctx, id, req.HarborReceptionFile)
	})
}

func (h *ShipmentHandler) UpdateCentraReception(c echo.Context) error {
	var req struct {
		CentraReceptionFile *bool `json:"Centra_Reception_File"`
	}
	return h.narrow(c, &req, func(ctx context.Context, id int64) (*model.ShipmentView, error) {
		return h.Shipments.UpdateCentraReception(ctx, id, req.CentraReceptionFile)
	})
}

// narrow binds a single-purpose update body into req and runs it against
// the shipment named in the path.
func (h *ShipmentHandler) narrow(c echo.Context, req any, run func(ctx context.Context, id int64) (*model.ShipmentView, error)) error {
	id, err := pathID(c, "shipment_id")
	if err != nil {
		return err
	}
	if err := bind(c, req); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	v, err := run(ctx, id)
	return h.respond(c, v, err)
}

func (h *ShipmentHandler) respond(c echo.Context, v *model.ShipmentView, err error) error {
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *ShipmentHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "shipment_id")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	ok, err := h.Repo.Delete(ctx, id)
	return deleted(c, "shipment", ok, err)
}
