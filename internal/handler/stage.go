package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
	"github.com/iliyamo/leaf-supply-chain/internal/repository"
	"github.com/iliyamo/leaf-supply-chain/internal/service"
)

// StageStore is the storage shape shared by the three production stages.
type StageStore[T any] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, limit int) ([]T, error)
	ListByUser(ctx context.Context, userID string) ([]T, error)
	UpdateWeight(ctx context.Context, id int64, weight float64, exp *time.Time) (*T, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*T, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// StageRoutes serves one stage. Creation goes through the inventory rules;
// the other operations work on the store directly.
type StageRoutes[T any] struct {
	Store  StageStore[T]
	Param  string // path parameter holding the row id
	Label  string // entity name used in messages
	Create func(ctx context.Context, v *T) error
	Check  func(v *T) error // required fields of a create body
}

func (s *StageRoutes[T]) Post(c echo.Context) error {
	var req T
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.Check(&req); err != nil {
		return fail(err)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	if err := s.Create(ctx, &req); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, req)
}

// List handles GET /<stage>/get?limit=.
func (s *StageRoutes[T]) List(c echo.Context) error {
	limit, err := queryInt(c, "limit", repository.DefaultListLimit)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	out, err := s.Store.List(ctx, limit)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *StageRoutes[T]) Get(c echo.Context) error {
	id, err := pathID(c, s.Param)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	v, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, v)
}

// ByUser answers 404 when the user owns no rows of this stage.
func (s *StageRoutes[T]) ByUser(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	out, err := s.Store.ListByUser(ctx, c.Param("user_id"))
	if err != nil {
		return fail(err)
	}
	if len(out) == 0 {
		return fail(apperr.NotFound(s.Label + " not found"))
	}
	return c.JSON(http.StatusOK, out)
}

type weightUpdate struct {
	Weight     *float64   `json:"Weight"`
	Expiration *time.Time `json:"Expiration"`
}

// UpdateWeight handles PUT /<stage>/put/:id. A missing Expiration keeps the
// stored one.
func (s *StageRoutes[T]) UpdateWeight(c echo.Context) error {
	id, err := pathID(c, s.Param)
	if err != nil {
		return err
	}
	var req weightUpdate
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Weight == nil {
		return badRequest("Weight is required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	v, err := s.Store.UpdateWeight(ctx, id, *req.Weight, req.Expiration)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (s *StageRoutes[T]) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, s.Param)
	if err != nil {
		return err
	}
	var req struct {
		Status string `json:"Status"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Status == "" {
		return badRequest("Status is required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	v, err := s.Store.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (s *StageRoutes[T]) Delete(c echo.Context) error {
	id, err := pathID(c, s.Param)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	ok, err := s.Store.Delete(ctx, id)
	return deleted(c, s.Label, ok, err)
}

// StageHandler groups the wet leaves, dry leaves and flour endpoints with
// the stage-wide reads.
type StageHandler struct {
	Wet   *StageRoutes[model.WetLeaves]
	Dry   *StageRoutes[model.DryLeaves]
	Flour *StageRoutes[model.Flour]

	dryItems   func(ctx context.Context, limit int) ([]model.StageItem, error)
	flourItems func(ctx context.Context, limit int) ([]model.StageItem, error)
	stats      *service.Statistics
}

func NewStageHandler(inv *service.Inventory, wet *repository.WetLeavesRepo, dry *repository.DryLeavesRepo, flour *repository.FlourRepo, stats *service.Statistics) *StageHandler {
	if inv == nil || wet == nil || dry == nil || flour == nil || stats == nil {
		panic("nil dependency passed to NewStageHandler")
	}
	return &StageHandler{
		Wet: &StageRoutes[model.WetLeaves]{
			Store: wet, Param: "wet_leaves_id", Label: "wet leaves",
			Create: inv.CreateWetLeaves,
			Check: func(w *model.WetLeaves) error {
				switch {
				case w.UserID == "":
					return apperr.Invalid("UserID is required")
				case w.ReceivedTime.IsZero() || w.Expiration.IsZero():
					return apperr.Invalid("ReceivedTime and Expiration are required")
				}
				return nil
			},
		},
		Dry: &StageRoutes[model.DryLeaves]{
			Store: dry, Param: "dry_leaves_id", Label: "dry leaves",
			Create: inv.CreateDryLeaves,
			Check: func(d *model.DryLeaves) error {
				if d.UserID == "" || d.WetLeavesID == 0 {
					return apperr.Invalid("UserID and WetLeavesID are required")
				}
				return nil
			},
		},
		Flour: &StageRoutes[model.Flour]{
			Store: flour, Param: "flour_id", Label: "flour",
			Create: inv.CreateFlour,
			Check: func(f *model.Flour) error {
				if f.UserID == "" || f.DryLeavesID == 0 {
					return apperr.Invalid("UserID and DryLeavesID are required")
				}
				return nil
			},
		},
		dryItems:   dry.Items,
		flourItems: flour.Items,
		stats:      stats,
	}
}

// SumWeightToday handles GET /wetleaves/sum_weight_today/:user_id.
func (h *StageHandler) SumWeightToday(c echo.Context) error {
	userID := c.Param("user_id")
	ctx, cancel := withTimeout(c)
	defer cancel()

	total, err := h.stats.WetLeavesToday(ctx, userID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": userID, "total_weight_today": total})
}

// Items handles GET /items/?item_type=dry_leaves|flour&limit=.
func (h *StageHandler) Items(c echo.Context) error {
	limit, err := queryInt(c, "limit", repository.DefaultListLimit)
	if err != nil {
		return err
	}
	var list func(context.Context, int) ([]model.StageItem, error)
	switch c.QueryParam("item_type") {
	case "dry_leaves":
		list = h.dryItems
	case "flour":
		list = h.flourItems
	default:
		return badRequest("Invalid item type")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	items, err := list(ctx, limit)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
