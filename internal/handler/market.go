package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leaf-supply-chain/internal/model"
	"github.com/iliyamo/leaf-supply-chain/internal/repository"
	"github.com/iliyamo/leaf-supply-chain/internal/service"
)

// defaultMarketLimit is the page size of the marketplace list endpoints.
const defaultMarketLimit = 10

// TableRoutes exposes plain CRUD over one marketplace table.
type TableRoutes[T any] struct {
	Table *repository.Table[T]
	Param string
	Label string // delete message subject
}

func (t *TableRoutes[T]) Create(c echo.Context) error {
	var v T
	if err := bind(c, &v); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	if err := t.Table.Create(ctx, &v); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (t *TableRoutes[T]) List(c echo.Context) error {
	skip, limit, err := skipLimit(c, defaultMarketLimit)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	out, err := t.Table.List(ctx, skip, limit)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (t *TableRoutes[T]) Get(c echo.Context) error {
	id, err := pathID(c, t.Param)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	v, err := t.Table.Get(ctx, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, v)
}

// Update writes the updatable columns of the row named in the path and
// answers with the stored row.
func (t *TableRoutes[T]) Update(c echo.Context) error {
	id, err := pathID(c, t.Param)
	if err != nil {
		return err
	}
	var v T
	if err := bind(c, &v); err != nil {
		return err
	}
	t.Table.SetID(&v, id)
	ctx, cancel := withTimeout(c)
	defer cancel()

	if err := t.Table.Update(ctx, &v); err != nil {
		return fail(err)
	}
	stored, err := t.Table.Get(ctx, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, stored)
}

func (t *TableRoutes[T]) Delete(c echo.Context) error {
	id, err := pathID(c, t.Param)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	ok, err := t.Table.Delete(ctx, id)
	return deleted(c, t.Label, ok, err)
}

// MarketHandler serves the marketplace. Market shipments go through the role
// checks; the other tables are plain CRUD.
type MarketHandler struct {
	Products        *TableRoutes[model.Product]
	AdminSettings   *TableRoutes[model.AdminSettings]
	InitialPrices   *TableRoutes[model.CentraInitialPrice]
	Discounts       *TableRoutes[model.DiscountCondition]
	SettingDetails  *TableRoutes[model.CentraSettingDetail]
	Shipments       *TableRoutes[model.MarketShipment]
	SubTransactions *TableRoutes[model.SubTransaction]
	Transactions    *TableRoutes[model.Transaction]

	market *service.Market
}

func NewMarketHandler(repos *repository.MarketRepos, market *service.Market) *MarketHandler {
	if repos == nil || market == nil {
		panic("nil dependency passed to NewMarketHandler")
	}
	return &MarketHandler{
		Products:        &TableRoutes[model.Product]{Table: repos.Products, Param: "product_id", Label: "Product"},
		AdminSettings:   &TableRoutes[model.AdminSettings]{Table: repos.AdminSettings, Param: "admin_settings_id"},
		InitialPrices:   &TableRoutes[model.CentraInitialPrice]{Table: repos.InitialPrices, Param: "initial_price_id", Label: "Centra Initial Price"},
		Discounts:       &TableRoutes[model.DiscountCondition]{Table: repos.Discounts, Param: "discount_condition_id", Label: "Discount condition"},
		SettingDetails:  &TableRoutes[model.CentraSettingDetail]{Table: repos.SettingDetails, Param: "setting_detail_id", Label: "Centra setting detail"},
		Shipments:       &TableRoutes[model.MarketShipment]{Table: repos.Shipments, Param: "market_shipment_id", Label: "MarketShipment"},
		SubTransactions: &TableRoutes[model.SubTransaction]{Table: repos.SubTransactions, Param: "subtransaction_id", Label: "SubTransaction"},
		Transactions:    &TableRoutes[model.Transaction]{Table: repos.Transactions, Param: "transaction_id", Label: "Transaction"},
		market:          market,
	}
}

// AdminSettingsFirst handles GET /admin_settings/get.
func (h *MarketHandler) AdminSettingsFirst(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	v, err := h.AdminSettings.Table.First(ctx)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *MarketHandler) CreateShipment(c echo.Context) error {
	var v model.MarketShipment
	if err := bind(c, &v); err != nil {
		return err
	}
	if v.CentraID == "" || v.CustomerID == "" {
		return badRequest("CentraID and CustomerID are required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	if err := h.market.CreateShipment(ctx, &v); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *MarketHandler) UpdateShipment(c echo.Context) error {
	id, err := pathID(c, "market_shipment_id")
	if err != nil {
		return err
	}
	var p service.MarketShipmentPatch
	if err := bind(c, &p); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	v, err := h.market.UpdateShipment(ctx, id, p)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *MarketHandler) UpdateSubTransaction(c echo.Context) error {
	id, err := pathID(c, "subtransaction_id")
	if err != nil {
		return err
	}
	var p service.SubTransactionPatch
	if err := bind(c, &p); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	v, err := h.market.UpdateSubTransaction(ctx, id, p)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *MarketHandler) UpdateTransaction(c echo.Context) error {
	id, err := pathID(c, "transaction_id")
	if err != nil {
		return err
	}
	var p service.TransactionPatch
	if err := bind(c, &p); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	v, err := h.market.UpdateTransaction(ctx, id, p)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, v)
}
