package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
	"github.com/iliyamo/leaf-supply-chain/internal/service"
)

type InvoiceHandler struct {
	Invoices *service.Invoices
	Log      *zap.Logger
}

func NewInvoiceHandler(inv *service.Invoices, log *zap.Logger) *InvoiceHandler {
	if inv == nil || log == nil {
		panic("nil dependency passed to NewInvoiceHandler")
	}
	return &InvoiceHandler{Invoices: inv, Log: log}
}

// Create handles POST /create_invoice. Failures answer with a "detail" body
// instead of the usual "error".
func (h *InvoiceHandler) Create(c echo.Context) error {
	body := map[string]any{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request body"})
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	raw, err := h.Invoices.Create(ctx, body)
	if err != nil {
		h.Log.Warn("invoice creation failed", zap.Error(err))
		return c.JSON(statusOf(apperr.KindOf(err)), echo.Map{"detail": apperr.Message(err)})
	}
	return c.JSONBlob(http.StatusOK, raw)
}
