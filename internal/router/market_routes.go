package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leaf-supply-chain/internal/handler"
)

func registerMarket(e *echo.Echo, m *handler.MarketHandler, admin []echo.MiddlewareFunc) {
	e.POST("/admin_settings/post", m.AdminSettings.Create, admin...)
	e.GET("/admin_settings/get", m.AdminSettingsFirst)
	e.PUT("/admin_settings/put/:admin_settings_id", m.AdminSettings.Update, admin...)

	e.POST("/product/post", m.Products.Create)
	e.GET("/products/get", m.Products.List)
	e.GET("/product/get/:product_id", m.Products.Get)
	e.PUT("/product/put/:product_id", m.Products.Update)
	e.DELETE("/product/delete/:product_id", m.Products.Delete)

	e.POST("/centra_setting_detail/post", m.SettingDetails.Create)
	e.GET("/centra_setting_details/get", m.SettingDetails.List)
	e.GET("/centra_setting_detail/get/:setting_detail_id", m.SettingDetails.Get)
	e.PUT("/centra_setting_detail/put/:setting_detail_id", m.SettingDetails.Update)
	e.DELETE("/centra_setting_detail/delete/:setting_detail_id", m.SettingDetails.Delete)

	e.POST("/centra_initial_price/post", m.InitialPrices.Create)
	e.GET("/centra_initial_prices/get", m.InitialPrices.List)
	e.GET("/centra_initial_price/get/:initial_price_id", m.InitialPrices.Get)
	e.PUT("/centra_initial_price/put/:initial_price_id", m.InitialPrices.Update)
	e.DELETE("/centra_initial_price/delete/:initial_price_id", m.InitialPrices.Delete)

	e.POST("/discount_condition/post", m.Discounts.Create)
	e.GET("/discount_conditions/get", m.Discounts.List)
	e.GET("/discount_condition/get/:discount_condition_id", m.Discounts.Get)
	e.PUT("/discount_condition/put/:discount_condition_id", m.Discounts.Update)
	e.DELETE("/discount_condition/delete/:discount_condition_id", m.Discounts.Delete)

	e.POST("/market_shipment/post", m.CreateShipment)
	e.GET("/market_shipments/get", m.Shipments.List)
	e.GET("/market_shipment/get/:market_shipment_id", m.Shipments.Get)
	e.PUT("/market_shipment/put/:market_shipment_id", m.UpdateShipment)
	e.DELETE("/market_shipment/delete/:market_shipment_id", m.Shipments.Delete)

	e.POST("/subtransaction/post", m.SubTransactions.Create)
	e.GET("/subtransactions/get", m.SubTransactions.List)
	e.GET("/subtransaction/get/:subtransaction_id", m.SubTransactions.Get)
	e.PUT("/subtransaction/put/:subtransaction_id", m.UpdateSubTransaction)
	e.DELETE("/subtransaction/delete/:subtransaction_id", m.SubTransactions.Delete)

	e.POST("/transaction/post", m.Transactions.Create)
	e.GET("/transactions/get", m.Transactions.List)
	e.GET("/transaction/get/:transaction_id", m.Transactions.Get)
	e.PUT("/transaction/put/:transaction_id", m.UpdateTransaction)
	e.DELETE("/transaction/delete/:transaction_id", m.Transactions.Delete)
}
