package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/leaf-supply-chain/internal/model"
)

// MarketRepos groups the marketplace tables.
type MarketRepos struct {
	Products        *Table[model.Product]
	AdminSettings   *Table[model.AdminSettings]
	InitialPrices   *Table[model.CentraInitialPrice]
	Discounts       *Table[model.DiscountCondition]
	SettingDetails  *Table[model.CentraSettingDetail]
	Shipments       *Table[model.MarketShipment]
	SubTransactions *Table[model.SubTransaction]
	Transactions    *Table[model.Transaction]
}

func NewMarketRepos(db *sqlx.DB) *MarketRepos {
	return &MarketRepos{
		Products: &Table[model.Product]{
			DB: db, Name: "products", IDCol: "ProductID",
			Cols:    []string{"ProductName"},
			Missing: "Product not found",
			SetID:   func(v *model.Product, id int64) { v.ProductID = id },
		},
		AdminSettings: &Table[model.AdminSettings]{
			DB: db, Name: "admin_settings", IDCol: "AdminSettingsID",
			Cols:    []string{"AdminFeeValue"},
			Missing: "Admin settings not found",
			SetID:   func(v *model.AdminSettings, id int64) { v.AdminSettingsID = id },
		},
		InitialPrices: &Table[model.CentraInitialPrice]{
			DB: db, Name: "centra_initial_prices", IDCol: "InitialPriceID",
			Cols:       []string{"UserID", "ProductID", "InitialPrice"},
			UpdateCols: []string{"InitialPrice"},
			Missing:    "CentraInitialPrice not found",
			SetID:      func(v *model.CentraInitialPrice, id int64) { v.InitialPriceID = id },
		},
		Discounts: &Table[model.DiscountCondition]{
			DB: db, Name: "discount_conditions", IDCol: "DiscountConditionID",
			Cols:    []string{"DiscountRate", "ExpDayLeft"},
			Missing: "DiscountCondition not found",
			SetID:   func(v *model.DiscountCondition, id int64) { v.DiscountConditionID = id },
		},
		SettingDetails: &Table[model.CentraSettingDetail]{
			DB: db, Name: "centra_setting_details", IDCol: "SettingDetailID",
			Cols:    []string{"UserID", "ProductID", "DiscountConditionID"},
			Missing: "CentraSettingDetail not found",
			SetID:   func(v *model.CentraSettingDetail, id int64) { v.SettingDetailID = id },
		},
		Shipments: &Table[model.MarketShipment]{
			DB: db, Name: "market_shipments", IDCol: "MarketShipmentID",
			Cols:    []string{"CentraID", "CustomerID", "DryLeavesID", "PowderID", "status"},
			Missing: "MarketShipment not found",
			SetID:   func(v *model.MarketShipment, id int64) { v.MarketShipmentID = id },
		},
		SubTransactions: &Table[model.SubTransaction]{
			DB: db, Name: "sub_transactions", IDCol: "SubTransactionID",
			Cols:    []string{"MarketShipmentID", "status"},
			Missing: "SubTransaction not found",
			SetID:   func(v *model.SubTransaction, id int64) { v.SubTransactionID = id },
		},
		Transactions: &Table[model.Transaction]{
			DB: db, Name: "transactions", IDCol: "TransactionID",
			Cols:    []string{"SubTransactionID", "status"},
			Missing: "Transaction not found",
			SetID:   func(v *model.Transaction, id int64) { v.TransactionID = id },
		},
	}
}
