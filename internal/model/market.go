package model

// Marketplace rows. They link to users, products and stage batches by id
// only; no foreign key beyond users is enforced by the service.

type Product struct {
	ProductID   int64  `db:"ProductID" json:"ProductID"`
	ProductName string `db:"ProductName" json:"ProductName"`
}

type AdminSettings struct {
	AdminSettingsID int64 `db:"AdminSettingsID" json:"AdminSettingsID"`
	AdminFeeValue   int64 `db:"AdminFeeValue" json:"AdminFeeValue"`
}

type CentraInitialPrice struct {
	InitialPriceID int64  `db:"InitialPriceID" json:"InitialPriceID"`
	UserID         string `db:"UserID" json:"UserID"`
	ProductID      int64  `db:"ProductID" json:"ProductID"`
	InitialPrice   int64  `db:"InitialPrice" json:"InitialPrice"`
}

// DiscountCondition grants DiscountRate percent once a batch has ExpDayLeft
// days or fewer before expiring.
type DiscountCondition struct {
	DiscountConditionID int64 `db:"DiscountConditionID" json:"DiscountConditionID"`
	DiscountRate        int64 `db:"DiscountRate" json:"DiscountRate"`
	ExpDayLeft          int64 `db:"ExpDayLeft" json:"ExpDayLeft"`
}

type CentraSettingDetail struct {
	SettingDetailID     int64  `db:"SettingDetailID" json:"SettingDetailID"`
	UserID              string `db:"UserID" json:"UserID"`
	ProductID           int64  `db:"ProductID" json:"ProductID"`
	DiscountConditionID int64  `db:"DiscountConditionID" json:"DiscountConditionID"`
}

// MarketShipment moves a centra's product to a customer. CentraID must be a
// Centra user and CustomerID a Customer user.
type MarketShipment struct {
	MarketShipmentID int64  `db:"MarketShipmentID" json:"MarketShipmentID"`
	CentraID         string `db:"CentraID" json:"CentraID"`
	CustomerID       string `db:"CustomerID" json:"CustomerID"`
	DryLeavesID      *int64 `db:"DryLeavesID" json:"DryLeavesID"`
	PowderID         *int64 `db:"PowderID" json:"PowderID"`
	Status           string `db:"status" json:"status"`
}

type SubTransaction struct {
	SubTransactionID int64  `db:"SubTransactionID" json:"SubTransactionID"`
	MarketShipmentID int64  `db:"MarketShipmentID" json:"MarketShipmentID"`
	Status           string `db:"status" json:"status"`
}

type Transaction struct {
	TransactionID    int64  `db:"TransactionID" json:"TransactionID"`
	SubTransactionID int64  `db:"SubTransactionID" json:"SubTransactionID"`
	Status           string `db:"status" json:"status"`
}
