package model

import "time"

// Shipment mirrors `shipments`. Flour batches are linked through
// `shipment_flour_association` and are not owned by the shipment.
type Shipment struct {
	ShipmentID          int64      `db:"ShipmentID" json:"ShipmentID"`
	CourierID           int64      `db:"CourierID" json:"CourierID"`
	UserID              string     `db:"UserID" json:"UserID"`
	ShipmentQuantity    int64      `db:"ShipmentQuantity" json:"ShipmentQuantity"`
	ShipmentDate        *time.Time `db:"ShipmentDate" json:"ShipmentDate"`
	CheckInDate         *time.Time `db:"Check_in_Date" json:"Check_in_Date"`
	CheckInQuantity     *int64     `db:"Check_in_Quantity" json:"Check_in_Quantity"`
	HarborReceptionFile *bool      `db:"Harbor_Reception_File" json:"Harbor_Reception_File"`
	RescaledWeight      *float64   `db:"Rescalled_Weight" json:"Rescalled_Weight"`
	RescaledDate        *time.Time `db:"Rescalled_Date" json:"Rescalled_Date"`
	CentraReceptionFile *bool      `db:"Centra_Reception_File" json:"Centra_Reception_File"`
}

// ShipmentView is the projection returned by shipment reads and updates.
type ShipmentView struct {
	Shipment
	FlourIDs []int64 `json:"FlourIDs"`
}

// ShipmentDetail adds the computed and denormalized fields of a single read.
// CourierName and UserName stay nil when the reference dangles.
type ShipmentDetail struct {
	ShipmentView
	FlourWeightSum float64 `json:"FlourWeightSum"`
	CourierName    *string `json:"CourierName"`
	UserName       *string `json:"UserName"`
}

// ShipmentFlour is one row of the association set.
type ShipmentFlour struct {
	ShipmentID int64 `db:"shipment_id" json:"shipment_id"`
	FlourID    int64 `db:"flour_id" json:"flour_id"`
}
