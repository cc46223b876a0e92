package model

import "time"

// DefaultStageStatus is assigned to a stage row created without a status.
const DefaultStageStatus = "Awaiting"

// WetLeaves is a raw intake batch (`wet_leaves`).
type WetLeaves struct {
	WetLeavesID  int64     `db:"WetLeavesID" json:"WetLeavesID"`
	UserID       string    `db:"UserID" json:"UserID"`
	Weight       float64   `db:"Weight" json:"Weight"`
	ReceivedTime time.Time `db:"ReceivedTime" json:"ReceivedTime"`
	Expiration   time.Time `db:"Expiration" json:"Expiration"`
	Status       string    `db:"Status" json:"Status"`
}

// DryLeaves is derived from one WetLeaves batch of the same user (`dry_leaves`).
type DryLeaves struct {
	DryLeavesID     int64      `db:"DryLeavesID" json:"DryLeavesID"`
	UserID          string     `db:"UserID" json:"UserID"`
	WetLeavesID     int64      `db:"WetLeavesID" json:"WetLeavesID"`
	ProcessedWeight *float64   `db:"Processed_Weight" json:"Processed_Weight"`
	Expiration      *time.Time `db:"Expiration" json:"Expiration"`
	Status          string     `db:"Status" json:"Status"`
}

// Flour is derived from one DryLeaves batch of the same user (`flour`).
type Flour struct {
	FlourID     int64      `db:"FlourID" json:"FlourID"`
	UserID      string     `db:"UserID" json:"UserID"`
	DryLeavesID int64      `db:"DryLeavesID" json:"DryLeavesID"`
	FlourWeight float64    `db:"Flour_Weight" json:"Flour_Weight"`
	Expiration  *time.Time `db:"Expiration" json:"Expiration"`
	Status      string     `db:"Status" json:"Status"`
}

// StageItem is the compact projection used by the /items listing.
type StageItem struct {
	ID         int64      `db:"ID" json:"id"`
	UserID     string     `db:"UserID" json:"user_id"`
	Weight     *float64   `db:"Weight" json:"weight"`
	Expiration *time.Time `db:"Expiration" json:"expiration"`
	Status     string     `db:"Status" json:"status"`
}
