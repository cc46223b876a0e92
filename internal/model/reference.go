package model

// Courier mirrors `couriers`.
type Courier struct {
	CourierID   int64  `db:"CourierID" json:"CourierID"`
	CourierName string `db:"CourierName" json:"CourierName"`
}

// Location mirrors `locations`.
type Location struct {
	LocationID      int64   `db:"LocationID" json:"LocationID"`
	LocationAddress string  `db:"LocationAddress" json:"LocationAddress"`
	Latitude        float64 `db:"Latitude" json:"Latitude"`
	Longitude       float64 `db:"Longitude" json:"Longitude"`
}

// City mirrors `cities`, seeded from the embedded list in package database.
type City struct {
	CityID int64   `db:"CityID" json:"id" yaml:"-"`
	Key    string  `db:"key" json:"key" yaml:"key"`
	Name   string  `db:"name" json:"name" yaml:"name"`
	Lat    float64 `db:"lat" json:"lat" yaml:"lat"`
	Lng    float64 `db:"lng" json:"lng" yaml:"lng"`
}
