package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/leaf-supply-chain/internal/model"
)

// CourierRepo, LocationRepo and CityRepo back the reference lists used by
// shipments and the front end map.

type CourierRepo struct{ DB *sqlx.DB }

func NewCourierRepo(db *sqlx.DB) *CourierRepo { return &CourierRepo{DB: db} }

func (r *CourierRepo) Create(ctx context.Context, c *model.Courier) error {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO couriers (CourierName) VALUES (?)", c.CourierName)
	if err != nil {
		return classify("insert courier", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.CourierID = id
	return nil
}

func (r *CourierRepo) GetByID(ctx context.Context, id int64) (*model.Courier, error) {
	var c model.Courier
	if err := r.DB.GetContext(ctx, &c, "SELECT CourierID, CourierName FROM couriers WHERE CourierID = ?", id); err != nil {
		return nil, notFound(err, "courier not found")
	}
	return &c, nil
}

func (r *CourierRepo) List(ctx context.Context, skip, limit int) ([]model.Courier, error) {
	skip, limit = page(skip, limit)
	out := []model.Courier{}
	err := r.DB.SelectContext(ctx, &out,
		"SELECT CourierID, CourierName FROM couriers ORDER BY CourierID LIMIT ? OFFSET ?", limit, skip)
	return out, err
}

func (r *CourierRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM couriers WHERE CourierID = ?", id)
	if err != nil {
		return false, classify("delete courier", err)
	}
	return affected(res)
}

type LocationRepo struct{ DB *sqlx.DB }

func NewLocationRepo(db *sqlx.DB) *LocationRepo { return &LocationRepo{DB: db} }

const locationColumns = "LocationID, LocationAddress, Latitude, Longitude"

func (r *LocationRepo) Create(ctx context.Context, l *model.Location) error {
	res, err := r.DB.NamedExecContext(ctx,
		`INSERT INTO locations (LocationAddress, Latitude, Longitude)
		 VALUES (:LocationAddress, :Latitude, :Longitude)`, l)
	if err != nil {
		return classify("insert location", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.LocationID = id
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*model.Location, error) {
	var l model.Location
	if err := r.DB.GetContext(ctx, &l, "SELECT "+locationColumns+" FROM locations WHERE LocationID = ?", id); err != nil {
		return nil, notFound(err, "location not found")
	}
	return &l, nil
}

func (r *LocationRepo) List(ctx context.Context, skip, limit int) ([]model.Location, error) {
	skip, limit = page(skip, limit)
	out := []model.Location{}
	err := r.DB.SelectContext(ctx, &out,
		"SELECT "+locationColumns+" FROM locations ORDER BY LocationID LIMIT ? OFFSET ?", limit, skip)
	return out, err
}

func (r *LocationRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM locations WHERE LocationID = ?", id)
	if err != nil {
		return false, classify("delete location", err)
	}
	return affected(res)
}

type CityRepo struct{ DB *sqlx.DB }

func NewCityRepo(db *sqlx.DB) *CityRepo { return &CityRepo{DB: db} }

func (r *CityRepo) List(ctx context.Context) ([]model.City, error) {
	out := []model.City{}
	err := r.DB.SelectContext(ctx, &out, "SELECT CityID, `key`, name, lat, lng FROM cities ORDER BY name")
	return out, err
}
