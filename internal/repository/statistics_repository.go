package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// StatisticsRepo computes weight and quantity totals. An empty userID sums
// over every user.
type StatisticsRepo struct{ DB *sqlx.DB }

func NewStatisticsRepo(db *sqlx.DB) *StatisticsRepo { return &StatisticsRepo{DB: db} }

func (r *StatisticsRepo) sum(ctx context.Context, column, table, userID string) (float64, error) {
	q := "SELECT COALESCE(SUM(" + column + "), 0) FROM " + table
	args := []any{}
	if userID != "" {
		q += " WHERE UserID = ?"
		args = append(args, userID)
	}
	var total float64
	if err := r.DB.GetContext(ctx, &total, q, args...); err != nil {
		return 0, classify("sum "+table, err)
	}
	return total, nil
}

func (r *StatisticsRepo) SumWetLeaves(ctx context.Context, userID string) (float64, error) {
	return r.sum(ctx, "Weight", "wet_leaves", userID)
}

func (r *StatisticsRepo) SumDryLeaves(ctx context.Context, userID string) (float64, error) {
	return r.sum(ctx, "Processed_Weight", "dry_leaves", userID)
}

func (r *StatisticsRepo) SumFlour(ctx context.Context, userID string) (float64, error) {
	return r.sum(ctx, "Flour_Weight", "flour", userID)
}

func (r *StatisticsRepo) SumShipmentQuantity(ctx context.Context, userID string) (float64, error) {
	return r.sum(ctx, "ShipmentQuantity", "shipments", userID)
}

// SumWetLeavesOn sums the wet leaves of userID received on the calendar
// date of day.
func (r *StatisticsRepo) SumWetLeavesOn(ctx context.Context, userID string, day time.Time) (float64, error) {
	var total float64
	err := r.DB.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(Weight), 0) FROM wet_leaves WHERE UserID = ? AND DATE(ReceivedTime) = ?",
		userID, day.Format(time.DateOnly))
	if err != nil {
		return 0, classify("sum wet leaves by day", err)
	}
	return total, nil
}
