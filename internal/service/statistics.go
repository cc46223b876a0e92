package service

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

// StageTotals sums stage weights and shipment quantities. An empty userID
// means every user.
type StageTotals interface {
	SumWetLeaves(ctx context.Context, userID string) (float64, error)
	SumDryLeaves(ctx context.Context, userID string) (float64, error)
	SumFlour(ctx context.Context, userID string) (float64, error)
	SumShipmentQuantity(ctx context.Context, userID string) (float64, error)
	SumWetLeavesOn(ctx context.Context, userID string, day time.Time) (float64, error)
}

// Totals are truncated toward zero.
type Totals struct {
	WetLeaves        int64 `json:"sum_wet_leaves"`
	DryLeaves        int64 `json:"sum_dry_leaves"`
	Flour            int64 `json:"sum_flour"`
	ShipmentQuantity int64 `json:"sum_shipment_quantity"`
}

type Statistics struct {
	Sums StageTotals
	Now  func() time.Time
}

// Totals runs the four sums concurrently. Any failing sum fails the call.
func (s *Statistics) Totals(ctx context.Context, userID string) (Totals, error) {
	var t Totals
	g, gctx := errgroup.WithContext(ctx)
	run := func(dst *int64, sum func(context.Context, string) (float64, error)) {
		g.Go(func() error {
			v, err := sum(gctx, userID)
			if err != nil {
				return err
			}
			*dst = int64(math.Trunc(v))
			return nil
		})
	}
	run(&t.WetLeaves, s.Sums.SumWetLeaves)
	run(&t.DryLeaves, s.Sums.SumDryLeaves)
	run(&t.Flour, s.Sums.SumFlour)
	run(&t.ShipmentQuantity, s.Sums.SumShipmentQuantity)
	if err := g.Wait(); err != nil {
		return Totals{}, err
	}
	return t, nil
}

// WetLeavesToday sums the wet leaves userID received on the current local
// date.
func (s *Statistics) WetLeavesToday(ctx context.Context, userID string) (float64, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return s.Sums.SumWetLeavesOn(ctx, userID, now())
}
