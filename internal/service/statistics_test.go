package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTotalsTruncates(t *testing.T) {
	svc := &Statistics{Sums: &fakeSums{wet: 1500.9, dry: 999.99, flour: 0, qty: 2_300_000.5}}
	got, err := svc.Totals(context.Background(), "")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	want := Totals{WetLeaves: 1500, DryLeaves: 999, Flour: 0, ShipmentQuantity: 2_300_000}
	if got != want {
		t.Fatalf("totals = %+v, want %+v", got, want)
	}
}

func TestTotalsPerUser(t *testing.T) {
	svc := &Statistics{Sums: &fakeSums{wet: 10, dry: 8, flour: 6, qty: 4}}
	got, err := svc.Totals(context.Background(), "alice")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if got.WetLeaves != 5 || got.ShipmentQuantity != 2 {
		t.Fatalf("per-user totals = %+v", got)
	}
}

func TestTotalsFailsOnAnySum(t *testing.T) {
	svc := &Statistics{Sums: &fakeSums{fail: errBoom}}
	if _, err := svc.Totals(context.Background(), ""); !errors.Is(err, errBoom) {
		t.Fatalf("err = %v", err)
	}
}

func TestWetLeavesTodayUsesClock(t *testing.T) {
	sums := &fakeSums{today: 12.5}
	day := time.Date(2024, 6, 1, 15, 0, 0, 0, time.Local)
	svc := &Statistics{Sums: sums, Now: func() time.Time { return day }}

	got, err := svc.WetLeavesToday(context.Background(), "alice")
	if err != nil || got != 12.5 {
		t.Fatalf("today = %v, %v", got, err)
	}
	if sums.gotUser != "alice" || !sums.gotDay.Equal(day) {
		t.Fatalf("query args user=%s day=%v", sums.gotUser, sums.gotDay)
	}
}
