// Package service holds the business rules that sit between the HTTP
// handlers and the repositories. Services depend on small store interfaces
// so they can be exercised without a database.
package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
)

type UserExistence interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type WetLeavesStore interface {
	Create(ctx context.Context, w *model.WetLeaves) error
	GetOwned(ctx context.Context, id int64, userID string) (*model.WetLeaves, error)
}

type DryLeavesStore interface {
	Create(ctx context.Context, d *model.DryLeaves) error
	GetOwned(ctx context.Context, id int64, userID string) (*model.DryLeaves, error)
}

type FlourStore interface {
	Create(ctx context.Context, f *model.Flour) error
}

// Inventory creates stage batches. A derived batch must name a parent batch
// owned by the same user. A parent may feed any number of children.
type Inventory struct {
	Users UserExistence
	Wet   WetLeavesStore
	Dry   DryLeavesStore
	Flour FlourStore
}

func (s *Inventory) CreateWetLeaves(ctx context.Context, w *model.WetLeaves) error {
	ok, err := s.Users.Exists(ctx, w.UserID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return apperr.InvalidReference("user does not exist")
	}
	return s.Wet.Create(ctx, w)
}

// CreateDryLeaves inserts d after checking that its wet leaves batch exists
// and belongs to d.UserID. Nothing is written when the check fails.
func (s *Inventory) CreateDryLeaves(ctx context.Context, d *model.DryLeaves) error {
	if _, err := s.Wet.GetOwned(ctx, d.WetLeavesID, d.UserID); err != nil {
		return err
	}
	return s.Dry.Create(ctx, d)
}

// CreateFlour is the same check one stage further down.
func (s *Inventory) CreateFlour(ctx context.Context, f *model.Flour) error {
	if _, err := s.Dry.GetOwned(ctx, f.DryLeavesID, f.UserID); err != nil {
		return err
	}
	return s.Flour.Create(ctx, f)
}
