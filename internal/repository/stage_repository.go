package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/leaf-supply-chain/internal/model"
)

const (
	wetColumns   = "WetLeavesID, UserID, Weight, ReceivedTime, Expiration, Status"
	dryColumns   = "DryLeavesID, UserID, WetLeavesID, Processed_Weight, Expiration, Status"
	flourColumns = "FlourID, UserID, DryLeavesID, Flour_Weight, Expiration, Status"
)

// stageStatus applies the default status to a row about to be inserted.
func stageStatus(s string) string {
	if s == "" {
		return model.DefaultStageStatus
	}
	return s
}

// WetLeavesRepo persists raw intake batches.
type WetLeavesRepo struct{ DB *sqlx.DB }

func NewWetLeavesRepo(db *sqlx.DB) *WetLeavesRepo { return &WetLeavesRepo{DB: db} }

func (r *WetLeavesRepo) Create(ctx context.Context, w *model.WetLeaves) error {
	w.Status = stageStatus(w.Status)
	res, err := r.DB.NamedExecContext(ctx,
		`INSERT INTO wet_leaves (UserID, Weight, ReceivedTime, Expiration, Status)
		 VALUES (:UserID, :Weight, :ReceivedTime, :Expiration, :Status)`, w)
	if err != nil {
		return classify("insert wet leaves", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.WetLeavesID = id
	return nil
}

func (r *WetLeavesRepo) GetByID(ctx context.Context, id int64) (*model.WetLeaves, error) {
	var w model.WetLeaves
	if err := r.DB.GetContext(ctx, &w, "SELECT "+wetColumns+" FROM wet_leaves WHERE WetLeavesID = ?", id); err != nil {
		return nil, notFound(err, "Wet leaves not found")
	}
	return &w, nil
}

// GetOwned returns the batch only when it belongs to userID.
func (r *WetLeavesRepo) GetOwned(ctx context.Context, id int64, userID string) (*model.WetLeaves, error) {
	var w model.WetLeaves
	err := r.DB.GetContext(ctx, &w,
		"SELECT "+wetColumns+" FROM wet_leaves WHERE WetLeavesID = ? AND UserID = ?", id, userID)
	if err != nil {
		return nil, notFound(err, "wet leaves not found or not owned by user")
	}
	return &w, nil
}

func (r *WetLeavesRepo) List(ctx context.Context, limit int) ([]model.WetLeaves, error) {
	_, limit = page(0, limit)
	out := []model.WetLeaves{}
	err := r.DB.SelectContext(ctx, &out, "SELECT "+wetColumns+" FROM wet_leaves ORDER BY WetLeavesID LIMIT ?", limit)
	return out, err
}

func (r *WetLeavesRepo) ListByUser(ctx context.Context, userID string) ([]model.WetLeaves, error) {
	out := []model.WetLeaves{}
	err := r.DB.SelectContext(ctx, &out,
		"SELECT "+wetColumns+" FROM wet_leaves WHERE UserID = ? ORDER BY WetLeavesID", userID)
	return out, err
}

// UpdateWeight sets Weight and, when exp is non-nil, Expiration.
func (r *WetLeavesRepo) UpdateWeight(ctx context.Context, id int64, weight float64, exp *time.Time) (*model.WetLeaves, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE wet_leaves SET Weight = ?, Expiration = COALESCE(?, Expiration) WHERE WetLeavesID = ?",
		weight, exp, id)
	if err != nil {
		return nil, classify("update wet leaves", err)
	}
	if err := requireRow(res, "Wet leaves not found"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *WetLeavesRepo) UpdateStatus(ctx context.Context, id int64, status string) (*model.WetLeaves, error) {
	res, err := r.DB.ExecContext(ctx, "UPDATE wet_leaves SET Status = ? WHERE WetLeavesID = ?", status, id)
	if err != nil {
		return nil, classify("update wet leaves status", err)
	}
	if err := requireRow(res, "Wet leaves not found"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *WetLeavesRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM wet_leaves WHERE WetLeavesID = ?", id)
	if err != nil {
		return false, classify("delete wet leaves", err)
	}
	return affected(res)
}

// DryLeavesRepo persists batches derived from wet leaves.
type DryLeavesRepo struct{ DB *sqlx.DB }

func NewDryLeavesRepo(db *sqlx.DB) *DryLeavesRepo { return &DryLeavesRepo{DB: db} }

func (r *DryLeavesRepo) Create(ctx context.Context, d *model.DryLeaves) error {
	d.Status = stageStatus(d.Status)
	res, err := r.DB.NamedExecContext(ctx,
		`INSERT INTO dry_leaves (UserID, WetLeavesID, Processed_Weight, Expiration, Status)
		 VALUES (:UserID, :WetLeavesID, :Processed_Weight, :Expiration, :Status)`, d)
	if err != nil {
		return classify("insert dry leaves", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.DryLeavesID = id
	return nil
}

func (r *DryLeavesRepo) GetByID(ctx context.Context, id int64) (*model.DryLeaves, error) {
	var d model.DryLeaves
	if err := r.DB.GetContext(ctx, &d, "SELECT "+dryColumns+" FROM dry_leaves WHERE DryLeavesID = ?", id); err != nil {
		return nil, notFound(err, "Dry leaves not found")
	}
	return &d, nil
}

func (r *DryLeavesRepo) GetOwned(ctx context.Context, id int64, userID string) (*model.DryLeaves, error) {
	var d model.DryLeaves
	err := r.DB.GetContext(ctx, &d,
		"SELECT "+dryColumns+" FROM dry_leaves WHERE DryLeavesID = ? AND UserID = ?", id, userID)
	if err != nil {
		return nil, notFound(err, "dry leaves not found or not owned by user")
	}
	return &d, nil
}

func (r *DryLeavesRepo) List(ctx context.Context, limit int) ([]model.DryLeaves, error) {
	_, limit = page(0, limit)
	out := []model.DryLeaves{}
	err := r.DB.SelectContext(ctx, &out, "SELECT "+dryColumns+" FROM dry_leaves ORDER BY DryLeavesID LIMIT ?", limit)
	return out, err
}

func (r *DryLeavesRepo) ListByUser(ctx context.Context, userID string) ([]model.DryLeaves, error) {
	out := []model.DryLeaves{}
	err := r.DB.SelectContext(ctx, &out,
		"SELECT "+dryColumns+" FROM dry_leaves WHERE UserID = ? ORDER BY DryLeavesID", userID)
	return out, err
}

// Items returns the compact projection used by the items listing.
func (r *DryLeavesRepo) Items(ctx context.Context, limit int) ([]model.StageItem, error) {
	_, limit = page(0, limit)
	out := []model.StageItem{}
	err := r.DB.SelectContext(ctx, &out,
		`SELECT DryLeavesID AS ID, UserID, Processed_Weight AS Weight, Expiration, Status
		 FROM dry_leaves ORDER BY DryLeavesID LIMIT ?`, limit)
	return out, err
}

func (r *DryLeavesRepo) UpdateWeight(ctx context.Context, id int64, weight float64, exp *time.Time) (*model.DryLeaves, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE dry_leaves SET Processed_Weight = ?, Expiration = COALESCE(?, Expiration) WHERE DryLeavesID = ?",
		weight, exp, id)
	if err != nil {
		return nil, classify("update dry leaves", err)
	}
	if err := requireRow(res, "Dry leaves not found"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *DryLeavesRepo) UpdateStatus(ctx context.Context, id int64, status string) (*model.DryLeaves, error) {
	res, err := r.DB.ExecContext(ctx, "UPDATE dry_leaves SET Status = ? WHERE DryLeavesID = ?", status, id)
	if err != nil {
		return nil, classify("update dry leaves status", err)
	}
	if err := requireRow(res, "Dry leaves not found"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *DryLeavesRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM dry_leaves WHERE DryLeavesID = ?", id)
	if err != nil {
		return false, classify("delete dry leaves", err)
	}
	return affected(res)
}

// FlourRepo persists batches derived from dry leaves.
type FlourRepo struct{ DB *sqlx.DB }

func NewFlourRepo(db *sqlx.DB) *FlourRepo { return &FlourRepo{DB: db} }

func (r *FlourRepo) Create(ctx context.Context, f *model.Flour) error {
	f.Status = stageStatus(f.Status)
	res, err := r.DB.NamedExecContext(ctx,
		`INSERT INTO flour (UserID, DryLeavesID, Flour_Weight, Expiration, Status)
		 VALUES (:UserID, :DryLeavesID, :Flour_Weight, :Expiration, :Status)`, f)
	if err != nil {
		return classify("insert flour", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.FlourID = id
	return nil
}

func (r *FlourRepo) GetByID(ctx context.Context, id int64) (*model.Flour, error) {
	var f model.Flour
	if err := r.DB.GetContext(ctx, &f, "SELECT "+flourColumns+" FROM flour WHERE FlourID = ?", id); err != nil {
		return nil, notFound(err, "Flour not found")
	}
	return &f, nil
}

func (r *FlourRepo) List(ctx context.Context, limit int) ([]model.Flour, error) {
	_, limit = page(0, limit)
	out := []model.Flour{}
	err := r.DB.SelectContext(ctx, &out, "SELECT "+flourColumns+" FROM flour ORDER BY FlourID LIMIT ?", limit)
	return out, err
}

func (r *FlourRepo) ListByUser(ctx context.Context, userID string) ([]model.Flour, error) {
	out := []model.Flour{}
	err := r.DB.SelectContext(ctx, &out,
		"SELECT "+flourColumns+" FROM flour WHERE UserID = ? ORDER BY FlourID", userID)
	return out, err
}

func (r *FlourRepo) Items(ctx context.Context, limit int) ([]model.StageItem, error) {
	_, limit = page(0, limit)
	out := []model.StageItem{}
	err := r.DB.SelectContext(ctx, &out,
		`SELECT FlourID AS ID, UserID, Flour_Weight AS Weight, Expiration, Status
		 FROM flour ORDER BY FlourID LIMIT ?`, limit)
	return out, err
}

// ExistingIDs returns the subset of ids that name a flour row.
func (r *FlourRepo) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q, args, err := sqlx.In("SELECT FlourID FROM flour WHERE FlourID IN (?) ORDER BY FlourID", ids)
	if err != nil {
		return nil, err
	}
	var out []int64
	err = r.DB.SelectContext(ctx, &out, r.DB.Rebind(q), args...)
	return out, err
}

func (r *FlourRepo) UpdateWeight(ctx context.Context, id int64, weight float64, exp *time.Time) (*model.Flour, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE flour SET Flour_Weight = ?, Expiration = COALESCE(?, Expiration) WHERE FlourID = ?",
		weight, exp, id)
	if err != nil {
		return nil, classify("update flour", err)
	}
	if err := requireRow(res, "Flour not found"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *FlourRepo) UpdateStatus(ctx context.Context, id int64, status string) (*model.Flour, error) {
	res, err := r.DB.ExecContext(ctx, "UPDATE flour SET Status = ? WHERE FlourID = ?", status, id)
	if err != nil {
		return nil, classify("update flour status", err)
	}
	if err := requireRow(res, "Flour not found"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *FlourRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM flour WHERE FlourID = ?", id)
	if err != nil {
		return false, classify("delete flour", err)
	}
	return affected(res)
}
