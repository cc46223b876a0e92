package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/leaf-supply-chain/internal/model"
)

const shipmentColumns = `ShipmentID, CourierID, UserID, ShipmentQuantity, ShipmentDate, Check_in_Date,
	Check_in_Quantity, Harbor_Reception_File, Rescalled_Weight, Rescalled_Date, Centra_Reception_File`

type ShipmentRepo struct{ DB *sqlx.DB }

func NewShipmentRepo(db *sqlx.DB) *ShipmentRepo { return &ShipmentRepo{DB: db} }

// withTx runs fn inside a transaction and commits when fn returns nil.
func (r *ShipmentRepo) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func attachFlour(ctx context.Context, tx *sqlx.Tx, shipmentID int64, flourIDs []int64) error {
	for _, fid := range flourIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO shipment_flour_association (shipment_id, flour_id) VALUES (?, ?)",
			shipmentID, fid); err != nil {
			return classify("attach flour", err)
		}
	}
	return nil
}

// Create inserts s and links the given flour ids in one transaction. The
// ids must already be resolved against the flour table.
func (r *ShipmentRepo) Create(ctx context.Context, s *model.Shipment, flourIDs []int64) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO shipments (CourierID, UserID, ShipmentQuantity) VALUES (?, ?, ?)",
			s.CourierID, s.UserID, s.ShipmentQuantity)
		if err != nil {
			return classify("insert shipment", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.ShipmentID = id
		return attachFlour(ctx, tx, id, flourIDs)
	})
}

// Save writes every column of s. When flourIDs is non-nil the association
// set is replaced by it.
func (r *ShipmentRepo) Save(ctx context.Context, s *model.Shipment, flourIDs []int64) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx,
			`UPDATE shipments SET CourierID = :CourierID, UserID = :UserID,
			 ShipmentQuantity = :ShipmentQuantity, ShipmentDate = :ShipmentDate,
			 Check_in_Date = :Check_in_Date, Check_in_Quantity = :Check_in_Quantity,
			 Harbor_Reception_File = :Harbor_Reception_File, Rescalled_Weight = :Rescalled_Weight,
			 Rescalled_Date = :Rescalled_Date, Centra_Reception_File = :Centra_Reception_File
			 WHERE ShipmentID = :ShipmentID`, s)
		if err != nil {
			return classify("update shipment", err)
		}
		if err := requireRow(res, "Shipment not found"); err != nil {
			return err
		}
		if flourIDs == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM shipment_flour_association WHERE shipment_id = ?", s.ShipmentID); err != nil {
			return classify("clear flour", err)
		}
		return attachFlour(ctx, tx, s.ShipmentID, flourIDs)
	})
}

func (r *ShipmentRepo) Get(ctx context.Context, id int64) (*model.Shipment, error) {
	var s model.Shipment
	if err := r.DB.GetContext(ctx, &s, "SELECT "+shipmentColumns+" FROM shipments WHERE ShipmentID = ?", id); err != nil {
		return nil, notFound(err, "Shipment not found")
	}
	return &s, nil
}

func (r *ShipmentRepo) FlourIDs(ctx context.Context, shipmentID int64) ([]int64, error) {
	ids := []int64{}
	err := r.DB.SelectContext(ctx, &ids,
		"SELECT flour_id FROM shipment_flour_association WHERE shipment_id = ? ORDER BY flour_id", shipmentID)
	return ids, err
}

// FlourWeightSum totals Flour_Weight over the flour linked to the shipment.
func (r *ShipmentRepo) FlourWeightSum(ctx context.Context, shipmentID int64) (float64, error) {
	var sum float64
	err := r.DB.GetContext(ctx, &sum,
		`SELECT COALESCE(SUM(f.Flour_Weight), 0) FROM flour f
		 JOIN shipment_flour_association a ON a.flour_id = f.FlourID
		 WHERE a.shipment_id = ?`, shipmentID)
	return sum, err
}

// views attaches the flour ids of each shipment with one association query.
func (r *ShipmentRepo) views(ctx context.Context, rows []model.Shipment) ([]model.ShipmentView, error) {
	out := make([]model.ShipmentView, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	ids := make([]int64, len(rows))
	index := make(map[int64]int, len(rows))
	for i, s := range rows {
		ids[i] = s.ShipmentID
		index[s.ShipmentID] = i
		out[i] = model.ShipmentView{Shipment: s, FlourIDs: []int64{}}
	}
	q, args, err := sqlx.In(
		"SELECT shipment_id, flour_id FROM shipment_flour_association WHERE shipment_id IN (?) ORDER BY flour_id", ids)
	if err != nil {
		return nil, err
	}
	var links []model.ShipmentFlour
	if err := r.DB.SelectContext(ctx, &links, r.DB.Rebind(q), args...); err != nil {
		return nil, err
	}
	for _, l := range links {
		i := index[l.ShipmentID]
		out[i].FlourIDs = append(out[i].FlourIDs, l.FlourID)
	}
	return out, nil
}

func (r *ShipmentRepo) List(ctx context.Context, skip, limit int) ([]model.ShipmentView, error) {
	skip, limit = page(skip, limit)
	var rows []model.Shipment
	if err := r.DB.SelectContext(ctx, &rows,
		"SELECT "+shipmentColumns+" FROM shipments ORDER BY ShipmentID LIMIT ? OFFSET ?", limit, skip); err != nil {
		return nil, err
	}
	return r.views(ctx, rows)
}

func (r *ShipmentRepo) ListByUser(ctx context.Context, userID string) ([]model.ShipmentView, error) {
	var rows []model.Shipment
	if err := r.DB.SelectContext(ctx, &rows,
		"SELECT "+shipmentColumns+" FROM shipments WHERE UserID = ? ORDER BY ShipmentID", userID); err != nil {
		return nil, err
	}
	return r.views(ctx, rows)
}

func (r *ShipmentRepo) IDs(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	err := r.DB.SelectContext(ctx, &ids, "SELECT ShipmentID FROM shipments ORDER BY ShipmentID")
	return ids, err
}

// DispatchedNotCheckedIn lists shipments that have a dispatch date but no
// check-in date yet.
func (r *ShipmentRepo) DispatchedNotCheckedIn(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	err := r.DB.SelectContext(ctx, &ids,
		`SELECT ShipmentID FROM shipments
		 WHERE ShipmentDate IS NOT NULL AND Check_in_Date IS NULL ORDER BY ShipmentID`)
	return ids, err
}

func (r *ShipmentRepo) Associations(ctx context.Context) ([]model.ShipmentFlour, error) {
	out := []model.ShipmentFlour{}
	err := r.DB.SelectContext(ctx, &out,
		"SELECT shipment_id, flour_id FROM shipment_flour_association ORDER BY shipment_id, flour_id")
	return out, err
}

// Delete removes the shipment; the association rows cascade.
func (r *ShipmentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM shipment_flour_association WHERE shipment_id = ?", id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM shipments WHERE ShipmentID = ?", id)
		if err != nil {
			return err
		}
		deleted, err = affected(res)
		return err
	})
	if err != nil {
		return false, classify("delete shipment", err)
	}
	return deleted, nil
}
