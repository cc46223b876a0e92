package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
)

type MarketShipmentStore interface {
	Create(ctx context.Context, v *model.MarketShipment) error
	Get(ctx context.Context, id int64) (*model.MarketShipment, error)
	Update(ctx context.Context, v *model.MarketShipment) error
}

// MarketShipmentPatch is a partial update. DryLeavesID and PowderID may be
// cleared with null; the other fields may not.
type MarketShipmentPatch struct {
	CentraID    model.Optional[string] `json:"CentraID"`
	CustomerID  model.Optional[string] `json:"CustomerID"`
	DryLeavesID model.Optional[int64]  `json:"DryLeavesID"`
	PowderID    model.Optional[int64]  `json:"PowderID"`
	Status      model.Optional[string] `json:"status"`
}

// RowStore loads and saves one marketplace row by id.
type RowStore[T any] interface {
	Get(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, v *T) error
}

// SubTransactionPatch and TransactionPatch only apply fields carrying a
// value; null counts as absent.
type SubTransactionPatch struct {
	MarketShipmentID model.Optional[int64]  `json:"MarketShipmentID"`
	Status           model.Optional[string] `json:"status"`
}

type TransactionPatch struct {
	SubTransactionID model.Optional[int64]  `json:"SubTransactionID"`
	Status           model.Optional[string] `json:"status"`
}

// Market enforces the party roles of a market shipment: the sender must be a
// Centra user and the receiver a Customer user. It also applies the partial
// updates of the transaction tables.
type Market struct {
	Users           UserLookup
	Shipments       MarketShipmentStore
	SubTransactions RowStore[model.SubTransaction]
	Transactions    RowStore[model.Transaction]
}

func (s *Market) requireRole(ctx context.Context, userID string, roleID int, msg string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.InvalidReference(msg)
		}
		return fmt.Errorf("load user: %w", err)
	}
	if u.RoleID != roleID {
		return apperr.InvalidReference(msg)
	}
	return nil
}

const (
	centraRoleMsg   = "CentraID must reference a user with the 'Centra' role."
	customerRoleMsg = "CustomerID must reference a user with the 'Customer' role."
)

func (s *Market) CreateShipment(ctx context.Context, v *model.MarketShipment) error {
	if err := s.requireRole(ctx, v.CentraID, model.RoleCentra, centraRoleMsg); err != nil {
		return err
	}
	if err := s.requireRole(ctx, v.CustomerID, model.RoleCustomer, customerRoleMsg); err != nil {
		return err
	}
	return s.Shipments.Create(ctx, v)
}

// UpdateShipment checks the roles only for the party fields present in p.
func (s *Market) UpdateShipment(ctx context.Context, id int64, p MarketShipmentPatch) (*model.MarketShipment, error) {
	switch {
	case p.CentraID.Null:
		return nil, apperr.Invalid("CentraID cannot be null")
	case p.CustomerID.Null:
		return nil, apperr.Invalid("CustomerID cannot be null")
	case p.Status.Null:
		return nil, apperr.Invalid("status cannot be null")
	}
	ms, err := s.Shipments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := p.CentraID.Get(); ok {
		if err := s.requireRole(ctx, v, model.RoleCentra, centraRoleMsg); err != nil {
			return nil, err
		}
		ms.CentraID = v
	}
	if v, ok := p.CustomerID.Get(); ok {
		if err := s.requireRole(ctx, v, model.RoleCustomer, customerRoleMsg); err != nil {
			return nil, err
		}
		ms.CustomerID = v
	}
	if p.DryLeavesID.Set {
		ms.DryLeavesID = p.DryLeavesID.Ptr()
	}
	if p.PowderID.Set {
		ms.PowderID = p.PowderID.Ptr()
	}
	if v, ok := p.Status.Get(); ok {
		ms.Status = v
	}
	if err := s.Shipments.Update(ctx, ms); err != nil {
		return nil, err
	}
	return ms, nil
}

func (s *Market) UpdateSubTransaction(ctx context.Context, id int64, p SubTransactionPatch) (*model.SubTransaction, error) {
	st, err := s.SubTransactions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := p.MarketShipmentID.Get(); ok {
		st.MarketShipmentID = v
	}
	if v, ok := p.Status.Get(); ok {
		st.Status = v
	}
	if err := s.SubTransactions.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Market) UpdateTransaction(ctx context.Context, id int64, p TransactionPatch) (*model.Transaction, error) {
	tx, err := s.Transactions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := p.SubTransactionID.Get(); ok {
		tx.SubTransactionID = v
	}
	if v, ok := p.Status.Get(); ok {
		tx.Status = v
	}
	if err := s.Transactions.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}
