package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
	"github.com/iliyamo/leaf-supply-chain/internal/queue"
)

type ShipmentStore interface {
	Create(ctx context.Context, s *model.Shipment, flourIDs []int64) error
	Save(ctx context.Context, s *model.Shipment, flourIDs []int64) error
	Get(ctx context.Context, id int64) (*model.Shipment, error)
	FlourIDs(ctx context.Context, shipmentID int64) ([]int64, error)
	FlourWeightSum(ctx context.Context, shipmentID int64) (float64, error)
}

type FlourResolver interface {
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type CourierLookup interface {
	GetByID(ctx context.Context, id int64) (*model.Courier, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// EventPublisher is satisfied by *queue.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, queue string, v any) error
}

// NewShipment is the body of a shipment create request.
type NewShipment struct {
	CourierID        int64   `json:"CourierID"`
	UserID           string  `json:"UserID"`
	FlourIDs         []int64 `json:"FlourIDs"`
	ShipmentQuantity int64   `json:"ShipmentQuantity"`
}

// ShipmentPatch is a partial shipment update. Absent fields are left alone,
// null clears a nullable column and is rejected for the others.
type ShipmentPatch struct {
	CourierID           model.Optional[int64]     `json:"CourierID"`
	UserID              model.Optional[string]    `json:"UserID"`
	FlourIDs            model.Optional[[]int64]   `json:"FlourIDs"`
	ShipmentQuantity    model.Optional[int64]     `json:"ShipmentQuantity"`
	ShipmentDate        model.Optional[time.Time] `json:"ShipmentDate"`
	CheckInDate         model.Optional[time.Time] `json:"Check_in_Date"`
	CheckInQuantity     model.Optional[int64]     `json:"Check_in_Quantity"`
	HarborReceptionFile model.Optional[bool]      `json:"Harbor_Reception_File"`
	RescaledWeight      model.Optional[float64]   `json:"Rescalled_Weight"`
	RescaledDate        model.Optional[time.Time] `json:"Rescalled_Date"`
	CentraReceptionFile model.Optional[bool]      `json:"Centra_Reception_File"`
}

func (p ShipmentPatch) validate() error {
	required := []struct {
		name string
		null bool
	}{
		{"CourierID", p.CourierID.Null},
		{"UserID", p.UserID.Null},
		{"FlourIDs", p.FlourIDs.Null},
		{"ShipmentQuantity", p.ShipmentQuantity.Null},
	}
	for _, f := range required {
		if f.null {
			return apperr.Invalid(f.name + " cannot be null")
		}
	}
	return nil
}

func (p ShipmentPatch) apply(s *model.Shipment) {
	if v, ok := p.CourierID.Get(); ok {
		s.CourierID = v
	}
	if v, ok := p.UserID.Get(); ok {
		s.UserID = v
	}
	if v, ok := p.ShipmentQuantity.Get(); ok {
		s.ShipmentQuantity = v
	}
	if p.ShipmentDate.Set {
		s.ShipmentDate = p.ShipmentDate.Ptr()
	}
	if p.CheckInDate.Set {
		s.CheckInDate = p.CheckInDate.Ptr()
	}
	if p.CheckInQuantity.Set {
		s.CheckInQuantity = p.CheckInQuantity.Ptr()
	}
	if p.HarborReceptionFile.Set {
		s.HarborReceptionFile = p.HarborReceptionFile.Ptr()
	}
	if p.RescaledWeight.Set {
		s.RescaledWeight = p.RescaledWeight.Ptr()
	}
	if p.RescaledDate.Set {
		s.RescaledDate = p.RescaledDate.Ptr()
	}
	if p.CentraReceptionFile.Set {
		s.CentraReceptionFile = p.CentraReceptionFile.Ptr()
	}
}

// Shipments assembles shipments out of flour batches.
type Shipments struct {
	Store    ShipmentStore
	Flour    FlourResolver
	Couriers CourierLookup
	Users    UserLookup
	Events   EventPublisher // optional
	Log      *zap.Logger
	Now      func() time.Time
}

// resolveFlour keeps the ids that name an existing flour batch, in request
// order and without duplicates. Unknown ids are dropped.
func (s *Shipments) resolveFlour(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	found, err := s.Flour.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve flour: %w", err)
	}
	known := make(map[int64]bool, len(found))
	for _, id := range found {
		known[id] = true
	}
	out := make([]int64, 0, len(found))
	for _, id := range ids {
		if known[id] {
			out = append(out, id)
			delete(known, id)
		}
	}
	return out, nil
}

func (s *Shipments) Create(ctx context.Context, in NewShipment) (*model.ShipmentView, error) {
	flourIDs, err := s.resolveFlour(ctx, in.FlourIDs)
	if err != nil {
		return nil, err
	}
	sh := &model.Shipment{CourierID: in.CourierID, UserID: in.UserID, ShipmentQuantity: in.ShipmentQuantity}
	if err := s.Store.Create(ctx, sh, flourIDs); err != nil {
		return nil, err
	}
	view := &model.ShipmentView{Shipment: *sh, FlourIDs: flourIDs}
	s.publish(ctx, "created", view)
	return view, nil
}

// Update applies p to shipment id. A present FlourIDs replaces the whole
// association set.
func (s *Shipments) Update(ctx context.Context, id int64, p ShipmentPatch) (*model.ShipmentView, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	sh, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.apply(sh)

	var flourIDs []int64
	if v, ok := p.FlourIDs.Get(); ok {
		if flourIDs, err = s.resolveFlour(ctx, v); err != nil {
			return nil, err
		}
	}
	if err := s.Store.Save(ctx, sh, flourIDs); err != nil {
		return nil, err
	}
	return s.finish(ctx, "updated", sh)
}

func (s *Shipments) UpdateDate(ctx context.Context, id int64, date *time.Time) (*model.ShipmentView, error) {
	return s.mutate(ctx, id, "dispatched", func(sh *model.Shipment) { sh.ShipmentDate = date })
}

func (s *Shipments) UpdateCheckIn(ctx context.Context, id int64, date *time.Time, qty *int64) (*model.ShipmentView, error) {
	return s.mutate(ctx, id, "checked_in", func(sh *model.Shipment) {
		sh.CheckInDate, sh.CheckInQuantity = date, qty
	})
}

func (s *Shipments) UpdateRescale(ctx context.Context, id int64, weight *float64, date *time.Time) (*model.ShipmentView, error) {
	return s.mutate(ctx, id, "rescaled", func(sh *model.Shipment) {
		sh.RescaledWeight, sh.RescaledDate = weight, date
	})
}

func (s *Shipments) UpdateHarborReception(ctx context.Context, id int64, v *bool) (*model.ShipmentView, error) {
	return s.mutate(ctx, id, "harbor_reception", func(sh *model.Shipment) { sh.HarborReceptionFile = v })
}

func (s *Shipments) UpdateCentraReception(ctx context.Context, id int64, v *bool) (*model.ShipmentView, error) {
	return s.mutate(ctx, id, "centra_reception", func(sh *model.Shipment) { sh.CentraReceptionFile = v })
}

func (s *Shipments) mutate(ctx context.Context, id int64, action string, fn func(*model.Shipment)) (*model.ShipmentView, error) {
	sh, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(sh)
	if err := s.Store.Save(ctx, sh, nil); err != nil {
		return nil, err
	}
	return s.finish(ctx, action, sh)
}

func (s *Shipments) finish(ctx context.Context, action string, sh *model.Shipment) (*model.ShipmentView, error) {
	ids, err := s.Store.FlourIDs(ctx, sh.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("load flour ids: %w", err)
	}
	view := &model.ShipmentView{Shipment: *sh, FlourIDs: ids}
	s.publish(ctx, action, view)
	return view, nil
}

// Get returns the shipment with its flour ids, the summed flour weight and
// the courier and user names.
func (s *Shipments) Get(ctx context.Context, id int64) (*model.ShipmentDetail, error) {
	sh, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ids, err := s.Store.FlourIDs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load flour ids: %w", err)
	}
	sum, err := s.Store.FlourWeightSum(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sum flour weight: %w", err)
	}
	d := &model.ShipmentDetail{
		ShipmentView:   model.ShipmentView{Shipment: *sh, FlourIDs: ids},
		FlourWeightSum: sum,
	}

	c, err := s.Couriers.GetByID(ctx, sh.CourierID)
	switch {
	case err == nil:
		d.CourierName = &c.CourierName
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, sh.UserID)
	switch {
	case err == nil:
		d.UserName = &u.Username
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}
	return d, nil
}

// publish emits a shipment event. Failures are logged and never returned.
func (s *Shipments) publish(ctx context.Context, action string, v *model.ShipmentView) {
	if s.Events == nil {
		return
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ev := queue.ShipmentEvent{
		Action:     action,
		ShipmentID: v.ShipmentID,
		UserID:     v.UserID,
		CourierID:  v.CourierID,
		Quantity:   v.ShipmentQuantity,
		FlourIDs:   v.FlourIDs,
		OccurredAt: now().UTC(),
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.Events.Publish(pctx, queue.ShipmentEvents, ev); err != nil && s.Log != nil {
		s.Log.Warn("shipment event not published",
			zap.String("action", action), zap.Int64("shipment_id", v.ShipmentID), zap.Error(err))
	}
}
