package service

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
	"github.com/iliyamo/leaf-supply-chain/internal/queue"
)

func newShipments() (*Shipments, *fakeShipments, *fakePublisher) {
	flour := &fakeFlour{weights: map[int64]float64{1: 2.5, 2: 4, 3: 1}}
	store := newFakeShipments(flour)
	pub := &fakePublisher{}
	svc := &Shipments{
		Store:    store,
		Flour:    flour,
		Couriers: fakeCouriers{7: "JNE"},
		Users:    newFakeUsers(model.User{UserID: "alice", Username: "Alice"}),
		Events:   pub,
		Log:      zap.NewNop(),
		Now:      func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
	return svc, store, pub
}

func decodePatch(t *testing.T, body string) ShipmentPatch {
	t.Helper()
	var p ShipmentPatch
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("decode patch: %v", err)
	}
	return p
}

func TestCreateShipmentSkipsUnknownFlour(t *testing.T) {
	svc, store, pub := newShipments()
	view, err := svc.Create(context.Background(), NewShipment{
		CourierID: 7, UserID: "alice", ShipmentQuantity: 10, FlourIDs: []int64{2, 1, 999, 2},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if want := []int64{2, 1}; !reflect.DeepEqual(view.FlourIDs, want) {
		t.Fatalf("flour ids = %v, want %v", view.FlourIDs, want)
	}
	if got := store.links[view.ShipmentID]; len(got) != 2 {
		t.Fatalf("stored links = %v", got)
	}
	ev := pub.last()
	if ev.queue != queue.ShipmentEvents || ev.body.(queue.ShipmentEvent).Action != "created" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestUpdateShipmentPatchSemantics(t *testing.T) {
	svc, store, _ := newShipments()
	ctx := context.Background()
	v, _ := svc.Create(ctx, NewShipment{CourierID: 7, UserID: "alice", ShipmentQuantity: 10, FlourIDs: []int64{1, 2}})

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.UpdateDate(ctx, v.ShipmentID, &date); err != nil {
		t.Fatalf("update date: %v", err)
	}

	// absent fields keep their value, a value replaces the flour set
	got, err := svc.Update(ctx, v.ShipmentID, decodePatch(t, `{"ShipmentQuantity": 12, "FlourIDs": [3, 404]}`))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ShipmentQuantity != 12 || got.CourierID != 7 || got.ShipmentDate == nil {
		t.Fatalf("unexpected shipment %+v", got.Shipment)
	}
	if !reflect.DeepEqual(got.FlourIDs, []int64{3}) {
		t.Fatalf("flour set not replaced: %v", got.FlourIDs)
	}

	// null clears a nullable column
	got, err = svc.Update(ctx, v.ShipmentID, decodePatch(t, `{"ShipmentDate": null}`))
	if err != nil {
		t.Fatalf("clear date: %v", err)
	}
	if got.ShipmentDate != nil || !reflect.DeepEqual(store.links[v.ShipmentID], []int64{3}) {
		t.Fatalf("clear touched other fields: %+v", got)
	}
}

func TestUpdateShipmentRejectsNullOnRequiredField(t *testing.T) {
	svc, _, _ := newShipments()
	v, _ := svc.Create(context.Background(), NewShipment{CourierID: 7, UserID: "alice", ShipmentQuantity: 1})
	for _, body := range []string{`{"CourierID": null}`, `{"FlourIDs": null}`, `{"ShipmentQuantity": null}`} {
		_, err := svc.Update(context.Background(), v.ShipmentID, decodePatch(t, body))
		if apperr.KindOf(err) != apperr.KindInvalid {
			t.Fatalf("%s: want invalid, got %v", body, err)
		}
	}
}

func TestNarrowUpdatesOnMissingShipment(t *testing.T) {
	svc, _, _ := newShipments()
	yes := true
	if _, err := svc.UpdateHarborReception(context.Background(), 42, &yes); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("want not found, got %v", err)
	}
	if _, err := svc.Update(context.Background(), 42, ShipmentPatch{}); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestCheckInAndRescaleSetFieldsJointly(t *testing.T) {
	svc, _, _ := newShipments()
	ctx := context.Background()
	v, _ := svc.Create(ctx, NewShipment{CourierID: 7, UserID: "alice", ShipmentQuantity: 1, FlourIDs: []int64{1}})

	day := time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC)
	qty := int64(9)
	got, err := svc.UpdateCheckIn(ctx, v.ShipmentID, &day, &qty)
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if got.CheckInDate == nil || *got.CheckInQuantity != 9 || !reflect.DeepEqual(got.FlourIDs, []int64{1}) {
		t.Fatalf("check in result %+v", got)
	}
	w := 8.5
	got, err = svc.UpdateRescale(ctx, v.ShipmentID, &w, nil)
	if err != nil {
		t.Fatalf("rescale: %v", err)
	}
	if *got.RescaledWeight != 8.5 || got.RescaledDate != nil || got.CheckInDate == nil {
		t.Fatalf("rescale result %+v", got)
	}
	no := false
	got, err = svc.UpdateCentraReception(ctx, v.ShipmentID, &no)
	if err != nil || got.CentraReceptionFile == nil || *got.CentraReceptionFile {
		t.Fatalf("centra reception = %+v, %v", got, err)
	}
}

func TestGetShipmentDetail(t *testing.T) {
	svc, _, _ := newShipments()
	ctx := context.Background()
	v, _ := svc.Create(ctx, NewShipment{CourierID: 7, UserID: "alice", ShipmentQuantity: 1, FlourIDs: []int64{1, 2}})

	d, err := svc.Get(ctx, v.ShipmentID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if d.FlourWeightSum != 6.5 || d.CourierName == nil || *d.CourierName != "JNE" || *d.UserName != "Alice" {
		t.Fatalf("detail = %+v", d)
	}

	dangling, _ := svc.Create(ctx, NewShipment{CourierID: 99, UserID: "ghost", ShipmentQuantity: 1})
	d, err = svc.Get(ctx, dangling.ShipmentID)
	if err != nil {
		t.Fatalf("get dangling: %v", err)
	}
	if d.CourierName != nil || d.UserName != nil || d.FlourWeightSum != 0 {
		t.Fatalf("dangling detail = %+v", d)
	}

	if _, err := svc.Get(ctx, 12345); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestShipmentPublishFailureIsNotSurfaced(t *testing.T) {
	svc, _, pub := newShipments()
	pub.err = errBoom
	if _, err := svc.Create(context.Background(), NewShipment{CourierID: 7, UserID: "alice", ShipmentQuantity: 1}); err != nil {
		t.Fatalf("create failed on publish error: %v", err)
	}
}
