package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
)

func newMarket() (*Market, *fakeMarketShipments) {
	store := &fakeMarketShipments{rows: map[int64]model.MarketShipment{}}
	users := newFakeUsers(
		model.User{UserID: "centra", RoleID: model.RoleCentra},
		model.User{UserID: "centra2", RoleID: model.RoleCentra},
		model.User{UserID: "customer", RoleID: model.RoleCustomer},
		model.User{UserID: "harbor", RoleID: model.RoleHarbor},
	)
	return &Market{Users: users, Shipments: store}, store
}

func TestCreateMarketShipmentRoles(t *testing.T) {
	svc, store := newMarket()
	ctx := context.Background()

	cases := []struct {
		centra, customer string
	}{
		{"harbor", "customer"},
		{"ghost", "customer"},
		{"centra", "harbor"},
		{"centra", "centra"},
	}
	for _, c := range cases {
		err := svc.CreateShipment(ctx, &model.MarketShipment{CentraID: c.centra, CustomerID: c.customer})
		if apperr.KindOf(err) != apperr.KindInvalidReference {
			t.Fatalf("%s -> %s: want invalid reference, got %v", c.centra, c.customer, err)
		}
	}
	if len(store.rows) != 0 {
		t.Fatal("row written despite role failure")
	}
	ms := &model.MarketShipment{CentraID: "centra", CustomerID: "customer", Status: "pending"}
	if err := svc.CreateShipment(ctx, ms); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestUpdateMarketShipmentChecksPresentFields(t *testing.T) {
	svc, store := newMarket()
	ctx := context.Background()
	dry := int64(4)
	store.rows[1] = model.MarketShipment{MarketShipmentID: 1, CentraID: "centra", CustomerID: "customer", DryLeavesID: &dry}

	var p MarketShipmentPatch
	_ = json.Unmarshal([]byte(`{"CentraID":"harbor"}`), &p)
	if _, err := svc.UpdateShipment(ctx, 1, p); apperr.KindOf(err) != apperr.KindInvalidReference {
		t.Fatalf("want invalid reference, got %v", err)
	}

	p = MarketShipmentPatch{}
	_ = json.Unmarshal([]byte(`{"CentraID":"centra2","DryLeavesID":null,"status":"sent"}`), &p)
	got, err := svc.UpdateShipment(ctx, 1, p)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.CentraID != "centra2" || got.DryLeavesID != nil || got.Status != "sent" || got.CustomerID != "customer" {
		t.Fatalf("shipment = %+v", got)
	}

	p = MarketShipmentPatch{}
	_ = json.Unmarshal([]byte(`{"status":null}`), &p)
	if _, err := svc.UpdateShipment(ctx, 1, p); apperr.KindOf(err) != apperr.KindInvalid {
		t.Fatalf("null status: %v", err)
	}
	if _, err := svc.UpdateShipment(ctx, 99, MarketShipmentPatch{}); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("missing: %v", err)
	}
}

func TestUpdateTransactionKeepsAbsentFields(t *testing.T) {
	txs := &fakeRows[model.Transaction]{
		rows: map[int64]model.Transaction{7: {TransactionID: 7, SubTransactionID: 3, Status: "pending"}},
		id:   func(v *model.Transaction) int64 { return v.TransactionID },
	}
	svc := &Market{Transactions: txs}
	ctx := context.Background()

	var p TransactionPatch
	_ = json.Unmarshal([]byte(`{"status":"paid"}`), &p)
	got, err := svc.UpdateTransaction(ctx, 7, p)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.SubTransactionID != 3 || got.Status != "paid" || txs.rows[7].SubTransactionID != 3 {
		t.Fatalf("transaction = %+v", got)
	}

	p = TransactionPatch{}
	_ = json.Unmarshal([]byte(`{"SubTransactionID":null,"status":null}`), &p)
	if got, err = svc.UpdateTransaction(ctx, 7, p); err != nil || got.SubTransactionID != 3 || got.Status != "paid" {
		t.Fatalf("null fields applied: %+v, %v", got, err)
	}
	if _, err := svc.UpdateTransaction(ctx, 8, TransactionPatch{}); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("missing: %v", err)
	}
}

func TestUpdateSubTransactionKeepsAbsentFields(t *testing.T) {
	subs := &fakeRows[model.SubTransaction]{
		rows: map[int64]model.SubTransaction{2: {SubTransactionID: 2, MarketShipmentID: 5, Status: "new"}},
		id:   func(v *model.SubTransaction) int64 { return v.SubTransactionID },
	}
	svc := &Market{SubTransactions: subs}

	var p SubTransactionPatch
	_ = json.Unmarshal([]byte(`{"MarketShipmentID":6}`), &p)
	got, err := svc.UpdateSubTransaction(context.Background(), 2, p)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.MarketShipmentID != 6 || got.Status != "new" || subs.updates != 1 {
		t.Fatalf("subtransaction = %+v (updates %d)", got, subs.updates)
	}
}
