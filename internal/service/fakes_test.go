package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUsers(users ...model.User) *fakeUsers {
	f := &fakeUsers{users: map[string]*model.User{}}
	for i := range users {
		u := users[i]
		f.users[u.UserID] = &u
	}
	return f
}

func (f *fakeUsers) Exists(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return apperr.Conflict("duplicate email")
		}
	}
	cp := *u
	f.users[u.UserID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Update(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.UserID]; !ok {
		return apperr.NotFound("user not found")
	}
	cp := *u
	f.users[u.UserID] = &cp
	return nil
}

type fakeRoles map[int]bool

func (f fakeRoles) Exists(_ context.Context, id int) (bool, error) { return f[id], nil }

type fakeWet struct {
	rows    []model.WetLeaves
	created []model.WetLeaves
}

func (f *fakeWet) Create(_ context.Context, w *model.WetLeaves) error {
	w.WetLeavesID = int64(len(f.rows) + len(f.created) + 1)
	f.created = append(f.created, *w)
	return nil
}

func (f *fakeWet) GetOwned(_ context.Context, id int64, userID string) (*model.WetLeaves, error) {
	for _, w := range f.rows {
		if w.WetLeavesID == id && w.UserID == userID {
			return &w, nil
		}
	}
	return nil, apperr.NotFound("wet leaves not found or not owned by user")
}

type fakeDry struct {
	rows    []model.DryLeaves
	created []model.DryLeaves
}

func (f *fakeDry) Create(_ context.Context, d *model.DryLeaves) error {
	d.DryLeavesID = int64(len(f.rows) + len(f.created) + 1)
	f.created = append(f.created, *d)
	return nil
}

func (f *fakeDry) GetOwned(_ context.Context, id int64, userID string) (*model.DryLeaves, error) {
	for _, d := range f.rows {
		if d.DryLeavesID == id && d.UserID == userID {
			return &d, nil
		}
	}
	return nil, apperr.NotFound("dry leaves not found or not owned by user")
}

type fakeFlour struct {
	weights map[int64]float64
	created []model.Flour
}

func (f *fakeFlour) Create(_ context.Context, fl *model.Flour) error {
	fl.FlourID = int64(len(f.weights) + len(f.created) + 1)
	f.created = append(f.created, *fl)
	return nil
}

func (f *fakeFlour) ExistingIDs(_ context.Context, ids []int64) ([]int64, error) {
	var out []int64
	for _, id := range ids {
		if _, ok := f.weights[id]; ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// fakeShipments keeps rows and association sets in memory.
type fakeShipments struct {
	flour *fakeFlour
	rows  map[int64]model.Shipment
	links map[int64][]int64
	next  int64
}

func newFakeShipments(flour *fakeFlour) *fakeShipments {
	return &fakeShipments{flour: flour, rows: map[int64]model.Shipment{}, links: map[int64][]int64{}}
}

func (f *fakeShipments) Create(_ context.Context, s *model.Shipment, flourIDs []int64) error {
	f.next++
	s.ShipmentID = f.next
	f.rows[s.ShipmentID] = *s
	f.links[s.ShipmentID] = append([]int64(nil), flourIDs...)
	return nil
}

func (f *fakeShipments) Save(_ context.Context, s *model.Shipment, flourIDs []int64) error {
	if _, ok := f.rows[s.ShipmentID]; !ok {
		return apperr.NotFound("Shipment not found")
	}
	f.rows[s.ShipmentID] = *s
	if flourIDs != nil {
		f.links[s.ShipmentID] = append([]int64(nil), flourIDs...)
	}
	return nil
}

func (f *fakeShipments) Get(_ context.Context, id int64) (*model.Shipment, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Shipment not found")
	}
	return &s, nil
}

func (f *fakeShipments) FlourIDs(_ context.Context, id int64) ([]int64, error) {
	return append([]int64{}, f.links[id]...), nil
}

func (f *fakeShipments) FlourWeightSum(_ context.Context, id int64) (float64, error) {
	var sum float64
	for _, fid := range f.links[id] {
		sum += f.flour.weights[fid]
	}
	return sum, nil
}

type fakeCouriers map[int64]string

func (f fakeCouriers) GetByID(_ context.Context, id int64) (*model.Courier, error) {
	name, ok := f[id]
	if !ok {
		return nil, apperr.NotFound("courier not found")
	}
	return &model.Courier{CourierID: id, CourierName: name}, nil
}

type published struct {
	queue string
	body  any
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, queue string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, published{queue: queue, body: v})
	return nil
}

func (p *fakePublisher) last() published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.msgs[len(p.msgs)-1]
}

type fakeSums struct {
	wet, dry, flour, qty float64
	today                float64
	fail                 error
	gotDay               time.Time
	gotUser              string
}

func (f *fakeSums) pick(v float64, userID string) (float64, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	if userID != "" {
		return v / 2, nil
	}
	return v, nil
}

func (f *fakeSums) SumWetLeaves(_ context.Context, u string) (float64, error) { return f.pick(f.wet, u) }
func (f *fakeSums) SumDryLeaves(_ context.Context, u string) (float64, error) { return f.pick(f.dry, u) }
func (f *fakeSums) SumFlour(_ context.Context, u string) (float64, error) { return f.pick(f.flour, u) }
func (f *fakeSums) SumShipmentQuantity(_ context.Context, u string) (float64, error) {
	return f.pick(f.qty, u)
}

func (f *fakeSums) SumWetLeavesOn(_ context.Context, u string, day time.Time) (float64, error) {
	f.gotUser, f.gotDay = u, day
	return f.today, nil
}

type fakeMarketShipments struct {
	rows map[int64]model.MarketShipment
	next int64
}

func (f *fakeMarketShipments) Create(_ context.Context, v *model.MarketShipment) error {
	f.next++
	v.MarketShipmentID = f.next
	f.rows[v.MarketShipmentID] = *v
	return nil
}

func (f *fakeMarketShipments) Get(_ context.Context, id int64) (*model.MarketShipment, error) {
	v, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("MarketShipment not found")
	}
	return &v, nil
}

func (f *fakeMarketShipments) Update(_ context.Context, v *model.MarketShipment) error {
	f.rows[v.MarketShipmentID] = *v
	return nil
}

var errBoom = errors.New("boom")

type fakeRows[T any] struct {
	rows    map[int64]T
	id      func(*T) int64
	updates int
}

func (f *fakeRows[T]) Get(_ context.Context, id int64) (*T, error) {
	v, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("row not found")
	}
	return &v, nil
}

func (f *fakeRows[T]) Update(_ context.Context, v *T) error {
	f.updates++
	f.rows[f.id(v)] = *v
	return nil
}
