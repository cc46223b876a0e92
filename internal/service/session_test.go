package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/leaf-supply-chain/internal/model"
	"github.com/iliyamo/leaf-supply-chain/internal/utils"
)

func newSessions(t *testing.T) (*Sessions, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return &Sessions{Redis: rdb, Secret: "test-secret", TTL: time.Hour}, mr
}

func TestSessionLifecycle(t *testing.T) {
	svc, _ := newSessions(t)
	ctx := context.Background()
	u := &model.User{UserID: "u1", Email: "a@b.co", RoleID: model.RoleAdmin}

	token, exp, err := svc.Create(ctx, u)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry %v", exp)
	}
	data, sid, err := svc.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if data.UserID != "u1" || data.UserRole != model.RoleAdmin || data.UserEmail != "a@b.co" {
		t.Fatalf("data = %+v", data)
	}

	other, _, _ := svc.Create(ctx, &model.User{UserID: "u2"})
	if err := svc.Delete(ctx, sid); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := svc.Resolve(ctx, token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("deleted session resolved: %v", err)
	}
	if _, _, err := svc.Resolve(ctx, other); err != nil {
		t.Fatalf("other session affected: %v", err)
	}
}

func TestSessionExpiresWithTTL(t *testing.T) {
	svc, mr := newSessions(t)
	token, _, err := svc.Create(context.Background(), &model.User{UserID: "u1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	mr.FastForward(2 * time.Hour)
	if _, _, err := svc.Resolve(context.Background(), token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expired session resolved: %v", err)
	}
}

func TestSessionRejectsForeignToken(t *testing.T) {
	svc, _ := newSessions(t)
	forged, _, _ := utils.NewSessionToken("other-secret", "sid", "u1", 4, time.Hour)
	for _, tok := range []string{"", "garbage", forged} {
		if _, _, err := svc.Resolve(context.Background(), tok); !errors.Is(err, ErrInvalidSession) {
			t.Fatalf("token %q: %v", tok, err)
		}
	}
}
