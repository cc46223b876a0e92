package service

import (
	"context"
	"encoding/json"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
	"github.com/iliyamo/leaf-supply-chain/internal/utils"
)

func newUsers(users ...model.User) (*Users, *fakeUsers) {
	store := newFakeUsers(users...)
	return &Users{Store: store, Roles: fakeRoles{1: true, 4: true, 5: true}, BcryptCost: bcrypt.MinCost}, store
}

func TestCreateUser(t *testing.T) {
	svc, _ := newUsers()
	ctx := context.Background()

	if _, err := svc.Create(ctx, NewUser{Username: "x", Email: "x@y.z", RoleID: 3, Password: "p"}); apperr.KindOf(err) != apperr.KindInvalid {
		t.Fatalf("unknown role: got %v", err)
	}
	u, err := svc.Create(ctx, NewUser{Username: "x", Email: " x@y.z ", RoleID: 1, Password: "p"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(u.UserID) != 36 || u.Email != "x@y.z" || !utils.VerifyPassword(u.Password, "p") {
		t.Fatalf("user = %+v", u)
	}
	if _, err := svc.Create(ctx, NewUser{Username: "y", Email: "x@y.z", RoleID: 1, Password: "p"}); apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("duplicate email: got %v", err)
	}
}

func TestUpdateUserOverwritesAllFields(t *testing.T) {
	svc, store := newUsers(model.User{UserID: "u1", Username: "old", Email: "old@x.y", Password: "h", RoleID: 1})
	if _, err := svc.Update(context.Background(), "u1", UserUpdate{Username: "new"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := store.users["u1"]
	if got.Username != "new" || got.Email != "" || got.Password != "" {
		t.Fatalf("user = %+v", got)
	}
	if _, err := svc.Update(context.Background(), "nope", UserUpdate{}); apperr.Message(err) != "User does not exist" {
		t.Fatalf("missing user: %v", err)
	}
}

func TestAdminUpdateSkipsNullAndUnknownRole(t *testing.T) {
	phone := int64(62811)
	svc, store := newUsers(model.User{UserID: "u1", Username: "old", Email: "old@x.y", PhoneNumber: &phone, RoleID: 1})

	var in AdminUserUpdate
	if err := json.Unmarshal([]byte(`{"Username":"new","Email":null,"RoleName":"Wizard"}`), &in); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := svc.AdminUpdate(context.Background(), "u1", in); err != nil {
		t.Fatalf("admin update: %v", err)
	}
	got := store.users["u1"]
	if got.Username != "new" || got.Email != "old@x.y" || got.RoleID != 1 || *got.PhoneNumber != 62811 {
		t.Fatalf("user = %+v", got)
	}

	in = AdminUserUpdate{RoleName: model.Some("admin")}
	if _, err := svc.AdminUpdate(context.Background(), "u1", in); err != nil || store.users["u1"].RoleID != 1 {
		t.Fatalf("lowercase role applied: %d, %v", store.users["u1"].RoleID, err)
	}
	in = AdminUserUpdate{RoleName: model.Some("Admin")}
	if _, err := svc.AdminUpdate(context.Background(), "u1", in); err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if store.users["u1"].RoleID != model.RoleAdmin {
		t.Fatalf("role = %d", store.users["u1"].RoleID)
	}
}

func TestUpdateRole(t *testing.T) {
	svc, store := newUsers(model.User{UserID: "u1", RoleID: 1})
	ctx := context.Background()

	if _, err := svc.UpdateRole(ctx, "u1", "Wizard"); apperr.KindOf(err) != apperr.KindInvalid {
		t.Fatalf("unknown role: %v", err)
	}
	if _, err := svc.UpdateRole(ctx, "nope", "Customer"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("missing user: %v", err)
	}
	if _, err := svc.UpdateRole(ctx, "u1", "Customer"); err != nil {
		t.Fatalf("update role: %v", err)
	}
	if store.users["u1"].RoleID != model.RoleCustomer {
		t.Fatalf("role = %d", store.users["u1"].RoleID)
	}
}

func TestUpdatePhone(t *testing.T) {
	svc, store := newUsers(model.User{UserID: "u1"})
	if _, err := svc.UpdatePhone(context.Background(), "u1", 628123); err != nil {
		t.Fatalf("update phone: %v", err)
	}
	if p := store.users["u1"].PhoneNumber; p == nil || *p != 628123 {
		t.Fatalf("phone = %v", p)
	}
}
