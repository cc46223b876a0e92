package model

import (
	"encoding/json"
	"testing"
)

func TestRoleLookupIsShared(t *testing.T) {
	for _, r := range Roles() {
		id, ok := RoleIDByName(r.RoleName)
		if !ok || id != r.RoleID {
			t.Fatalf("RoleIDByName(%q) = %d,%v", r.RoleName, id, ok)
		}
		name, ok := RoleNameByID(r.RoleID)
		if !ok || name != r.RoleName {
			t.Fatalf("RoleNameByID(%d) = %q,%v", r.RoleID, name, ok)
		}
	}
	if _, ok := RoleIDByName("customer"); ok {
		t.Fatalf("role names are case sensitive")
	}
	if id, ok := RoleIDByName("Customer"); !ok || id != RoleCustomer {
		t.Fatalf("lookup failed: %d %v", id, ok)
	}
	if _, ok := RoleIDByName("Owner"); ok {
		t.Fatalf("unknown role should not resolve")
	}
}

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	var body struct {
		A Optional[int64]   `json:"A"`
		B Optional[int64]   `json:"B"`
		C Optional[[]int64] `json:"C"`
	}
	if err := json.Unmarshal([]byte(`{"B": null, "C": [1,2]}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.A.Set {
		t.Fatalf("absent field reported as set")
	}
	if !body.B.Set || !body.B.Null {
		t.Fatalf("null field: %+v", body.B)
	}
	if body.B.Ptr() != nil {
		t.Fatalf("null field should give a nil pointer")
	}
	ids, ok := body.C.Get()
	if !ok || len(ids) != 2 || ids[1] != 2 {
		t.Fatalf("value field: %+v", body.C)
	}
}

func TestUserPasswordNeverSerialized(t *testing.T) {
	b, err := json.Marshal(User{UserID: "u", Password: "$2a$10$hash", RoleID: RoleAdmin}.WithRole())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	if _, ok := m["Password"]; ok {
		t.Fatalf("password leaked: %s", b)
	}
	role, _ := m["role"].(map[string]any)
	if role["RoleName"] != "Admin" {
		t.Fatalf("role not attached: %s", b)
	}
}
