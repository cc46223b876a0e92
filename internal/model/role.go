package model

// Role represents a row in the `roles` table. The set is fixed and seeded at
// startup; the name/id pairs below are the only source of truth for them.
type Role struct {
	RoleID   int    `db:"RoleID" json:"RoleID"`
	RoleName string `db:"RoleName" json:"RoleName"`
}

const (
	RoleCentra   = 1
	RoleHarbor   = 2
	RoleCompany  = 3
	RoleAdmin    = 4
	RoleCustomer = 5
	RoleRejected = 6
)

var roleTable = []Role{
	{RoleID: RoleCentra, RoleName: "Centra"},
	{RoleID: RoleHarbor, RoleName: "Harbor"},
	{RoleID: RoleCompany, RoleName: "Company"},
	{RoleID: RoleAdmin, RoleName: "Admin"},
	{RoleID: RoleCustomer, RoleName: "Customer"},
	{RoleID: RoleRejected, RoleName: "Rejected"},
}

// Roles returns a copy of the fixed role table in id order.
func Roles() []Role {
	out := make([]Role, len(roleTable))
	copy(out, roleTable)
	return out
}

// RoleIDByName maps a role name to its id. Names match exactly.
func RoleIDByName(name string) (int, bool) {
	for _, r := range roleTable {
		if r.RoleName == name {
			return r.RoleID, true
		}
	}
	return 0, false
}

// RoleNameByID is the reverse lookup.
func RoleNameByID(id int) (string, bool) {
	for _, r := range roleTable {
		if r.RoleID == id {
			return r.RoleName, true
		}
	}
	return "", false
}
