package model

// User mirrors the `users` table. UserID is a UUID string assigned by the
// service. Password holds a bcrypt hash and is never serialized.
type User struct {
	UserID      string `db:"UserID" json:"UserID"`
	Username    string `db:"Username" json:"Username"`
	Email       string `db:"Email" json:"Email"`
	PhoneNumber *int64 `db:"PhoneNumber" json:"PhoneNumber"`
	RoleID      int    `db:"RoleID" json:"RoleID"`
	Password    string `db:"Password" json:"-"`
}

// UserWithRole is the response shape of user reads: the row plus its role.
type UserWithRole struct {
	User
	Role Role `json:"role"`
}

// WithRole attaches the role entry for u.RoleID.
func (u User) WithRole() UserWithRole {
	name, _ := RoleNameByID(u.RoleID)
	return UserWithRole{User: u, Role: Role{RoleID: u.RoleID, RoleName: name}}
}
