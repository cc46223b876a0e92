package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/leaf-supply-chain/internal/model"
)

const userColumns = "UserID, Username, Email, PhoneNumber, RoleID, Password"

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts u. The caller assigns UserID and hashes the password.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	_, err := r.DB.NamedExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (:UserID, :Username, :Email, :PhoneNumber, :RoleID, :Password)`, u)
	if err != nil {
		return classify("insert user", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, "SELECT "+userColumns+" FROM users WHERE UserID = ?", id)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, "SELECT "+userColumns+" FROM users WHERE Email = ? LIMIT 1", email)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return &u, nil
}

// Exists reports whether a user row with id is present.
func (r *UserRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.DB.GetContext(ctx, &n, "SELECT COUNT(*) FROM users WHERE UserID = ?", id); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepo) List(ctx context.Context, skip, limit int) ([]model.User, error) {
	skip, limit = page(skip, limit)
	users := []model.User{}
	err := r.DB.SelectContext(ctx, &users,
		"SELECT "+userColumns+" FROM users ORDER BY Username LIMIT ? OFFSET ?", limit, skip)
	return users, err
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.GetContext(ctx, &n, "SELECT COUNT(*) FROM users")
	return n, err
}

func (r *UserRepo) ListByRole(ctx context.Context, roleID int) ([]model.User, error) {
	users := []model.User{}
	err := r.DB.SelectContext(ctx, &users,
		"SELECT "+userColumns+" FROM users WHERE RoleID = ? ORDER BY Username", roleID)
	return users, err
}

// ListWithShipments returns the users that own at least one shipment.
func (r *UserRepo) ListWithShipments(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := r.DB.SelectContext(ctx, &users,
		`SELECT `+userColumns+` FROM users u
		 WHERE EXISTS (SELECT 1 FROM shipments s WHERE s.UserID = u.UserID)
		 ORDER BY Username`)
	return users, err
}

// Update writes every mutable column of u.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	res, err := r.DB.NamedExecContext(ctx,
		`UPDATE users SET Username = :Username, Email = :Email, PhoneNumber = :PhoneNumber,
		 RoleID = :RoleID, Password = :Password WHERE UserID = :UserID`, u)
	if err != nil {
		return classify("update user", err)
	}
	return requireRow(res, "User not found")
}

func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE UserID = ?", id)
	if err != nil {
		return false, classify("delete user", err)
	}
	return affected(res)
}
