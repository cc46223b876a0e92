package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/leaf-supply-chain/internal/model"
)

type RoleRepo struct{ DB *sqlx.DB }

func NewRoleRepo(db *sqlx.DB) *RoleRepo { return &RoleRepo{DB: db} }

func (r *RoleRepo) Create(ctx context.Context, role model.Role) error {
	_, err := r.DB.NamedExecContext(ctx,
		"INSERT INTO roles (RoleID, RoleName) VALUES (:RoleID, :RoleName)", role)
	if err != nil {
		return classify("insert role", err)
	}
	return nil
}

func (r *RoleRepo) List(ctx context.Context) ([]model.Role, error) {
	roles := []model.Role{}
	err := r.DB.SelectContext(ctx, &roles, "SELECT RoleID, RoleName FROM roles ORDER BY RoleID")
	return roles, err
}

func (r *RoleRepo) Exists(ctx context.Context, id int) (bool, error) {
	var n int
	if err := r.DB.GetContext(ctx, &n, "SELECT COUNT(*) FROM roles WHERE RoleID = ?", id); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RoleRepo) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM roles WHERE RoleID = ?", id)
	if err != nil {
		return false, classify("delete role", err)
	}
	return affected(res)
}
