package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
	"github.com/iliyamo/leaf-supply-chain/internal/utils"
)

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, u *model.User) error
}

type RoleChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type NewUser struct {
	Username    string `json:"Username"`
	Email       string `json:"Email"`
	PhoneNumber *int64 `json:"PhoneNumber"`
	RoleID      int    `json:"RoleID"`
	Password    string `json:"Password"`
}

// UserUpdate replaces all three fields, including with empty values.
type UserUpdate struct {
	Username string `json:"Username"`
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

// AdminUserUpdate changes only the fields that carry a value; null counts as
// absent.
type AdminUserUpdate struct {
	Username    model.Optional[string] `json:"Username"`
	Email       model.Optional[string] `json:"Email"`
	PhoneNumber model.Optional[int64]  `json:"PhoneNumber"`
	RoleName    model.Optional[string] `json:"RoleName"`
}

type Users struct {
	Store      UserStore
	Roles      RoleChecker
	BcryptCost int
}

func (s *Users) hash(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	h, err := utils.HashPassword(plain, s.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return h, nil
}

// Create requires an existing role, assigns a UUID and stores the bcrypt
// hash of the password.
func (s *Users) Create(ctx context.Context, in NewUser) (*model.User, error) {
	ok, err := s.Roles.Exists(ctx, in.RoleID)
	if err != nil {
		return nil, fmt.Errorf("check role: %w", err)
	}
	if !ok {
		return nil, apperr.Invalid("Role does not exist")
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		UserID:      uuid.NewString(),
		Username:    in.Username,
		Email:       strings.TrimSpace(in.Email),
		PhoneNumber: in.PhoneNumber,
		RoleID:      in.RoleID,
		Password:    hash,
	}
	if err := s.Store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Users) load(ctx context.Context, id string) (*model.User, error) {
	u, err := s.Store.GetByID(ctx, id)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("User does not exist")
		}
		return nil, err
	}
	return u, nil
}

func (s *Users) Update(ctx context.Context, id string, in UserUpdate) (*model.User, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	u.Username, u.Email, u.Password = in.Username, in.Email, hash
	if err := s.Store.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// AdminUpdate applies the set fields of in. An unknown role name leaves the
// role unchanged.
func (s *Users) AdminUpdate(ctx context.Context, id string, in AdminUserUpdate) (*model.User, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := in.Username.Get(); ok {
		u.Username = v
	}
	if v, ok := in.Email.Get(); ok {
		u.Email = v
	}
	if v, ok := in.PhoneNumber.Get(); ok {
		u.PhoneNumber = &v
	}
	if name, ok := in.RoleName.Get(); ok {
		if roleID, known := model.RoleIDByName(name); known {
			u.RoleID = roleID
		}
	}
	if err := s.Store.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateRole sets the role named roleName. Unknown names are rejected.
func (s *Users) UpdateRole(ctx context.Context, id, roleName string) (*model.User, error) {
	roleID, ok := model.RoleIDByName(roleName)
	if !ok {
		return nil, apperr.Invalid("Invalid role name")
	}
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	u.RoleID = roleID
	if err := s.Store.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Users) UpdatePhone(ctx context.Context, id string, phone int64) (*model.User, error) {
	u, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.PhoneNumber = &phone
	if err := s.Store.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
