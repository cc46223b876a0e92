package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
	"github.com/iliyamo/leaf-supply-chain/internal/repository"
	"github.com/iliyamo/leaf-supply-chain/internal/service"
)

// defaultUserLimit is the page size of /user/get.
const defaultUserLimit = 10

// UserHandler serves the user and role endpoints. Writes that carry rules go
// through the service; plain reads hit the repositories.
type UserHandler struct {
	Users *service.Users
	Repo  *repository.UserRepo
	Roles *repository.RoleRepo
}

func NewUserHandler(users *service.Users, repo *repository.UserRepo, roles *repository.RoleRepo) *UserHandler {
	if users == nil || repo == nil || roles == nil {
		panic("nil dependency passed to NewUserHandler")
	}
	return &UserHandler{Users: users, Repo: repo, Roles: roles}
}

func withRoles(users []model.User) []model.UserWithRole {
	out := make([]model.UserWithRole, len(users))
	for i, u := range users {
		out[i] = u.WithRole()
	}
	return out
}

// Create handles POST /user/post.
func (h *UserHandler) Create(c echo.Context) error {
	var req service.NewUser
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Username == "" || req.Email == "" {
		return badRequest("Username and Email are required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	u, err := h.Users.Create(ctx, req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, u.WithRole())
}

// List handles GET /user/get?skip=&limit=.
func (h *UserHandler) List(c echo.Context) error {
	skip, limit, err := skipLimit(c, defaultUserLimit)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	users, err := h.Repo.List(ctx, skip, limit)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, withRoles(users))
}

func (h *UserHandler) Count(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	n, err := h.Repo.Count(ctx)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, n)
}

// ByRole handles GET /user/get_role/:role_id. A role without users is
// reported as a missing role.
func (h *UserHandler) ByRole(c echo.Context) error {
	roleID, err := strconv.Atoi(c.Param("role_id"))
	if err != nil {
		return badRequest("invalid role_id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	users, err := h.Repo.ListByRole(ctx, roleID)
	if err != nil {
		return fail(err)
	}
	if len(users) == 0 {
		return badRequest("Role does not exist")
	}
	return c.JSON(http.StatusOK, withRoles(users))
}

func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	u, err := h.Repo.GetByID(ctx, c.Param("user_id"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, u.WithRole())
}

func (h *UserHandler) GetByEmail(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	u, err := h.Repo.GetByEmail(ctx, c.Param("email"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, u.WithRole())
}

// WithShipments handles GET /users_with_shipments.
func (h *UserHandler) WithShipments(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	users, err := h.Repo.ListWithShipments(ctx)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, withRoles(users))
}

// Update handles PUT /user/put/:user_id and replaces name, email and
// password.
func (h *UserHandler) Update(c echo.Context) error {
	var req service.UserUpdate
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	u, err := h.Users.Update(ctx, c.Param("user_id"), req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"Username": u.Username, "Email": u.Email})
}

func (h *UserHandler) UpdatePhone(c echo.Context) error {
	var req struct {
		PhoneNumber *int64 `json:"PhoneNumber"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.PhoneNumber == nil {
		return badRequest("PhoneNumber is required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	u, err := h.Users.UpdatePhone(ctx, c.Param("user_id"), *req.PhoneNumber)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, u.WithRole())
}

// AdminUpdate handles PUT /user/admin_put/:user_id.
func (h *UserHandler) AdminUpdate(c echo.Context) error {
	var req service.AdminUserUpdate
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	u, err := h.Users.AdminUpdate(ctx, c.Param("user_id"), req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, u.WithRole())
}

func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req struct {
		RoleName string `json:"RoleName"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	u, err := h.Users.UpdateRole(ctx, c.Param("user_id"), req.RoleName)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, u.WithRole())
}

func (h *UserHandler) Delete(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	ok, err := h.Repo.Delete(ctx, c.Param("user_id"))
	return deleted(c, "User", ok, err)
}

// CreateRole handles POST /role/post. Only the fixed role names are
// accepted; each keeps its fixed id.
func (h *UserHandler) CreateRole(c echo.Context) error {
	var req struct {
		RoleName string `json:"RoleName"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	id, ok := model.RoleIDByName(req.RoleName)
	if !ok {
		return fail(apperr.Invalid("Invalid role name"))
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	name, _ := model.RoleNameByID(id)
	role := model.Role{RoleID: id, RoleName: name}
	if err := h.Roles.Create(ctx, role); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, role)
}

func (h *UserHandler) ListRoles(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	roles, err := h.Roles.List(ctx)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, roles)
}

func (h *UserHandler) DeleteRole(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("role_id"))
	if err != nil {
		return badRequest("invalid role_id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	ok, err := h.Roles.Delete(ctx, id)
	return deleted(c, "Role", ok, err)
}
