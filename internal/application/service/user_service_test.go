package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/entity"
	"github.com/kmaina/stockroom-api/internal/domain/enum"
	"github.com/kmaina/stockroom-api/pkg/apperror"
	"github.com/kmaina/stockroom-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoleRepo struct {
	roles map[uuid.UUID]*entity.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	r := &fakeRoleRepo{roles: make(map[uuid.UUID]*entity.Role)}
	for _, code := range enum.AllRoles() {
		role := &entity.Role{ID: uuid.New(), Code: code, Name: code.String()}
		r.roles[role.ID] = role
	}
	return r
}

func (r *fakeRoleRepo) Create(_ context.Context, role *entity.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	r.roles[role.ID] = role
	return nil
}

func (r *fakeRoleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, nil
	}
	return role, nil
}

func (r *fakeRoleRepo) GetByCode(_ context.Context, code enum.Role) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.Code == code {
			return role, nil
		}
	}
	return nil, nil
}

func (r *fakeRoleRepo) List(_ context.Context) ([]entity.Role, error) {
	out := make([]entity.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

type fakeUserRepo struct {
	users    map[uuid.UUID]*entity.User
	roleRepo *fakeRoleRepo
}

func newFakeUserRepo(roleRepo *fakeRoleRepo) *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User), roleRepo: roleRepo}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *fakeUserRepo) GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepo) AssignRole(_ context.Context, userID, roleID uuid.UUID) error {
	user, ok := r.users[userID]
	if !ok {
		return nil
	}
	role, ok := r.roleRepo.roles[roleID]
	if !ok {
		return nil
	}
	for _, existing := range user.Roles {
		if existing.ID == roleID {
			return nil
		}
	}
	user.Roles = append(user.Roles, *role)
	return nil
}

func (r *fakeUserRepo) RemoveRole(_ context.Context, userID, roleID uuid.UUID) error {
	user, ok := r.users[userID]
	if !ok {
		return nil
	}
	kept := user.Roles[:0]
	for _, role := range user.Roles {
		if role.ID != roleID {
			kept = append(kept, role)
		}
	}
	user.Roles = kept
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func newUserFixture() (*UserService, *fakeUserRepo, *fakeRoleRepo) {
	roleRepo := newFakeRoleRepo()
	userRepo := newFakeUserRepo(roleRepo)
	return NewUserService(userRepo, roleRepo), userRepo, roleRepo
}

func TestUserServiceCreate_AssignsRolesAndHashesPassword(t *testing.T) {
	svc, _, _ := newUserFixture()

	user, err := svc.Create(context.Background(), &CreateUserInput{
		FirstName: "Jane",
		LastName:  "Wanjiru",
		Email:     "jane@example.com",
		Password:  "super-secret-1",
		Roles:     []string{"STOCK_OFFICER"},
	})
	require.NoError(t, err)

	require.Len(t, user.Roles, 1)
	assert.Equal(t, enum.RoleStockOfficer, user.Roles[0].Code)
	assert.NotEqual(t, "super-secret-1", user.Password)
	assert.True(t, utils.CheckPasswordHash("super-secret-1", user.Password))
}

func TestUserServiceCreate_RejectsUnknownRole(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.Create(context.Background(), &CreateUserInput{
		FirstName: "Jane",
		LastName:  "Wanjiru",
		Email:     "jane@example.com",
		Password:  "super-secret-1",
		Roles:     []string{"WAREHOUSE_WIZARD"},
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
}

func TestUserServiceCreate_RejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.Create(context.Background(), &CreateUserInput{
		FirstName: "Jane",
		LastName:  "Wanjiru",
		Email:     "jane@example.com",
		Password:  "super-secret-1",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &CreateUserInput{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "jane@example.com",
		Password:  "super-secret-2",
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestUserServiceAssignAndRemoveRole(t *testing.T) {
	svc, _, _ := newUserFixture()

	user, err := svc.Create(context.Background(), &CreateUserInput{
		FirstName: "Jane",
		LastName:  "Wanjiru",
		Email:     "jane@example.com",
		Password:  "super-secret-1",
	})
	require.NoError(t, err)
	require.Empty(t, user.Roles)

	updated, err := svc.AssignRole(context.Background(), user.ID, "MANAGER")
	require.NoError(t, err)
	require.Len(t, updated.Roles, 1)
	assert.Equal(t, enum.RoleManager, updated.Roles[0].Code)

	// Assigning the same role twice stays idempotent
	updated, err = svc.AssignRole(context.Background(), user.ID, "MANAGER")
	require.NoError(t, err)
	require.Len(t, updated.Roles, 1)

	updated, err = svc.RemoveRole(context.Background(), user.ID, "MANAGER")
	require.NoError(t, err)
	assert.Empty(t, updated.Roles)
}

func TestUserServiceAssignRole_UnknownUser(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.AssignRole(context.Background(), uuid.New(), "MANAGER")
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}
