package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/entity"
	"github.com/kmaina/stockroom-api/internal/domain/enum"
	"github.com/kmaina/stockroom-api/internal/domain/repository"
	"github.com/kmaina/stockroom-api/pkg/apperror"
	"github.com/kmaina/stockroom-api/pkg/listview"
	"github.com/kmaina/stockroom-api/pkg/pagination"
	"github.com/kmaina/stockroom-api/pkg/utils"
)

// UserService handles user and role administration
type UserService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// CreateUserInput represents the admin create user input
type CreateUserInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string
	Roles       []string
}

// UpdateUserInput represents the admin update user input
type UpdateUserInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

// Create provisions a user account with the given roles
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	roles := make([]entity.Role, 0, len(input.Roles))
	for _, code := range input.Roles {
		parsed, ok := enum.ParseRole(code)
		if !ok {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "roles", Message: "unknown role " + code},
			})
		}
		role, err := s.roleRepo.GetByCode(ctx, parsed)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, apperror.NewNotFoundError("Role " + code)
		}
		roles = append(roles, *role)
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    hashedPassword,
		Provider:    "local",
		Roles:       roles,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user with their roles
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

func userView() *listview.View[entity.User] {
	return &listview.View[entity.User]{
		SearchFields: func(u entity.User) []string {
			return []string{u.FirstName, u.LastName, u.Email, u.PhoneNumber}
		},
		DateOf: func(u entity.User) (time.Time, bool) {
			return u.CreatedAt, !u.CreatedAt.IsZero()
		},
		Sorters: map[string]listview.Comparator[entity.User]{
			"first_name": func(a, b entity.User) int { return listview.CompareStrings(a.FirstName, b.FirstName) },
			"last_name":  func(a, b entity.User) int { return listview.CompareStrings(a.LastName, b.LastName) },
			"email":      func(a, b entity.User) int { return listview.CompareStrings(a.Email, b.Email) },
			"created_at": func(a, b entity.User) int { return listview.CompareTimes(a.CreatedAt, b.CreatedAt) },
		},
		DefaultSort: "created_at",
	}
}

// List returns a filtered, sorted and paginated view over all users
func (s *UserService) List(ctx context.Context, params listview.Params) (*pagination.PaginatedResult[entity.User], error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return userView().Apply(users, params), nil
}

// Update modifies a user's profile fields
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetWithRoles(ctx, id)
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return s.userRepo.Delete(ctx, id)
}

// AssignRole grants a role to a user
func (s *UserService) AssignRole(ctx context.Context, userID uuid.UUID, roleCode string) (*entity.User, error) {
	parsed, ok := enum.ParseRole(roleCode)
	if !ok {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "role", Message: "unknown role " + roleCode},
		})
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	role, err := s.roleRepo.GetByCode(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.NewNotFoundError("Role " + roleCode)
	}

	if err := s.userRepo.AssignRole(ctx, userID, role.ID); err != nil {
		return nil, err
	}
	return s.userRepo.GetWithRoles(ctx, userID)
}

// RemoveRole revokes a role from a user
func (s *UserService) RemoveRole(ctx context.Context, userID uuid.UUID, roleCode string) (*entity.User, error) {
	parsed, ok := enum.ParseRole(roleCode)
	if !ok {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "role", Message: "unknown role " + roleCode},
		})
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	role, err := s.roleRepo.GetByCode(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.NewNotFoundError("Role " + roleCode)
	}

	if err := s.userRepo.RemoveRole(ctx, userID, role.ID); err != nil {
		return nil, err
	}
	return s.userRepo.GetWithRoles(ctx, userID)
}

// ListRoles returns all assignable roles
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roleRepo.List(ctx)
}
