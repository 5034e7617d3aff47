package request

// CreateUserRequest represents an admin create user request
type CreateUserRequest struct {
	FirstName   string   `json:"first_name" binding:"required,min=2,max=255"`
	LastName    string   `json:"last_name" binding:"required,min=2,max=255"`
	Email       string   `json:"email" binding:"required,email"`
	PhoneNumber string   `json:"phone_number"`
	Password    string   `json:"password" binding:"required,min=8"`
	Roles       []string `json:"roles"`
}

// UpdateUserRequest represents an admin update user request
type UpdateUserRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,min=2,max=255"`
	LastName    *string `json:"last_name" binding:"omitempty,min=2,max=255"`
	PhoneNumber *string `json:"phone_number"`
}

// RoleRequest names a role to assign or revoke
type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}
