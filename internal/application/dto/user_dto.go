package dto

import "time"

// RegisterRequest entrada para registro. La cuenta queda pendiente de aprobación.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Document  string `json:"document"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	FullName   string     `json:"full_name"`
	Role       string     `json:"role"`
	Phone      string     `json:"phone,omitempty"`
	Document   string     `json:"document,omitempty"`
	Approved   bool       `json:"approved"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// LoginRequest entrada para login por username o email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ApproveUserRequest body para POST /api/users/:id/approve.
type ApproveUserRequest struct {
	Role string `json:"role"` // opcional; vacío conserva el rol actual
}

// SetActiveRequest body para PATCH /api/users/:id/active y restauraciones.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// Estados aceptados por UserListRequest.Status.
const (
	UserStatusAll      = ""
	UserStatusPending  = "pending"
	UserStatusApproved = "approved"
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// UserListRequest filtros de GET /api/users. Pending=true equivale a status=pending.
type UserListRequest struct {
	Pending bool   `query:"pending"`
	Status  string `query:"status"`
	Search  string `query:"q"`
	PageRequest
}

// UpdateUserRequest body para PUT /api/users/:id. Rol vacío conserva el actual.
type UpdateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Document  string `json:"document"`
	Role      string `json:"role"`
}

// ChangePasswordRequest body para POST /api/auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ResetPasswordRequest body para POST /api/users/:id/reset-password.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// UserEventPayload cuerpo de user.registered / user.approved.
type UserEventPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
