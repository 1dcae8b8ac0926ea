package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleEmployee   = "EMPLOYEE"
	RoleAuditor    = "AUDITOR"
)

// ValidRole indica si role pertenece al catálogo.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleEmployee, RoleAuditor:
		return true
	}
	return false
}

// User representa un usuario del sistema. Debe ser aprobado por un administrador antes de ingresar.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash
	FirstName    string
	LastName     string
	Role         string
	Phone        string
	Document     string
	Approved     bool
	ApprovedAt   *time.Time
	ApprovedBy   string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre para mostrar.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}

// CanManageInventory crear/editar productos y mover stock.
func (u *User) CanManageInventory() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleAdmin || u.Role == RoleEmployee
}

// CanDelete desactivar o restaurar registros.
func (u *User) CanDelete() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleAdmin
}

// CanApprove aprobar y administrar otros usuarios.
func (u *User) CanApprove() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleAdmin
}
