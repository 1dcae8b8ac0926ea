package entity

// Actor identifica quién ejecuta una operación: usuario autenticado, rol del token e IP de origen.
type Actor struct {
	UserID   string
	Username string
	Role     string
	ClientIP string
}

// CanManageInventory ver User.CanManageInventory.
func (a Actor) CanManageInventory() bool {
	return (&User{Role: a.Role}).CanManageInventory()
}

// CanDelete ver User.CanDelete.
func (a Actor) CanDelete() bool {
	return (&User{Role: a.Role}).CanDelete()
}

// CanApprove ver User.CanApprove.
func (a Actor) CanApprove() bool {
	return (&User{Role: a.Role}).CanApprove()
}
