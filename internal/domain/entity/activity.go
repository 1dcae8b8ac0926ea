package entity

import "time"

// ActivityKind tipo de acción registrada en el historial.
type ActivityKind string

const (
	ActivityLogin    ActivityKind = "LOGIN"
	ActivityLogout   ActivityKind = "LOGOUT"
	ActivityCreate   ActivityKind = "CREATE"
	ActivityEdit     ActivityKind = "EDIT"
	ActivityDelete   ActivityKind = "DELETE"
	ActivityDiscount ActivityKind = "DISCOUNT"
	ActivityExport   ActivityKind = "EXPORT"
)

// ActivityRecord entrada append-only del historial de auditoría.
type ActivityRecord struct {
	ID          string
	UserID      string
	Kind        ActivityKind
	Description string
	ClientIP    string // opcional
	CreatedAt   time.Time
}
