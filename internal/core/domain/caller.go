package domain

// Role is the coarse permission level of an authenticated user.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleCashier Role = "KASIR"
)

// Caller identifies who is performing an operation.
type Caller struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the caller may perform administrative actions.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
