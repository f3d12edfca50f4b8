package dto

// AuditTrailParams defines query parameters for the audit trail listing.
type AuditTrailParams struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}
