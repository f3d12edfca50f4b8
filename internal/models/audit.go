package models

import "time"

// AuditRecord is a row of the audit_trail table.
type AuditRecord struct {
	AuditID     string    `db:"audit_id"`
	UserID      string    `db:"user_id"`
	Action      string    `db:"action"`
	Entity      string    `db:"entity"`
	EntityID    string    `db:"entity_id"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}
