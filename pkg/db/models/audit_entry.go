package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
)

// AuditEntry is the immutable record of one lifecycle transition. Rows are
// append-only; nothing updates or deletes them. EntryID is nil for
// order-level notes such as recalculation.
type AuditEntry struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EntryID        *uuid.UUID         `gorm:"column:entry_id;type:uuid;index"`
	OrderID        uuid.UUID          `gorm:"column:order_id;type:uuid;not null;index"`
	Action         enums.AuditAction  `gorm:"column:action;type:audit_action_enum;not null"`
	PreviousStatus *enums.EntryStatus `gorm:"column:previous_status;type:entry_status_enum"`
	NewStatus      *enums.EntryStatus `gorm:"column:new_status;type:entry_status_enum"`
	ActorID        uuid.UUID          `gorm:"column:actor_id;type:uuid;not null"`
	ActorEmail     string             `gorm:"column:actor_email;not null"`
	Details        *string            `gorm:"column:details"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
}
