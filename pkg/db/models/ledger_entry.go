package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
)

// LedgerEntry records one financial event against a sales order. Amount is
// always positive; sign is implied by Type. After creation only Status plus
// the proof/approval/void companion fields may change, and never backwards.
type LedgerEntry struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID             `gorm:"column:order_id;type:uuid;not null;index"`
	OrderNumber string                `gorm:"column:order_number;not null"`
	Type        enums.TransactionType `gorm:"column:type;type:transaction_type_enum;not null"`
	Category    enums.EntryCategory   `gorm:"column:category;type:entry_category_enum;not null"`
	Amount      decimal.Decimal       `gorm:"column:amount;type:numeric(12,2);not null"`
	Method      enums.PaymentMethod   `gorm:"column:method;type:payment_method_enum;not null"`
	Status      enums.EntryStatus     `gorm:"column:status;type:entry_status_enum;not null;default:'pending'"`

	ExternalPaymentID *string `gorm:"column:external_payment_id;unique"`
	ProofFileURL      *string `gorm:"column:proof_file_url"`
	Notes             *string `gorm:"column:notes"`
	VoidReason        *string `gorm:"column:void_reason"`

	CreatedBy  uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"column:approved_by;type:uuid"`
	ApprovedAt *time.Time `gorm:"column:approved_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
