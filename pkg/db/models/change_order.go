package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
)

// ChangeOrder is a proposed or applied revision to an order's price/deposit.
// The pending_signature revision with the highest number is the live one.
type ChangeOrder struct {
	ID                uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID           uuid.UUID               `gorm:"column:order_id;type:uuid;not null;index"`
	ChangeOrderNumber int                     `gorm:"column:change_order_number;not null"`
	Status            enums.ChangeOrderStatus `gorm:"column:status;type:change_order_status_enum;not null;default:'draft'"`
	NewSubtotal       decimal.Decimal         `gorm:"column:new_subtotal;type:numeric(12,2);not null"`
	NewExtraAmount    decimal.Decimal         `gorm:"column:new_extra_amount;type:numeric(12,2);not null;default:0"`
	NewDeposit        decimal.Decimal         `gorm:"column:new_deposit;type:numeric(12,2);not null"`
	DepositDiff       decimal.Decimal         `gorm:"column:deposit_diff;type:numeric(12,2);not null;default:0"`
	Reason            *string                 `gorm:"column:reason"`
	CreatedAt         time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
