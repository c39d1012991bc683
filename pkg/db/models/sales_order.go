package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrder holds the order's own pricing. A live change order supersedes
// these values at read time; balance math never reads them directly.
type SalesOrder struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber       string          `gorm:"column:order_number;not null;unique"`
	CustomerName      string          `gorm:"column:customer_name;not null"`
	SubtotalBeforeTax decimal.Decimal `gorm:"column:subtotal_before_tax;type:numeric(12,2);not null"`
	ExtraAmount       decimal.Decimal `gorm:"column:extra_amount;type:numeric(12,2);not null;default:0"`
	DepositRequired   decimal.Decimal `gorm:"column:deposit_required;type:numeric(12,2);not null;default:0"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
