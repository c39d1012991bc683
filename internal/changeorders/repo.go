package changeorders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
)

// Repository manages persistence for change orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.ChangeOrder, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a change-order repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.ChangeOrder, error) {
	var changeOrders []models.ChangeOrder
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("change_order_number ASC").
		Find(&changeOrders).Error; err != nil {
		return nil, err
	}
	return changeOrders, nil
}
