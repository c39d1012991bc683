package audit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
)

// Repository manages persistence for audit entries. Append-only: rows are
// never updated, merged or deleted.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.AuditEntry) error
	ListByEntryID(ctx context.Context, entryID uuid.UUID) ([]models.AuditEntry, error)
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.AuditEntry, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an audit repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListByEntryID(ctx context.Context, entryID uuid.UUID) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	if err := r.db.WithContext(ctx).
		Where("entry_id = ?", entryID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
