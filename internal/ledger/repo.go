package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
	"github.com/avifonte/ledgerdesk-backend/pkg/pagination"
)

// ListFilters narrows entry listings. Zero values mean "no filter".
type ListFilters struct {
	Status *enums.EntryStatus
	Type   *enums.TransactionType
	From   *time.Time
	To     *time.Time
	Search string
}

// Repository manages persistence for ledger entries. Entries are append-mostly:
// after creation only status transitions (plus their companion fields) mutate a
// row, and always through the compare-and-set helpers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.LedgerEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.LedgerEntry, error)
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.LedgerEntry, error)
	ListPage(ctx context.Context, orderID uuid.UUID, filters ListFilters, page pagination.Params) ([]models.LedgerEntry, int64, error)
	ListByMethodWindow(ctx context.Context, method enums.PaymentMethod, from, to time.Time, limit int) ([]models.LedgerEntry, error)
	// TransitionFrom updates the row only while its status still equals from.
	// Returns false when the row has already left that status, meaning the
	// caller lost the race and must not double-process.
	TransitionFrom(ctx context.Context, id uuid.UUID, from enums.EntryStatus, updates map[string]any) (bool, error)
	// TransitionNotVoided updates the row only while it is not yet voided.
	TransitionNotVoided(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) ListPage(ctx context.Context, orderID uuid.UUID, filters ListFilters, page pagination.Params) ([]models.LedgerEntry, int64, error) {
	page = pagination.Normalize(page)

	query := r.db.WithContext(ctx).Model(&models.LedgerEntry{}).Where("order_id = ?", orderID)
	query = applyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.LedgerEntry
	if err := query.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.From != nil {
		query = query.Where("created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("created_at <= ?", *filters.To)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("order_number ILIKE ? OR notes ILIKE ?", pattern, pattern)
	}
	return query
}

func (r *repository) ListByMethodWindow(ctx context.Context, method enums.PaymentMethod, from, to time.Time, limit int) ([]models.LedgerEntry, error) {
	query := r.db.WithContext(ctx).
		Where("method = ?", method).
		Where("status <> ?", enums.EntryStatusVoided).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []models.LedgerEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) TransitionFrom(ctx context.Context, id uuid.UUID, from enums.EntryStatus, updates map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.LedgerEntry{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) TransitionNotVoided(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.LedgerEntry{}).
		Where("id = ? AND status <> ?", id, enums.EntryStatusVoided).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
