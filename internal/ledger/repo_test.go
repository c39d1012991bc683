package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
	"github.com/avifonte/ledgerdesk-backend/pkg/pagination"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ledgerEntries := `
CREATE TABLE IF NOT EXISTS ledger_entries (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  order_number TEXT NOT NULL,
  type TEXT NOT NULL,
  category TEXT NOT NULL,
  amount TEXT NOT NULL,
  method TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  external_payment_id TEXT UNIQUE,
  proof_file_url TEXT,
  notes TEXT,
  void_reason TEXT,
  created_by TEXT NOT NULL,
  approved_by TEXT,
  approved_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ledgerEntries).Error)
	return db
}

func createTestEntry(t *testing.T, db *gorm.DB, orderID uuid.UUID, status enums.EntryStatus, method enums.PaymentMethod, amount string, created time.Time) *models.LedgerEntry {
	t.Helper()

	entry := &models.LedgerEntry{
		ID:          uuid.New(),
		OrderID:     orderID,
		OrderNumber: "SO-1042",
		Type:        enums.TransactionTypePayment,
		Category:    enums.EntryCategoryInitialDeposit,
		Amount:      decimal.RequireFromString(amount),
		Method:      method,
		Status:      status,
		CreatedBy:   uuid.New(),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}

func TestRepositoryListPage_filtersAndPaging(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	orderID := uuid.New()

	now := time.Now().UTC()
	createTestEntry(t, db, orderID, enums.EntryStatusPending, enums.PaymentMethodCheck, "600.00", now.Add(-3*time.Hour))
	createTestEntry(t, db, orderID, enums.EntryStatusApproved, enums.PaymentMethodCash, "150.00", now.Add(-2*time.Hour))
	createTestEntry(t, db, orderID, enums.EntryStatusPending, enums.PaymentMethodCheck, "250.00", now.Add(-time.Hour))
	createTestEntry(t, db, uuid.New(), enums.EntryStatusPending, enums.PaymentMethodCheck, "999.00", now)

	status := enums.EntryStatusPending
	entries, total, err := repo.ListPage(context.Background(), orderID, ListFilters{Status: &status}, pagination.Params{Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), total)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("250.00")))

	second, total, err := repo.ListPage(context.Background(), orderID, ListFilters{Status: &status}, pagination.Params{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, int64(2), total)
	assert.True(t, second[0].Amount.Equal(decimal.RequireFromString("600.00")))

	all, total, err := repo.ListPage(context.Background(), orderID, ListFilters{}, pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, int64(3), total)
}

func TestRepositoryTransitionFrom_casGuard(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	entry := createTestEntry(t, db, uuid.New(), enums.EntryStatusPending, enums.PaymentMethodCheck, "600.00", time.Now().UTC())

	ok, err := repo.TransitionFrom(context.Background(), entry.ID, enums.EntryStatusPending, map[string]any{
		"status": enums.EntryStatusApproved,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	// second writer arrives after the row left pending
	ok, err = repo.TransitionFrom(context.Background(), entry.ID, enums.EntryStatusPending, map[string]any{
		"status": enums.EntryStatusVoided,
	})
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.FindByID(context.Background(), entry.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, enums.EntryStatusApproved, got.Status)
}

func TestRepositoryTransitionNotVoided_terminal(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	entry := createTestEntry(t, db, uuid.New(), enums.EntryStatusVerified, enums.PaymentMethodStripe, "300.00", time.Now().UTC())

	ok, err := repo.TransitionNotVoided(context.Background(), entry.ID, map[string]any{
		"status":      enums.EntryStatusVoided,
		"void_reason": "duplicate charge",
	})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionNotVoided(context.Background(), entry.ID, map[string]any{
		"status": enums.EntryStatusVoided,
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepositoryListByMethodWindow(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	orderID := uuid.New()

	now := time.Now().UTC()
	inWindow := createTestEntry(t, db, orderID, enums.EntryStatusVerified, enums.PaymentMethodStripe, "250.00", now.Add(-time.Hour))
	createTestEntry(t, db, orderID, enums.EntryStatusVoided, enums.PaymentMethodStripe, "250.00", now.Add(-time.Hour))
	createTestEntry(t, db, orderID, enums.EntryStatusVerified, enums.PaymentMethodStripe, "100.00", now.Add(-48*time.Hour))
	createTestEntry(t, db, orderID, enums.EntryStatusVerified, enums.PaymentMethodCheck, "75.00", now.Add(-time.Hour))

	entries, err := repo.ListByMethodWindow(context.Background(), enums.PaymentMethodStripe, now.Add(-24*time.Hour), now, 100)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, inWindow.ID, entries[0].ID)
}
