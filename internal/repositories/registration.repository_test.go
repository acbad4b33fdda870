package repositories

import (
	"context"
	"testing"
	"time"

	"rcsc-server/internal/database"
	. "rcsc-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) database.DB {
	t.Helper()

	// a named shared in-memory database keeps every pooled connection on
	// the same schema while isolating tests from each other
	gormDB, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(&Registration{}))

	return database.DB{SQL: gormDB}
}

func testRegistration(transactionID string) *Registration {
	return &Registration{
		FullName:       "Rahim Uddin",
		ClassGrade:     "IX",
		Section:        "A",
		CNo:            "10234",
		Wing:           "EMMS",
		Email:          "rahim@gmail.com",
		Phone:          "01715012619",
		MembershipType: MembershipWithoutTshirt,
		BkashNumber:    "01912345678",
		TransactionID:  transactionID,
	}
}

func TestRegistrationRepository_CreateAndGet(t *testing.T) {
	repo := NewRegistration(setupTestDB(t))
	ctx := context.Background()

	registration := testRegistration("9HX2KPLQ")
	require.NoError(t, repo.Create(ctx, registration))
	assert.NotZero(t, registration.ID)

	found, err := repo.GetByID(ctx, registration.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rahim Uddin", found.FullName)
	assert.Equal(t, "9HX2KPLQ", found.TransactionID)
	assert.False(t, found.IsValidated)
}

func TestRegistrationRepository_DuplicateTransactionID(t *testing.T) {
	repo := NewRegistration(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testRegistration("9HX2KPLQ")))

	err := repo.Create(ctx, testRegistration("9HX2KPLQ"))
	assert.ErrorIs(t, err, ErrDuplicateTransactionID)

	rows, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "rejected resubmission must not create a row")
}

func TestRegistrationRepository_GetAllNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRegistration(db)
	ctx := context.Background()

	older := testRegistration("AAAAA111")
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, db.SQL.Model(older).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	newer := testRegistration("BBBBB222")
	require.NoError(t, repo.Create(ctx, newer))

	rows, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "BBBBB222", rows[0].TransactionID)
	assert.Equal(t, "AAAAA111", rows[1].TransactionID)
}

func TestRegistrationRepository_Update(t *testing.T) {
	repo := NewRegistration(setupTestDB(t))
	ctx := context.Background()

	registration := testRegistration("9HX2KPLQ")
	require.NoError(t, repo.Create(ctx, registration))

	updated, err := repo.Update(ctx, registration.ID, map[string]any{
		"full_name":    "Rahim Ahmed",
		"is_validated": true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rahim Ahmed", updated.FullName)
	assert.True(t, updated.IsValidated)
	assert.Equal(t, "9HX2KPLQ", updated.TransactionID, "untouched columns keep their values")
}

func TestRegistrationRepository_UpdateEmptyChanges(t *testing.T) {
	repo := NewRegistration(setupTestDB(t))
	ctx := context.Background()

	registration := testRegistration("9HX2KPLQ")
	require.NoError(t, repo.Create(ctx, registration))

	updated, err := repo.Update(ctx, registration.ID, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, registration.ID, updated.ID)
}

func TestRegistrationRepository_UpdateDuplicateTransactionID(t *testing.T) {
	repo := NewRegistration(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testRegistration("AAAAA111")))
	second := testRegistration("BBBBB222")
	require.NoError(t, repo.Create(ctx, second))

	_, err := repo.Update(ctx, second.ID, map[string]any{"transaction_id": "AAAAA111"})
	assert.ErrorIs(t, err, ErrDuplicateTransactionID)
}

func TestRegistrationRepository_UpdateMissingRow(t *testing.T) {
	repo := NewRegistration(setupTestDB(t))

	_, err := repo.Update(context.Background(), 999, map[string]any{"is_validated": true})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRegistrationRepository_Delete(t *testing.T) {
	repo := NewRegistration(setupTestDB(t))
	ctx := context.Background()

	registration := testRegistration("9HX2KPLQ")
	require.NoError(t, repo.Create(ctx, registration))

	require.NoError(t, repo.Delete(ctx, registration.ID))

	_, err := repo.GetByID(ctx, registration.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, registration.ID), gorm.ErrRecordNotFound)
}
