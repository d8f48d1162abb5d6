package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/travelmart_server/internal/testutil"
)

func TestPromoCodeRepository_GetByCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPromoCodeRepository(db)
	user := testutil.TestUser(t, db)
	promo := testutil.TestPromoCode(t, db, user.ID, testutil.WithCode("TRAVEL10"))

	found, err := repo.GetByCode("TRAVEL10")
	require.NoError(t, err)
	assert.Equal(t, promo.ID, found.ID)

	byUser, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "TRAVEL10", byUser.Code)

	_, err = repo.GetByCode("NOPE")
	assert.Error(t, err)
}

func TestPromoCodeRepository_Exists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPromoCodeRepository(db)
	user := testutil.TestUser(t, db)
	testutil.TestPromoCode(t, db, user.ID, testutil.WithCode("HELLO"))

	exists, err := repo.ExistsByCode("HELLO")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUserID(user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUserID(user.ID + 100)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPromoCodeRepository_RecordUsage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPromoCodeRepository(db)
	user := testutil.TestUser(t, db)
	promo := testutil.TestPromoCode(t, db, user.ID, testutil.WithUsage(2))

	require.NoError(t, repo.RecordUsage(promo.ID, decimal.RequireFromString("1.50")))
	require.NoError(t, repo.RecordUsage(promo.ID, decimal.RequireFromString("2.25")))

	updated, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.UsageCount)
	assert.True(t, updated.TotalEarnings.Equal(decimal.RequireFromString("3.75")), "got %s", updated.TotalEarnings)
}

func TestPromoCodeRepository_UpdateFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPromoCodeRepository(db)
	user := testutil.TestUser(t, db)
	promo := testutil.TestPromoCode(t, db, user.ID)

	require.NoError(t, repo.UpdateFields(promo.ID, map[string]interface{}{"is_active": false}))

	updated, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}
