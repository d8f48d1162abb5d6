package service

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/travelmart_server/config"
	"github.com/qs3c/travelmart_server/internal/model"
	"github.com/qs3c/travelmart_server/internal/model/dto"
	"github.com/qs3c/travelmart_server/internal/repository"
	"github.com/qs3c/travelmart_server/internal/testutil"
)

func newAgentService(db *gorm.DB) (*AgentService, *repository.PromoCodeRepository) {
	repo := repository.NewPromoCodeRepository(db)
	cfg := &config.Config{
		Server: config.ServerConfig{FrontendURL: "https://travelmart.example/"},
	}
	return NewAgentService(repo, cfg), repo
}

func TestAgentService_Create_GeneratedCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, _ := newAgentService(db)
	user := testutil.TestUser(t, db)

	dash, err := svc.Create(user.ID, &dto.CreatePromoCodeRequest{})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^TM[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{6}$`), dash.Code)
	assert.Equal(t, 10, dash.DiscountPercent)
	assert.Equal(t, "bronze", dash.Tier)
	assert.Equal(t, 0.05, dash.CommissionRate)
	assert.Equal(t, "0.00", dash.TotalEarnings)
	assert.True(t, dash.IsActive)
	assert.Equal(t, "silver", dash.NextTier)
	assert.Equal(t, 10, dash.ReferralsToNextTier)
	assert.Equal(t, "https://travelmart.example/purchase-advertisement?promo="+dash.Code, dash.ReferralLink)
}

func TestAgentService_Create_CustomCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, _ := newAgentService(db)
	user := testutil.TestUser(t, db)

	dash, err := svc.Create(user.ID, &dto.CreatePromoCodeRequest{Code: " summer24 "})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER24", dash.Code)
}

func TestAgentService_Create_Duplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, _ := newAgentService(db)
	owner := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	testutil.TestPromoCode(t, db, owner.ID, testutil.WithCode("TAKEN1"))

	_, err := svc.Create(owner.ID, &dto.CreatePromoCodeRequest{})
	assert.ErrorIs(t, err, ErrPromoCodeExists)

	_, err = svc.Create(other.ID, &dto.CreatePromoCodeRequest{Code: "taken1"})
	assert.ErrorIs(t, err, ErrPromoCodeTaken)
}

func TestAgentService_GetDashboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, _ := newAgentService(db)
	user := testutil.TestUser(t, db)

	_, err := svc.GetDashboard(user.ID)
	assert.ErrorIs(t, err, ErrPromoCodeNotFound)

	testutil.TestPromoCode(t, db, user.ID, testutil.WithUsage(30), func(p *model.AgentPromoCode) {
		p.Tier = "gold"
		p.CommissionRate = 0.12
	})

	dash, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "gold", dash.Tier)
	assert.Equal(t, "platinum", dash.NextTier)
	assert.Equal(t, 20, dash.ReferralsToNextTier)
}

func TestAgentService_GetDashboard_TopTier(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, _ := newAgentService(db)
	user := testutil.TestUser(t, db)
	testutil.TestPromoCode(t, db, user.ID, testutil.WithUsage(80))

	dash, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)
	assert.Empty(t, dash.NextTier)
	assert.Zero(t, dash.ReferralsToNextTier)
}

func TestAgentService_SetActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, repo := newAgentService(db)
	user := testutil.TestUser(t, db)
	promo := testutil.TestPromoCode(t, db, user.ID)

	dash, err := svc.SetActive(user.ID, false)
	require.NoError(t, err)
	assert.False(t, dash.IsActive)

	stored, err := repo.GetByID(promo.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	dash, err = svc.SetActive(user.ID, true)
	require.NoError(t, err)
	assert.True(t, dash.IsActive)
}

func TestAgentService_QRCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, _ := newAgentService(db)
	user := testutil.TestUser(t, db)

	_, err := svc.QRCode(user.ID, 0)
	assert.ErrorIs(t, err, ErrPromoCodeNotFound)

	testutil.TestPromoCode(t, db, user.ID)

	png, err := svc.QRCode(user.ID, 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
}

func TestAgentService_Validate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, repo := newAgentService(db)
	active := testutil.TestPromoCode(t, db, testutil.TestUser(t, db).ID, testutil.WithCode("ACTIVE1"))
	inactive := testutil.TestPromoCode(t, db, testutil.TestUser(t, db).ID, testutil.WithCode("OFF1"))
	require.NoError(t, repo.UpdateFields(inactive.ID, map[string]interface{}{"is_active": false}))

	resp, err := svc.Validate("active1")
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, active.DiscountPercent, resp.DiscountPercent)

	resp, err = svc.Validate("OFF1")
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Zero(t, resp.DiscountPercent)

	_, err = svc.Validate("MISSING")
	assert.ErrorIs(t, err, ErrPromoCodeNotFound)
}

func TestAgentService_Resolve(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, repo := newAgentService(db)
	agent := testutil.TestUser(t, db)
	buyer := testutil.TestUser(t, db)
	promo := testutil.TestPromoCode(t, db, agent.ID, testutil.WithCode("FRIEND1"))

	got, err := svc.Resolve(buyer.ID, "friend1")
	require.NoError(t, err)
	assert.Equal(t, promo.ID, got.ID)

	_, err = svc.Resolve(agent.ID, "FRIEND1")
	assert.ErrorIs(t, err, ErrOwnPromoCode)

	require.NoError(t, repo.UpdateFields(promo.ID, map[string]interface{}{"is_active": false}))
	_, err = svc.Resolve(buyer.ID, "FRIEND1")
	assert.ErrorIs(t, err, ErrPromoCodeInactive)

	_, err = svc.Resolve(buyer.ID, "NOPE")
	assert.ErrorIs(t, err, ErrPromoCodeNotFound)
}

func TestAgentService_RecordReferral(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc, repo := newAgentService(db)
	agent := testutil.TestUser(t, db)
	promo := testutil.TestPromoCode(t, db, agent.ID, testutil.WithUsage(8))

	// 第 9 次使用仍是 bronze
	require.NoError(t, svc.RecordReferral(promo, decimal.RequireFromString("18.00")))
	stored, err := repo.GetByID(promo.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, stored.UsageCount)
	assert.Equal(t, "0.90", stored.TotalEarnings.StringFixed(2))
	assert.Equal(t, "bronze", stored.Tier)

	// 第 10 次使用按 bronze 计佣，之后升级到 silver
	require.NoError(t, svc.RecordReferral(stored, decimal.RequireFromString("270.00")))
	stored, err = repo.GetByID(promo.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.UsageCount)
	assert.Equal(t, "14.40", stored.TotalEarnings.StringFixed(2))
	assert.Equal(t, "silver", stored.Tier)
	assert.Equal(t, 0.08, stored.CommissionRate)
}
