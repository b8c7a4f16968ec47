package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	accountrepo "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/repo/account-repo"
	couponrepo "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/repo/coupon-repo"
	orderrepo "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/repo/order-repo"
	pricerepo "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/repo/price-repo"
	settingsrepo "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/repo/settings-repo"
)

func TestNew(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	repo := New(mockDB)

	assert.NotNil(t, repo.AccountRepo)
	assert.NotNil(t, repo.CouponRepo)
	assert.NotNil(t, repo.PriceRepo)
	assert.NotNil(t, repo.OrderRepo)
	assert.NotNil(t, repo.SettingsRepo)

	assert.IsType(t, &accountrepo.Repository{}, repo.AccountRepo)
	assert.IsType(t, &couponrepo.Repository{}, repo.CouponRepo)
	assert.IsType(t, &pricerepo.Repository{}, repo.PriceRepo)
	assert.IsType(t, &orderrepo.Repository{}, repo.OrderRepo)
	assert.IsType(t, &settingsrepo.Repository{}, repo.SettingsRepo)

	if err := mockDB.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
