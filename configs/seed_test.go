package configs_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hotelfood/configs"
	"hotelfood/entity"
	"hotelfood/pkg/logger"
	"hotelfood/pkg/testutil"
)

func TestSeedMenuIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	log := logger.Discard()

	require.NoError(t, configs.SeedMenu(db, false, log))
	require.NoError(t, configs.SeedMenu(db, false, log))

	var cats, items int64
	require.NoError(t, db.Model(&entity.Category{}).Count(&cats).Error)
	require.NoError(t, db.Model(&entity.MenuItem{}).Count(&items).Error)
	assert.Equal(t, int64(4), cats)
	assert.Equal(t, int64(8), items)

	var samosa entity.MenuItem
	require.NoError(t, db.Preload("Category").Where("name = ?", "Samosa").First(&samosa).Error)
	assert.Equal(t, "Appetizers", samosa.Category.Name)
	assert.True(t, samosa.Price.Equal(decimal.NewFromInt(50)))
	assert.True(t, samosa.Available)
}

func TestSeedMenuReset(t *testing.T) {
	db := testutil.NewDB(t)
	log := logger.Discard()
	testutil.SeedItem(t, db, "Specials", "Chef's Special", "999", true)

	require.NoError(t, configs.SeedMenu(db, true, log))

	var n int64
	require.NoError(t, db.Unscoped().Model(&entity.MenuItem{}).Where("name = ?", "Chef's Special").Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Unscoped().Model(&entity.Category{}).Where("name = ?", "Specials").Count(&n).Error)
	assert.Zero(t, n)
}

func TestUpsertStaff(t *testing.T) {
	db := testutil.NewDB(t)

	s, err := configs.UpsertStaff(db, "chef", "first", entity.RoleKitchen)
	require.NoError(t, err)
	s2, err := configs.UpsertStaff(db, "chef", "second", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, s.ID, s2.ID)

	var got entity.Staff
	require.NoError(t, db.First(&got, s.ID).Error)
	assert.Equal(t, entity.RoleAdmin, got.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("second")))

	_, err = configs.UpsertStaff(db, "guest", "pw", entity.RoleCustomer)
	assert.Error(t, err)
	_, err = configs.UpsertStaff(db, " ", "pw", entity.RoleKitchen)
	assert.Error(t, err)
}

func TestSeedStaffSkipsMissingCredentials(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := &configs.Config{AdminUsername: "boss", AdminPassword: "pw"}

	require.NoError(t, configs.SeedStaff(db, cfg, logger.Discard()))

	var staff []entity.Staff
	require.NoError(t, db.Find(&staff).Error)
	require.Len(t, staff, 1)
	assert.Equal(t, "boss", staff[0].Username)
	assert.Equal(t, entity.RoleAdmin, staff[0].Role)
}
