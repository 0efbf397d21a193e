// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotelfood/configs"
	"hotelfood/entity"
	"hotelfood/pkg/logger"
)

// NewDB returns a migrated in-memory SQLite database private to t.
// It holds a single connection, so code under test must use the tx it is given
// inside a transaction callback.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := configs.Open("sqlite", dsn, logger.Discard())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, configs.SetupDatabase(db))
	return db
}

// SeedItem inserts a dish in the named category and returns it.
func SeedItem(t testing.TB, db *gorm.DB, category, name, price string, available bool) *entity.MenuItem {
	t.Helper()

	var cat entity.Category
	require.NoError(t, db.Where(entity.Category{Name: category}).FirstOrCreate(&cat).Error)

	item := entity.MenuItem{
		Name:            name,
		Price:           decimal.RequireFromString(price),
		Image:           entity.DefaultMenuImage,
		Available:       available,
		DisplayQuantity: 1,
		CategoryID:      cat.ID,
	}
	require.NoError(t, db.Create(&item).Error)
	item.Category = cat
	return &item
}
