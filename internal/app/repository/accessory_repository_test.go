package repository

import (
	"testing"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAccessoryTest(t *testing.T) (*gorm.DB, AccessoryRepository, *model.Category, *model.Category) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewAccessoryRepository(testDB)

	food := &model.Category{Name: "Food"}
	toys := &model.Category{Name: "Toys"}
	require.NoError(t, testDB.Create(food).Error)
	require.NoError(t, testDB.Create(toys).Error)

	accessories := []model.Accessory{
		{Name: "Premium Dog Food", Description: "Chicken and rice", Price: 1499, Stock: 40, CategoryID: food.ID},
		{Name: "Kitten Food", Description: "High protein", Price: 899, Stock: 0, CategoryID: food.ID},
		{Name: "Rope Tug Toy", Description: "Braided cotton", Price: 299, Stock: 60, CategoryID: toys.ID},
		{Name: "Feather Wand", Description: "For cats", Price: 199, Stock: 2, CategoryID: toys.ID},
	}
	for i := range accessories {
		require.NoError(t, repo.Create(&accessories[i]))
	}

	return testDB, repo, food, toys
}

func TestAccessoryRepository_FindAll(t *testing.T) {
	testDB, repo, _, _ := setupAccessoryTest(t)
	defer db.CleanupTestDB(testDB)

	accessories, err := repo.FindAll(AccessoryFilter{})
	assert.NoError(t, err)
	assert.Len(t, accessories, 4)

	// Category preloaded
	assert.NotEmpty(t, accessories[0].Category.Name)
}

func TestAccessoryRepository_FindAll_ByCategory(t *testing.T) {
	testDB, repo, food, _ := setupAccessoryTest(t)
	defer db.CleanupTestDB(testDB)

	accessories, err := repo.FindAll(AccessoryFilter{CategoryID: &food.ID})
	assert.NoError(t, err)
	assert.Len(t, accessories, 2)
}

func TestAccessoryRepository_FindAll_PriceRange(t *testing.T) {
	testDB, repo, _, _ := setupAccessoryTest(t)
	defer db.CleanupTestDB(testDB)

	minPrice := 250.0
	maxPrice := 1000.0
	accessories, err := repo.FindAll(AccessoryFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
	assert.NoError(t, err)
	require.Len(t, accessories, 2)
	for _, a := range accessories {
		assert.GreaterOrEqual(t, a.Price, minPrice)
		assert.LessOrEqual(t, a.Price, maxPrice)
	}
}

func TestAccessoryRepository_FindAll_InStock(t *testing.T) {
	testDB, repo, _, _ := setupAccessoryTest(t)
	defer db.CleanupTestDB(testDB)

	inStock := true
	accessories, err := repo.FindAll(AccessoryFilter{InStock: &inStock})
	assert.NoError(t, err)
	assert.Len(t, accessories, 3)

	inStock = false
	accessories, err = repo.FindAll(AccessoryFilter{InStock: &inStock})
	assert.NoError(t, err)
	require.Len(t, accessories, 1)
	assert.Equal(t, "Kitten Food", accessories[0].Name)
}

func TestAccessoryRepository_FindAll_Search(t *testing.T) {
	testDB, repo, _, _ := setupAccessoryTest(t)
	defer db.CleanupTestDB(testDB)

	// Matches name
	accessories, err := repo.FindAll(AccessoryFilter{Search: "Rope"})
	assert.NoError(t, err)
	assert.Len(t, accessories, 1)

	// Matches description
	accessories, err = repo.FindAll(AccessoryFilter{Search: "protein"})
	assert.NoError(t, err)
	assert.Len(t, accessories, 1)
}

func TestAccessoryRepository_FindAll_Ordering(t *testing.T) {
	testDB, repo, _, _ := setupAccessoryTest(t)
	defer db.CleanupTestDB(testDB)

	accessories, err := repo.FindAll(AccessoryFilter{Ordering: "price"})
	assert.NoError(t, err)
	require.Len(t, accessories, 4)
	assert.Equal(t, "Feather Wand", accessories[0].Name)
	assert.Equal(t, "Premium Dog Food", accessories[3].Name)

	accessories, err = repo.FindAll(AccessoryFilter{Ordering: "-price"})
	assert.NoError(t, err)
	assert.Equal(t, "Premium Dog Food", accessories[0].Name)

	// Unknown orderings fall back to newest-first without erroring
	_, err = repo.FindAll(AccessoryFilter{Ordering: "price; DROP TABLE accessories"})
	assert.NoError(t, err)
}

func TestAccessoryRepository_FindLowStock(t *testing.T) {
	testDB, repo, _, _ := setupAccessoryTest(t)
	defer db.CleanupTestDB(testDB)

	accessories, err := repo.FindLowStock(5)
	assert.NoError(t, err)
	require.Len(t, accessories, 1)

	// Out-of-stock items are not "low stock"
	assert.Equal(t, "Feather Wand", accessories[0].Name)
}

func TestAccessoryRepository_Stats(t *testing.T) {
	testDB, repo, _, _ := setupAccessoryTest(t)
	defer db.CleanupTestDB(testDB)

	stats, err := repo.Stats()
	assert.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(3), stats.InStock)
	assert.Equal(t, int64(1), stats.OutOfStock)
	assert.Equal(t, 1499.0*40+299*60+199*2, stats.StockValue)
}

func TestAccessoryRepository_Delete(t *testing.T) {
	testDB, repo, _, _ := setupAccessoryTest(t)
	defer db.CleanupTestDB(testDB)

	accessories, err := repo.FindAll(AccessoryFilter{})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(accessories[0].ID))

	_, err = repo.FindByID(accessories[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
