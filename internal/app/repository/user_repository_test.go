package repository

import (
	"testing"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserTest(t *testing.T) (*gorm.DB, UserRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return testDB, NewUserRepository(testDB)
}

func testUser() *model.User {
	return &model.User{
		Username:     "buyer",
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "Buyer",
		Role:         model.RoleUser,
		IsActive:     true,
	}
}

func TestUserRepository_Create(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := testUser()
	err := repo.Create(user)
	assert.NoError(t, err)
	assert.NotZero(t, user.ID)
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(testUser()))

	dup := testUser()
	dup.Email = "fresh@example.com"
	err := repo.Create(dup)
	assert.Error(t, err)
}

func TestUserRepository_FindByUsername(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	created := testUser()
	require.NoError(t, repo.Create(created))

	user, err := repo.FindByUsername("buyer")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = repo.FindByUsername("nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	created := testUser()
	require.NoError(t, repo.Create(created))

	user, err := repo.FindByEmail("buyer@example.com")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = repo.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := testUser()
	require.NoError(t, repo.Create(user))

	user.Phone = "9876543210"
	user.IsActive = false
	require.NoError(t, repo.Update(user))

	got, err := repo.FindByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "9876543210", got.Phone)
	assert.False(t, got.IsActive)
}

func TestUserRepository_Delete(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := testUser()
	require.NoError(t, repo.Create(user))

	require.NoError(t, repo.Delete(user.ID))

	_, err := repo.FindByID(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
