package repositories_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"userapi/internal/models"
	"userapi/internal/repositories"
)

// openTestDB opens a uniquely named in-memory SQLite database so tests do
// not share state through the shared cache.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestGORMRepository_CreateAndGet(t *testing.T) {
	repo, err := repositories.NewGORMUserRepository(openTestDB(t))
	require.NoError(t, err)

	created, err := repo.Create(models.UserFields{Name: "Alice Cooper", Email: "alice@example.com", Age: 30, Position: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	fetched, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.Email, fetched.Email)

	missing, err := repo.GetByID(99)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGORMRepository_UpdateAndDelete(t *testing.T) {
	repo, err := repositories.NewGORMUserRepository(openTestDB(t))
	require.NoError(t, err)

	created, err := repo.Create(models.UserFields{Name: "Alice Cooper", Email: "alice@example.com", Age: 30, Position: "Engineer"})
	require.NoError(t, err)

	updated, err := repo.Update(created.ID, models.UserUpdate{Position: strPtr("Staff Engineer")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Staff Engineer", updated.Position)
	assert.Equal(t, created.Name, updated.Name)

	deleted, err := repo.Delete(created.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	gone, err := repo.GetByID(created.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)

	again, err := repo.Delete(created.ID)
	assert.NoError(t, err)
	assert.Nil(t, again)
}

func TestGORMRepository_CounterResumesAfterExistingRows(t *testing.T) {
	db := openTestDB(t)

	repo, err := repositories.NewGORMUserRepository(db)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := repo.Create(models.UserFields{
			Name:     fmt.Sprintf("User %d", i+1),
			Email:    fmt.Sprintf("user%d@example.com", i+1),
			Age:      20 + i,
			Position: "Engineer",
		})
		require.NoError(t, err)
	}

	// A repository built over the same table resumes after the highest ID.
	reopened, err := repositories.NewGORMUserRepository(db)
	require.NoError(t, err)
	next, err := reopened.Create(models.UserFields{Name: "User 4", Email: "user4@example.com", Age: 40, Position: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, 4, next.ID)
}
