package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/internal/db"
)

func TestRatingRepository(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	repo := NewRatingRepository(testDB)
	store := createTestUser(t, testDB, "Rated Store")
	fan := createTestUser(t, testDB, "Fan")
	critic := createTestUser(t, testDB, "Critic")

	first := &model.Rating{UserID: fan.ID, StoreID: store.ID, Score: 4.5, Review: "great plates"}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(&model.Rating{UserID: critic.ID, StoreID: store.ID, Score: 2}))

	// One review per user per store.
	err = repo.Create(&model.Rating{UserID: fan.ID, StoreID: store.ID, Score: 5})
	require.Error(t, err)

	ratings, err := repo.FindByStore(store.ID)
	require.NoError(t, err)
	assert.Len(t, ratings, 2)

	// Only the author may delete.
	assert.ErrorIs(t, repo.Delete(first.ID, critic.ID), gorm.ErrRecordNotFound)
	require.NoError(t, repo.Delete(first.ID, fan.ID))

	ratings, err = repo.FindByStore(store.ID)
	require.NoError(t, err)
	assert.Len(t, ratings, 1)
}
