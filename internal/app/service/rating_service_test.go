package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/app789plates/plates-backend/internal/app/repository"
	"github.com/app789plates/plates-backend/internal/db"
)

func TestRatingService_Rate(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	store := createServiceTestUser(t, testDB, "Store")
	buyer := createServiceTestUser(t, testDB, "Buyer")

	svc := NewRatingService(
		repository.NewRatingRepository(testDB),
		repository.NewStoreRepository(testDB),
	)

	_, err = svc.Rate(buyer.ID, store.ID, 5.5, "")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Rate(buyer.ID, store.ID, -1, "")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Rate(store.ID, store.ID, 5, "")
	assert.ErrorIs(t, err, ErrRatingOwnStore)

	_, err = svc.Rate(buyer.ID, 9999, 5, "")
	assert.ErrorIs(t, err, ErrStoreNotFound)

	rating, err := svc.Rate(buyer.ID, store.ID, 4.5, "  great service  ")
	require.NoError(t, err)
	assert.Equal(t, 4.5, rating.Score)
	assert.Equal(t, "great service", rating.Review)

	_, err = svc.Rate(buyer.ID, store.ID, 3, "")
	assert.ErrorIs(t, err, ErrRatingAlreadyExists)
}

func TestRatingService_Delete(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	store := createServiceTestUser(t, testDB, "Store")
	buyer := createServiceTestUser(t, testDB, "Buyer")
	other := createServiceTestUser(t, testDB, "Other")

	svc := NewRatingService(
		repository.NewRatingRepository(testDB),
		repository.NewStoreRepository(testDB),
	)

	rating, err := svc.Rate(buyer.ID, store.ID, 4, "")
	require.NoError(t, err)

	// Only the author may remove their rating.
	assert.ErrorIs(t, svc.Delete(rating.ID, other.ID), ErrRatingNotFound)
	require.NoError(t, svc.Delete(rating.ID, buyer.ID))
	assert.ErrorIs(t, svc.Delete(rating.ID, buyer.ID), ErrRatingNotFound)

	ratings, err := svc.GetByStore(store.ID)
	require.NoError(t, err)
	assert.Empty(t, ratings)
}
