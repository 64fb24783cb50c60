package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/internal/db"
	"github.com/app789plates/plates-backend/internal/pattern"
)

func TestPatternRepository_RecordAndCount(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	repo := NewPatternRepository(testDB)

	now := time.Now()
	require.NoError(t, repo.RecordMemberships(1, []pattern.Category{pattern.Cat999, pattern.CatXXX}, now))
	require.NoError(t, repo.RecordMemberships(2, []pattern.Category{pattern.CatXXX}, now))
	// Empty classification records nothing and is not an error.
	require.NoError(t, repo.RecordMemberships(3, nil, now))

	count, err := repo.CountByCategory(pattern.CatXXX)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByCategory(pattern.Cat999)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountByCategory(pattern.CatKob)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPatternRepository_DeleteByPlate(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	repo := NewPatternRepository(testDB)

	now := time.Now()
	require.NoError(t, repo.RecordMemberships(1, []pattern.Category{pattern.Cat999, pattern.CatXXX}, now))
	require.NoError(t, repo.RecordMemberships(2, []pattern.Category{pattern.CatXXX}, now))

	require.NoError(t, repo.DeleteByPlate(1))

	var remaining []model.PatternMembership
	require.NoError(t, testDB.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, uint(2), remaining[0].PlatesID)

	// Deleting a listing with no rows is a no-op.
	require.NoError(t, repo.DeleteByPlate(42))
}
