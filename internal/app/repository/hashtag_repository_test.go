package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/internal/db"
)

func setupHashtagTest(t *testing.T) (*gorm.DB, HashtagRepository, *model.Plate) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	owner := createTestUser(t, testDB, "Owner Store")
	plate := testPlate(owner.ID, 999)
	require.NoError(t, NewPlateRepository(testDB).Create(plate, 10000))

	return testDB, NewHashtagRepository(testDB), plate
}

func TestHashtagRepository_Attach(t *testing.T) {
	testDB, repo, plate := setupHashtagTest(t)

	hashtag, err := repo.Attach(plate.ID, "  Lucky  ")
	require.NoError(t, err)
	assert.Equal(t, "lucky", hashtag.Tag, "tags are trimmed and lowercased")

	// Attaching the same tag to another plate reuses the hashtag row.
	owner2 := createTestUser(t, testDB, "Second Store")
	plate2 := testPlate(owner2.ID, 888)
	require.NoError(t, NewPlateRepository(testDB).Create(plate2, 10000))

	again, err := repo.Attach(plate2.ID, "LUCKY")
	require.NoError(t, err)
	assert.Equal(t, hashtag.ID, again.ID)

	var tagCount int64
	require.NoError(t, testDB.Model(&model.Hashtag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(1), tagCount)
}

func TestHashtagRepository_Attach_Duplicate(t *testing.T) {
	_, repo, plate := setupHashtagTest(t)

	_, err := repo.Attach(plate.ID, "lucky")
	require.NoError(t, err)

	_, err = repo.Attach(plate.ID, "lucky")
	require.Error(t, err, "re-attaching the same tag violates the link unique key")
}

func TestHashtagRepository_DetachAndLookup(t *testing.T) {
	_, repo, plate := setupHashtagTest(t)

	lucky, err := repo.Attach(plate.ID, "lucky")
	require.NoError(t, err)
	_, err = repo.Attach(plate.ID, "rare")
	require.NoError(t, err)

	tags, err := repo.FindByPlate(plate.ID)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "lucky", tags[0].Tag, "attachment order is preserved")

	ids, err := repo.FindPlateIDsByTag("LUCKY")
	require.NoError(t, err)
	assert.Equal(t, []uint{plate.ID}, ids)

	require.NoError(t, repo.Detach(plate.ID, lucky.ID))
	assert.ErrorIs(t, repo.Detach(plate.ID, lucky.ID), gorm.ErrRecordNotFound)

	ids, err = repo.FindPlateIDsByTag("lucky")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
