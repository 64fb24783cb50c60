package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/internal/app/repository"
	"github.com/app789plates/plates-backend/internal/db"
)

func setupSocialServiceTest(t *testing.T) (*gorm.DB, SocialService, *model.User, *model.Plate) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	owner := createServiceTestUser(t, testDB, "Owner Store")
	plateRepo := repository.NewPlateRepository(testDB)
	plateSvc := NewPlateService(plateRepo)
	plate, err := plateSvc.Create(owner.ID, validInput(999))
	require.NoError(t, err)

	svc := NewSocialService(
		repository.NewSocialRepository(testDB),
		plateRepo,
		repository.NewStoreRepository(testDB),
	)
	return testDB, svc, owner, plate
}

func TestSocialService_PlateReactions(t *testing.T) {
	testDB, svc, _, plate := setupSocialServiceTest(t)
	fan := createServiceTestUser(t, testDB, "Fan")

	require.NoError(t, svc.LikePlate(fan.ID, plate.ID))
	assert.ErrorIs(t, svc.LikePlate(fan.ID, plate.ID), ErrReactionAlreadyExists)

	liked, err := svc.GetLikedPlateIDs(fan.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{plate.ID}, liked)

	require.NoError(t, svc.UnlikePlate(fan.ID, plate.ID))
	assert.ErrorIs(t, svc.UnlikePlate(fan.ID, plate.ID), ErrReactionNotFound)
}

func TestSocialService_MissingTargets(t *testing.T) {
	testDB, svc, _, _ := setupSocialServiceTest(t)
	fan := createServiceTestUser(t, testDB, "Fan")

	assert.ErrorIs(t, svc.LikePlate(fan.ID, 9999), ErrPlateNotFound)
	assert.ErrorIs(t, svc.SavePlate(fan.ID, 9999), ErrPlateNotFound)
	assert.ErrorIs(t, svc.LikeStore(fan.ID, 9999), ErrStoreNotFound)
	assert.ErrorIs(t, svc.SaveStore(fan.ID, 9999), ErrStoreNotFound)
}

func TestSocialService_StoreReactions(t *testing.T) {
	testDB, svc, owner, _ := setupSocialServiceTest(t)
	fan := createServiceTestUser(t, testDB, "Fan")

	require.NoError(t, svc.SaveStore(fan.ID, owner.ID))
	assert.ErrorIs(t, svc.SaveStore(fan.ID, owner.ID), ErrReactionAlreadyExists)

	saved, err := svc.GetSavedStoreIDs(fan.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{owner.ID}, saved)

	require.NoError(t, svc.UnsaveStore(fan.ID, owner.ID))
	assert.ErrorIs(t, svc.UnsaveStore(fan.ID, owner.ID), ErrReactionNotFound)
}
