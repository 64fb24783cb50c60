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

func setupPlateServiceTest(t *testing.T) (*gorm.DB, PlateService) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return testDB, NewPlateService(repository.NewPlateRepository(testDB))
}

func createServiceTestUser(t *testing.T, testDB *gorm.DB, name string) *model.User {
	t.Helper()

	user := &model.User{Name: name}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func validInput(backNumber int) CreatePlateInput {
	return CreatePlateInput{
		FrontText:     "กข",
		FrontNumber:   1,
		BackNumber:    backNumber,
		VehicleTypeID: 1,
		PlatesTypeID:  1,
		ProvinceID:    1,
		Total:         1,
		Price:         50000,
	}
}

func TestPlateService_Create_Validation(t *testing.T) {
	testDB, svc := setupPlateServiceTest(t)
	user := createServiceTestUser(t, testDB, "Store")

	tests := []struct {
		name   string
		mutate func(*CreatePlateInput)
	}{
		{"back number zero", func(in *CreatePlateInput) { in.BackNumber = 0 }},
		{"back number too large", func(in *CreatePlateInput) { in.BackNumber = 10000 }},
		{"negative front number", func(in *CreatePlateInput) { in.FrontNumber = -1 }},
		{"front number too large", func(in *CreatePlateInput) { in.FrontNumber = 100 }},
		{"blank front text", func(in *CreatePlateInput) { in.FrontText = "   " }},
		{"missing vehicle type", func(in *CreatePlateInput) { in.VehicleTypeID = 0 }},
		{"missing province", func(in *CreatePlateInput) { in.ProvinceID = 0 }},
		{"no price on permanent listing", func(in *CreatePlateInput) { in.Price = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(999)
			tt.mutate(&input)
			_, err := svc.Create(user.ID, input)
			assert.ErrorIs(t, err, ErrInvalidPlateData)
		})
	}

	t.Run("temporary listing needs no price", func(t *testing.T) {
		input := validInput(998)
		input.IsTemporary = true
		input.Price = 0
		plate, err := svc.Create(user.ID, input)
		require.NoError(t, err)
		assert.False(t, plate.IsSelling, "temporary listings start unlisted")
	})
}

func TestPlateService_Create_Duplicate(t *testing.T) {
	testDB, svc := setupPlateServiceTest(t)
	user := createServiceTestUser(t, testDB, "Store")
	rival := createServiceTestUser(t, testDB, "Rival")

	_, err := svc.Create(user.ID, validInput(1234))
	require.NoError(t, err)

	// The facet tuple is unique across all stores.
	_, err = svc.Create(rival.ID, validInput(1234))
	assert.ErrorIs(t, err, ErrPlateDuplicate)
}

func TestPlateService_Ownership(t *testing.T) {
	testDB, svc := setupPlateServiceTest(t)
	owner := createServiceTestUser(t, testDB, "Owner")
	stranger := createServiceTestUser(t, testDB, "Stranger")

	plate, err := svc.Create(owner.ID, validInput(777))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.AddPrice(stranger.ID, plate.ID, 60000), ErrPlateNotOwned)
	assert.ErrorIs(t, svc.UpdateInformation(stranger.ID, plate.ID, "x"), ErrPlateNotOwned)
	assert.ErrorIs(t, svc.UpdateSelling(stranger.ID, plate.ID, false), ErrPlateNotOwned)
	assert.ErrorIs(t, svc.UpdatePin(stranger.ID, plate.ID, true), ErrPlateNotOwned)
	assert.ErrorIs(t, svc.Delete(stranger.ID, plate.ID), ErrPlateNotOwned)

	require.NoError(t, svc.AddPrice(owner.ID, plate.ID, 60000))
	require.NoError(t, svc.UpdatePin(owner.ID, plate.ID, true))
	require.NoError(t, svc.Delete(owner.ID, plate.ID))

	assert.ErrorIs(t, svc.AddPrice(owner.ID, plate.ID, 70000), ErrPlateNotFound)
}

func TestPlateService_AddPrice_Validation(t *testing.T) {
	testDB, svc := setupPlateServiceTest(t)
	owner := createServiceTestUser(t, testDB, "Owner")

	plate, err := svc.Create(owner.ID, validInput(555))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.AddPrice(owner.ID, plate.ID, 0), ErrInvalidPlateData)
	assert.ErrorIs(t, svc.AddPrice(owner.ID, plate.ID, -100), ErrInvalidPlateData)
	assert.ErrorIs(t, svc.UpdateTotal(owner.ID, plate.ID, -1), ErrInvalidPlateData)
}

func TestPlateService_GetByID(t *testing.T) {
	testDB, svc := setupPlateServiceTest(t)
	owner := createServiceTestUser(t, testDB, "Owner")

	created, err := svc.Create(owner.ID, validInput(42))
	require.NoError(t, err)

	found, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.UniqueText, found.UniqueText)

	_, err = svc.GetByID(9999)
	assert.ErrorIs(t, err, ErrPlateNotFound)
}
