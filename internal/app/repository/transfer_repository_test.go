package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/internal/db"
)

func setupTransferTest(t *testing.T) (*gorm.DB, TransferRepository, *model.User, *model.User, *model.Plate) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	sender := createTestUser(t, testDB, "Sender Store")
	recipient := createTestUser(t, testDB, "Recipient")
	plate := testPlate(sender.ID, 789)
	require.NoError(t, NewPlateRepository(testDB).Create(plate, 10000))

	return testDB, NewTransferRepository(testDB), sender, recipient, plate
}

func TestTransferRepository_Accept(t *testing.T) {
	testDB, repo, sender, recipient, plate := setupTransferTest(t)
	plateRepo := NewPlateRepository(testDB)
	require.NoError(t, plateRepo.UpdatePin(plate.ID, true))

	transfer := &model.PlateTransfer{PlatesID: plate.ID, UserID: recipient.ID, StoreID: sender.ID}
	require.NoError(t, repo.Create(transfer))

	require.NoError(t, repo.Accept(transfer.ID, recipient.ID))

	found, err := repo.FindByID(transfer.ID)
	require.NoError(t, err)
	assert.True(t, found.Received)
	require.NotNil(t, found.ReceivedAt)

	// The listing changed hands and arrives unlisted and unpinned.
	moved, err := plateRepo.FindByID(plate.ID)
	require.NoError(t, err)
	assert.Equal(t, recipient.ID, moved.UserID)
	assert.False(t, moved.IsSelling)
	assert.False(t, moved.IsPin)
}

func TestTransferRepository_Accept_Twice(t *testing.T) {
	_, repo, sender, recipient, plate := setupTransferTest(t)

	transfer := &model.PlateTransfer{PlatesID: plate.ID, UserID: recipient.ID, StoreID: sender.ID}
	require.NoError(t, repo.Create(transfer))

	require.NoError(t, repo.Accept(transfer.ID, recipient.ID))
	assert.ErrorIs(t, repo.Accept(transfer.ID, recipient.ID), ErrTransferAlreadyReceived)
}

func TestTransferRepository_Accept_WrongRecipient(t *testing.T) {
	testDB, repo, sender, recipient, plate := setupTransferTest(t)
	stranger := createTestUser(t, testDB, "Stranger")

	transfer := &model.PlateTransfer{PlatesID: plate.ID, UserID: recipient.ID, StoreID: sender.ID}
	require.NoError(t, repo.Create(transfer))

	assert.ErrorIs(t, repo.Accept(transfer.ID, stranger.ID), gorm.ErrRecordNotFound)
}

func TestTransferRepository_Listings(t *testing.T) {
	_, repo, sender, recipient, plate := setupTransferTest(t)

	transfer := &model.PlateTransfer{PlatesID: plate.ID, UserID: recipient.ID, StoreID: sender.ID}
	require.NoError(t, repo.Create(transfer))

	incoming, err := repo.FindIncoming(recipient.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, transfer.ID, incoming[0].ID)

	outgoing, err := repo.FindOutgoing(sender.ID)
	require.NoError(t, err)
	assert.Len(t, outgoing, 1)

	incoming, err = repo.FindIncoming(sender.ID)
	require.NoError(t, err)
	assert.Empty(t, incoming)

	outgoing, err = repo.FindOutgoing(recipient.ID)
	require.NoError(t, err)
	assert.Empty(t, outgoing)
}

func TestTransferRepository_Delete(t *testing.T) {
	_, repo, sender, recipient, plate := setupTransferTest(t)

	transfer := &model.PlateTransfer{PlatesID: plate.ID, UserID: recipient.ID, StoreID: sender.ID}
	require.NoError(t, repo.Create(transfer))

	// Only the sending store may retract.
	assert.ErrorIs(t, repo.Delete(transfer.ID, recipient.ID), gorm.ErrRecordNotFound)
	require.NoError(t, repo.Delete(transfer.ID, sender.ID))

	_, err := repo.FindByID(transfer.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTransferRepository_Delete_AfterAccept(t *testing.T) {
	_, repo, sender, recipient, plate := setupTransferTest(t)

	transfer := &model.PlateTransfer{PlatesID: plate.ID, UserID: recipient.ID, StoreID: sender.ID}
	require.NoError(t, repo.Create(transfer))
	require.NoError(t, repo.Accept(transfer.ID, recipient.ID))

	// A received transfer is part of the ownership record.
	assert.ErrorIs(t, repo.Delete(transfer.ID, sender.ID), gorm.ErrRecordNotFound)
}
