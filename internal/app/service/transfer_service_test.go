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

func setupTransferServiceTest(t *testing.T) (*gorm.DB, TransferService, *model.User, *model.User, *model.Plate) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	sender := createServiceTestUser(t, testDB, "Sender Store")
	recipient := createServiceTestUser(t, testDB, "Recipient Store")

	plateRepo := repository.NewPlateRepository(testDB)
	plateSvc := NewPlateService(plateRepo)
	plate, err := plateSvc.Create(sender.ID, validInput(111))
	require.NoError(t, err)

	svc := NewTransferService(repository.NewTransferRepository(testDB), plateRepo)
	return testDB, svc, sender, recipient, plate
}

func TestTransferService_OfferValidation(t *testing.T) {
	testDB, svc, sender, recipient, plate := setupTransferServiceTest(t)

	_, err := svc.Offer(sender.ID, 9999, recipient.ID)
	assert.ErrorIs(t, err, ErrPlateNotFound)

	_, err = svc.Offer(recipient.ID, plate.ID, sender.ID)
	assert.ErrorIs(t, err, ErrPlateNotOwned)

	_, err = svc.Offer(sender.ID, plate.ID, sender.ID)
	assert.ErrorIs(t, err, ErrTransferSelf)

	transfer, err := svc.Offer(sender.ID, plate.ID, recipient.ID)
	require.NoError(t, err)
	assert.NotZero(t, transfer.ID)
	assert.False(t, transfer.Received)

	incoming, err := svc.GetIncoming(recipient.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, plate.ID, incoming[0].PlatesID)

	_ = testDB
}

func TestTransferService_AcceptHandsOverListing(t *testing.T) {
	testDB, svc, _, recipient, plate := setupTransferServiceTest(t)

	transfer, err := svc.Offer(plate.UserID, plate.ID, recipient.ID)
	require.NoError(t, err)

	received, err := svc.Accept(transfer.ID, recipient.ID)
	require.NoError(t, err)
	assert.True(t, received.Received)
	require.NotNil(t, received.ReceivedAt)

	_, err = svc.Accept(transfer.ID, recipient.ID)
	assert.ErrorIs(t, err, ErrTransferAlreadyReceived)

	var moved model.Plate
	require.NoError(t, testDB.First(&moved, plate.ID).Error)
	assert.Equal(t, recipient.ID, moved.UserID)
	assert.False(t, moved.IsSelling)
	assert.False(t, moved.IsPin)
}

func TestTransferService_AcceptWrongRecipient(t *testing.T) {
	testDB, svc, sender, recipient, plate := setupTransferServiceTest(t)
	stranger := createServiceTestUser(t, testDB, "Stranger")

	transfer, err := svc.Offer(sender.ID, plate.ID, recipient.ID)
	require.NoError(t, err)

	_, err = svc.Accept(transfer.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrTransferNotFound)
}

func TestTransferService_Retract(t *testing.T) {
	_, svc, sender, recipient, plate := setupTransferServiceTest(t)

	transfer, err := svc.Offer(sender.ID, plate.ID, recipient.ID)
	require.NoError(t, err)

	// Only the offering store may retract.
	assert.ErrorIs(t, svc.Retract(transfer.ID, recipient.ID), ErrTransferNotFound)
	require.NoError(t, svc.Retract(transfer.ID, sender.ID))

	outgoing, err := svc.GetOutgoing(sender.ID)
	require.NoError(t, err)
	assert.Empty(t, outgoing)
}
