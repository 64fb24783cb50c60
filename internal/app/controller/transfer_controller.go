package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/app789plates/plates-backend/internal/app/service"
	apperrors "github.com/app789plates/plates-backend/internal/errors"
	"github.com/app789plates/plates-backend/internal/middleware"
)

type TransferController struct {
	transferService service.TransferService
}

func NewTransferController(transferService service.TransferService) *TransferController {
	return &TransferController{
		transferService: transferService,
	}
}

type OfferTransferRequest struct {
	PlatesID    uint `json:"plates_id" binding:"required"`
	RecipientID uint `json:"recipient_id" binding:"required"`
}

// OfferTransfer offers one of the caller's listings to another user
// POST /api/v1/transfers
func (ctrl *TransferController) OfferTransfer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req OfferTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	transfer, err := ctrl.transferService.Offer(userID, req.PlatesID, req.RecipientID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlateNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Plate not found",
			})
		case errors.Is(err, service.ErrPlateNotOwned):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Plate does not belong to user",
			})
		case errors.Is(err, service.ErrTransferSelf):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cannot transfer plate to its owner",
			})
		default:
			log.Error("Failed to offer transfer", err, map[string]interface{}{
				"user_id":   userID,
				"plates_id": req.PlatesID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "offer transfer")
		}
		return
	}

	log.Info("Transfer offered", map[string]interface{}{
		"transfer_id": transfer.ID,
		"user_id":     userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"transfer": transfer,
	})
}

// GetTransfers lists the caller's incoming and outgoing transfers
// GET /api/v1/transfers
func (ctrl *TransferController) GetTransfers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	incoming, err := ctrl.transferService.GetIncoming(userID)
	if err != nil {
		log.Error("Failed to fetch transfers", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch transfers",
		})
		return
	}
	outgoing, err := ctrl.transferService.GetOutgoing(userID)
	if err != nil {
		log.Error("Failed to fetch transfers", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch transfers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"incoming": incoming,
		"outgoing": outgoing,
	})
}

func transferIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transfer ID",
		})
		return 0, false
	}
	return uint(id), true
}

// AcceptTransfer accepts an incoming transfer and takes ownership
// PUT /api/v1/transfers/:id/accept
func (ctrl *TransferController) AcceptTransfer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	transferID, ok := transferIDParam(c)
	if !ok {
		return
	}

	transfer, err := ctrl.transferService.Accept(transferID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTransferNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transfer not found",
			})
		case errors.Is(err, service.ErrTransferAlreadyReceived):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Transfer already received",
			})
		default:
			log.Error("Failed to accept transfer", err, map[string]interface{}{
				"transfer_id": transferID,
				"user_id":     userID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to accept transfer",
			})
		}
		return
	}

	log.Info("Transfer accepted", map[string]interface{}{
		"transfer_id": transferID,
		"user_id":     userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Transfer accepted",
		"transfer": transfer,
	})
}

// RetractTransfer withdraws a pending outgoing transfer
// DELETE /api/v1/transfers/:id
func (ctrl *TransferController) RetractTransfer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	transferID, ok := transferIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.transferService.Retract(transferID, userID); err != nil {
		if errors.Is(err, service.ErrTransferNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transfer not found",
			})
			return
		}
		log.Error("Failed to retract transfer", err, map[string]interface{}{
			"transfer_id": transferID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retract transfer",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Transfer retracted",
	})
}
