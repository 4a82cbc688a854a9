package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/mkovalchuk/airport-api/internal/helpers"
	"github.com/mkovalchuk/airport-api/internal/middleware"
	"github.com/mkovalchuk/airport-api/internal/models"
)

func ticketSignature(ticketID uint, orderID, userID uuid.UUID, secretKey string) string {
	data := fmt.Sprintf("%d:%s:%s", ticketID, orderID.String(), userID.String())
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func boardingPassData(ticket *models.Ticket, order *models.Order) string {
	signature := ticketSignature(ticket.ID, order.ID, order.UserID, os.Getenv("JWT_SECRET"))
	return fmt.Sprintf("ticket:%d;flight:%d;row:%d;seat:%d;signature:%s",
		ticket.ID, ticket.FlightID, ticket.Row, ticket.Seat, signature)
}

// GenerateTicketQR renders a signed boarding-pass QR for one ticket of the
// requesting user's order.
func GenerateTicketQR(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var order models.Order
	if err := gormDB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Order not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving order.")
		return
	}

	var ticket models.Ticket
	if err := gormDB.Where("id = ? AND order_id = ?", c.Param("ticketId"), order.ID).First(&ticket).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ticket.")
		return
	}

	qrImage, err := qrcode.Encode(boardingPassData(&ticket, &order), qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}
