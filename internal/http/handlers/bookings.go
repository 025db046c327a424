package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/services"
)

// GET /api/rooms/:id/availability?check_in=&check_out=
func (h *Handler) RoomAvailability(c *gin.Context) {
	roomID, ok := pathID(c, "id")
	if !ok {
		return
	}
	stay, err := services.ParseStay(c.Query("check_in"), c.Query("check_out"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	res, err := h.Bookings.CheckAvailability(c.Request.Context(), roomID, stay)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingInput
	if !BindJSONOrError(c, &req) {
		return
	}
	b, err := h.Bookings.Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /api/bookings/user/:email
func (h *Handler) UserBookings(c *gin.Context) {
	list, err := h.Bookings.ListByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DELETE /api/bookings/:id
func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.Bookings.Cancel(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "booking": b})
}

// GET /api/bookings/:id/invoice
func (h *Handler) BookingInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := h.Docs.GenerateInvoice(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendFile(c, "application/pdf", filename, pdf)
}
