package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/domain/models"
)

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GET /api/admin/stats
func (h *Handler) AdminStats(c *gin.Context) {
	s, err := h.Stats.Summary(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// GET /api/admin/bookings
func (h *Handler) AdminBookings(c *gin.Context) {
	list, err := h.Bookings.ListAll(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/admin/bookings/export
func (h *Handler) AdminExportBookings(c *gin.Context) {
	data, filename, err := h.Export.BookingsXLSX(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendFile(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, data)
}

// PUT /api/admin/bookings/:id/status
func (h *Handler) AdminSetBookingStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	b, err := h.Bookings.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /api/admin/hotels
func (h *Handler) AdminCreateHotel(c *gin.Context) {
	var req models.HotelInput
	if !BindJSONOrError(c, &req) {
		return
	}
	hotel, err := h.Hotels.Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hotel)
}

// DELETE /api/admin/hotels/:id
func (h *Handler) AdminDeleteHotel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Hotels.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hotel deleted successfully"})
}

// POST /api/admin/rooms
func (h *Handler) AdminCreateRoom(c *gin.Context) {
	var req models.RoomInput
	if !BindJSONOrError(c, &req) {
		return
	}
	room, err := h.Rooms.Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}
