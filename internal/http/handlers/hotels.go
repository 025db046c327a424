package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/utils"
)

// GET /api/hotels?location=&minPrice=&maxPrice=
func (h *Handler) SearchHotels(c *gin.Context) {
	f := models.HotelFilter{Location: c.Query("location")}
	var err error
	if f.MinPrice, err = utils.ParseAmount(c.Query("minPrice")); err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "minPrice", Msg: "must be a number", Err: err})
		return
	}
	if f.MaxPrice, err = utils.ParseAmount(c.Query("maxPrice")); err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "maxPrice", Msg: "must be a number", Err: err})
		return
	}
	list, err := h.Hotels.Search(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/hotels/:id
func (h *Handler) GetHotel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	hotel, err := h.Hotels.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}
