package booking

import (
	"fmt"
	"net/http"
	"strconv"

	"faresearch/internal/flight"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/v1/fares/review", h.ReviewFareHandler)
	router.POST("/v1/bookings", h.CreateBookingHandler)
	router.GET("/v1/bookings/:id", h.GetBookingHandler)
}

// ReviewFareHandler godoc
// @Summary      Review a fare before booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body ReviewRequest true "Fare to review"
// @Success      200 {object} Review
// @Failure      400 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Router       /v1/fares/review [post]
func (h *Handler) ReviewFareHandler(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	review, err := h.service.ReviewFare(c.Request.Context(), req)
	if err != nil {
		flight.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// CreateBookingHandler godoc
// @Summary      Book a reviewed fare
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body BookingRequest true "Booking"
// @Success      201 {object} Booking
// @Failure      400 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Router       /v1/bookings [post]
func (h *Handler) CreateBookingHandler(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booking, err := h.service.Book(c.Request.Context(), req)
	if err != nil {
		flight.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBookingHandler godoc
// @Summary      Fetch a booking
// @Tags         bookings
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200 {object} Booking
// @Failure      404 {object} map[string]string
// @Router       /v1/bookings/{id} [get]
func (h *Handler) GetBookingHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, fmt.Errorf("invalid booking id %q", c.Param("id")))
		return
	}

	booking, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		flight.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": fmt.Sprintf("Invalid request format: %v", err),
		"code":  flight.ErrorCodeValidation,
	})
}
