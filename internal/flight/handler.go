package flight

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service *Service
}

func NewFlightHandler(s *Service) *FlightHandler {
	return &FlightHandler{
		service: s,
	}
}

func (h *FlightHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/v1/flights/search", h.SearchFlightsHandler)
	router.POST("/v1/flights/filter", h.FilterFlightsHandler)
	router.DELETE("/v1/flights/search", h.InvalidateCacheHandler)
}

// SearchFlightsHandler godoc
// @Summary      Search flights
// @Description  Fan out to every supplier and return normalized results
// @Tags         flights
// @Accept       json
// @Produce      json
// @Param        request body SearchRequest true "Search Criteria"
// @Success      200 {object} FlightSearchResponse
// @Failure      400 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Router       /v1/flights/search [post]
func (h *FlightHandler) SearchFlightsHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid request format: %v", err),
			"code":  ErrorCodeValidation,
		})
		return
	}

	response, err := h.service.SearchFlights(c.Request.Context(), req)
	if err != nil {
		SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// FilterFlightsHandler godoc
// @Summary      Filter existing flight results
// @Description  Apply filters, sort and page window over the stored search
// @Tags         flights
// @Accept       json
// @Produce      json
// @Param        request body FilterRequest true "Filter Criteria"
// @Success      200 {object} FilterResponse
// @Failure      400 {object} map[string]string
// @Router       /v1/flights/filter [post]
func (h *FlightHandler) FilterFlightsHandler(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid request format: %v", err),
			"code":  ErrorCodeValidation,
		})
		return
	}

	response, err := h.service.FilterFlights(c.Request.Context(), req)
	if err != nil {
		SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// InvalidateCacheHandler godoc
// @Summary      Drop stored results for a search
// @Tags         flights
// @Accept       json
// @Param        request body SearchRequest true "Search Criteria"
// @Success      204
// @Router       /v1/flights/search [delete]
func (h *FlightHandler) InvalidateCacheHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid request format: %v", err),
			"code":  ErrorCodeValidation,
		})
		return
	}

	if err := h.service.InvalidateCache(c.Request.Context(), req); err != nil {
		SendError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SendError writes err as the standard error body. AppErrors keep their
// status and code; anything else is a 500.
func SendError(c *gin.Context, err error) {
	var appErr *AppError

	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	// Default to 500 for unknown errors
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"code":    ErrorCodeInternalFailure,
		"details": err.Error(),
	})
}
