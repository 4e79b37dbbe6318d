package handlers

import (
	"net/http"
	"strconv"

	"github.com/chachabrian/covoit-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// CreateTrip publishes a trip driven by the caller.
func CreateTrip(trips Trips) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Origin        string `json:"origin" binding:"required"`
			Destination   string `json:"destination" binding:"required"`
			Stopover      string `json:"stopover"`
			DepartureDate string `json:"departureDate" binding:"required"`
			DepartureTime string `json:"departureTime" binding:"required"`
			VehicleType   string `json:"vehicleType"`
			PricePerSeat  int64  `json:"pricePerSeat"`
			TotalSeats    int    `json:"totalSeats" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		trip, err := trips.Publish(c.Request.Context(), userId, services.TripInput{
			Origin:        input.Origin,
			Destination:   input.Destination,
			Stopover:      input.Stopover,
			DepartureDate: input.DepartureDate,
			DepartureTime: input.DepartureTime,
			VehicleType:   input.VehicleType,
			PricePerSeat:  input.PricePerSeat,
			TotalSeats:    input.TotalSeats,
		})
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, trip)
	}
}

// ListTrips returns trips that still have free seats.
func ListTrips(trips Trips) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		list, err := trips.Available(c.Request.Context(), limit)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func GetMyTrips(trips Trips) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := trips.ByDriver(c.Request.Context(), c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func GetTrip(trips Trips) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		trip, err := trips.Get(c.Request.Context(), id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, trip)
	}
}
