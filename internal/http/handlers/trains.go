package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createTrainRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	TotalCapacity int    `json:"totalCapacity"`
}

// POST /trains (admin)
func (h Handlers) CreateTrain(c *gin.Context) {
	var req createTrainRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	train, err := h.Trains.Create(c.Request.Context(), req.Origin, req.Destination, req.TotalCapacity)
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "train added successfully",
		"train":   train,
	})
}

type availabilityEntry struct {
	TrainID        int64  `json:"trainId"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	AvailableSeats int    `json:"availableSeats"`
}

// GET /trains/availability?origin=&destination=
func (h Handlers) Availability(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")

	trains, err := h.Trains.Availability(c.Request.Context(), origin, destination)
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	out := make([]availabilityEntry, 0, len(trains))
	for _, t := range trains {
		out = append(out, availabilityEntry{
			TrainID:        t.ID,
			Origin:         t.Origin,
			Destination:    t.Destination,
			AvailableSeats: t.AvailableSeats,
		})
	}
	c.JSON(http.StatusOK, gin.H{"trains": out})
}
