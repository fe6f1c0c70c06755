package handlers

import (
	"net/http"

	"train-task-tracker/internal/database"

	"github.com/gin-gonic/gin"
)

// ListCars handles GET /api/cars?offset=&limit=
// Cars come with their train unit and car type joined, ordered by id.
func ListCars(c *gin.Context) {
	offset, limit, err := parsePage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reader := database.PageReader{DB: database.GetDB()}
	ctx := c.Request.Context()

	cars, err := reader.CarsPage(ctx, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cars"})
		return
	}
	total, err := reader.CountCars(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count cars"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cars":   cars,
		"count":  len(cars),
		"total":  total,
		"offset": offset,
		"limit":  limit,
	})
}
