package handlers

import (
	"net/http"

	"train-task-tracker/internal/roster"

	"github.com/gin-gonic/gin"
)

// GetRoster handles GET /api/roster
// Optional query param: initial, to look up one operator's team.
func GetRoster(c *gin.Context) {
	if initial := c.Query("initial"); initial != "" {
		c.JSON(http.StatusOK, gin.H{"initial": initial, "team": roster.TeamOf(initial)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": roster.Groups()})
}
