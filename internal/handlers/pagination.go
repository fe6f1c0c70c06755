package handlers

import (
	"errors"
	"strconv"

	"train-task-tracker/internal/config"

	"github.com/gin-gonic/gin"
)

// parsePage reads offset and limit. limit defaults to and is capped at the
// upstream row cap.
func parsePage(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, errors.New("offset must be a non-negative integer")
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(config.MaxPageSize)))
	if err != nil || limit < 1 {
		return 0, 0, errors.New("limit must be a positive integer")
	}
	if limit > config.MaxPageSize {
		limit = config.MaxPageSize
	}
	return offset, limit, nil
}
