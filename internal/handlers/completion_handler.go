package handlers

import (
	"errors"
	"net/http"
	"time"

	"train-task-tracker/internal/database"
	"train-task-tracker/internal/middleware"
	"train-task-tracker/internal/models"
	"train-task-tracker/internal/normalize"
	"train-task-tracker/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// now is stubbed in tests.
var now = time.Now

// UpdateCompletionStatusRequest changes a completion's status. CompletedAt is
// only accepted with status "completed"; when omitted there it is stamped now.
type UpdateCompletionStatusRequest struct {
	Status      string   `json:"status" binding:"required"`
	CompletedAt *string  `json:"completed_at"`
	CompletedBy []string `json:"completed_by"`
}

// ListCompletions handles GET /api/completions?offset=&limit=
func ListCompletions(c *gin.Context) {
	offset, limit, err := parsePage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reader := database.PageReader{DB: database.GetDB()}
	ctx := c.Request.Context()

	completions, err := reader.CompletionsPage(ctx, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch completions"})
		return
	}
	total, err := reader.CountCompletions(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count completions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"completions": completions,
		"count":       len(completions),
		"total":       total,
		"offset":      offset,
		"limit":       limit,
	})
}

// GetCompletionByID handles GET /api/completions/:id
func GetCompletionByID(c *gin.Context) {
	completion, ok := findCompletion(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, completion)
}

// UpdateCompletionStatus handles PATCH /api/completions/:id/status
// A completed row always carries a completion time and no other row does.
func UpdateCompletionStatus(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	var req UpdateCompletionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, ok := models.ParseStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var completedAt *string
	if status == models.StatusCompleted {
		stamp := now().UTC().Format(time.RFC3339)
		if req.CompletedAt != nil {
			if _, ok := normalize.CompletionDate(*req.CompletedAt); !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "completed_at must be an ISO-8601 timestamp"})
				return
			}
			stamp = *req.CompletedAt
		}
		completedAt = &stamp
	} else if req.CompletedAt != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "completed_at is only allowed when status is completed"})
		return
	}

	completion, found := findCompletion(c, c.Param("id"))
	if !found {
		return
	}

	updates := map[string]any{
		"status":       status,
		"completed_at": completedAt,
	}
	if req.CompletedBy != nil {
		updates["completed_by"] = datatypes.JSONSlice[string](normalize.Operators(req.CompletedBy))
	}
	if err := database.GetDB().Model(&completion).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update completion"})
		return
	}

	updated, found := findCompletion(c, completion.ID)
	if !found {
		return
	}

	realtime.GetHub().Publish(realtime.Event{
		Type:         realtime.EventCompletionUpdated,
		CompletionID: updated.ID,
		UserID:       userID,
	})

	c.JSON(http.StatusOK, updated)
}

// findCompletion loads a completion with its team, answering 404/500 itself.
func findCompletion(c *gin.Context, id string) (models.TaskCompletion, bool) {
	var completion models.TaskCompletion
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Completion ID is required"})
		return completion, false
	}
	err := database.GetDB().WithContext(c.Request.Context()).
		Preload("Team").
		Where(&models.TaskCompletion{ID: id}).
		First(&completion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Completion not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch completion"})
		}
		return completion, false
	}
	return completion, true
}
