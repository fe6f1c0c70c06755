package handlers

import (
	"net/http"
	"sort"
	"strings"

	"train-task-tracker/internal/database"
	"train-task-tracker/internal/models"
	"train-task-tracker/internal/roster"

	"github.com/gin-gonic/gin"
)

// Operator is a login account paired with the shift team its username
// resolves to on the roster. Usernames are operator initials.
type Operator struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Team     string `json:"team"`
}

// GetOperators lists accounts with their roster team, ordered by team then
// username. ?team= narrows the list to one team, Unknown included.
// GET /api/users
func GetOperators(c *gin.Context) {
	var users []models.User
	if err := database.GetDB().Order("username").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	want := strings.TrimSpace(c.Query("team"))
	ops := make([]Operator, 0, len(users))
	counts := make(map[string]int)
	for _, u := range users {
		team := roster.TeamOf(u.Username)
		if want != "" && !strings.EqualFold(team, want) {
			continue
		}
		ops = append(ops, Operator{ID: u.ID, Username: u.Username, Team: team})
		counts[team]++
	}
	sortOperators(ops)

	c.JSON(http.StatusOK, gin.H{
		"users":   ops,
		"count":   len(ops),
		"by_team": counts,
	})
}

// sortOperators orders by team with Unknown last. Input is already ordered
// by username, so a stable sort keeps that within each team.
func sortOperators(ops []Operator) {
	rank := func(team string) string {
		if team == roster.Unknown {
			return "\xff"
		}
		return team
	}
	sort.SliceStable(ops, func(i, j int) bool { return rank(ops[i].Team) < rank(ops[j].Team) })
}
