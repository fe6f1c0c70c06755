package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CompletionStatus represents the status of a task completion
type CompletionStatus string

const (
	StatusPending    CompletionStatus = "pending"
	StatusInProgress CompletionStatus = "in_progress"
	StatusCompleted  CompletionStatus = "completed"
)

// statusAliases maps raw values seen in imported worksheets onto the closed set.
var statusAliases = map[string]CompletionStatus{
	"not_started": StatusPending,
}

// ParseStatus validates a raw status string. The second return value is false
// when the raw value is outside the closed set.
func ParseStatus(raw string) (CompletionStatus, bool) {
	s := CompletionStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return s, true
	}
	if alias, ok := statusAliases[string(s)]; ok {
		return alias, true
	}
	return StatusPending, false
}

// Valid reports whether s is one of the three known statuses.
func (s CompletionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// TaskCompletion is the status of one task for one car
type TaskCompletion struct {
	ID           string                      `json:"id" gorm:"primaryKey"`
	CarID        *string                     `json:"car_id" gorm:"column:car_id;index"`
	TaskName     string                      `json:"task_name" gorm:"column:task_name;not null"`
	Status       CompletionStatus            `json:"status" gorm:"not null;default:'pending';index"`
	TotalMinutes float64                     `json:"total_minutes" gorm:"column:total_minutes;default:0"`
	CompletedBy  datatypes.JSONSlice[string] `json:"completed_by" gorm:"column:completed_by"`
	CompletedAt  *string                     `json:"completed_at" gorm:"column:completed_at"`
	TeamID       *string                     `json:"team_id" gorm:"column:team_id;index"`
	Team         *Team                       `json:"teams,omitempty" gorm:"foreignKey:TeamID"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// TableName specifies the table name for TaskCompletion Model
func (TaskCompletion) TableName() string {
	return "task_completions"
}

// BeforeCreate assigns a UUID when the caller did not supply an id
func (c *TaskCompletion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Team is a shift team that completions are attributed to
type Team struct {
	ID    string `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"not null;uniqueIndex"`
	Color string `json:"color" gorm:"default:'#3B82F6'"`
}

// TableName specifies the table name for Team Model
func (Team) TableName() string {
	return "teams"
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
