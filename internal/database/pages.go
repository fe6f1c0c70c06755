package database

import (
	"context"
	"fmt"

	"train-task-tracker/internal/models"

	"gorm.io/gorm"
)

// PageReader serves cars and completions in offset/limit pages ordered by
// primary key, the shape the dashboard fetcher consumes.
type PageReader struct {
	DB *gorm.DB
}

// CarsPage returns up to limit cars starting at offset, with unit and type joined.
func (r PageReader) CarsPage(ctx context.Context, offset, limit int) ([]models.Car, error) {
	var cars []models.Car
	err := r.DB.WithContext(ctx).
		Preload("TrainUnit").
		Preload("CarType").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&cars).Error
	if err != nil {
		return nil, fmt.Errorf("database: cars page at %d: %w", offset, err)
	}
	return cars, nil
}

// CompletionsPage returns up to limit completions starting at offset, with team joined.
func (r PageReader) CompletionsPage(ctx context.Context, offset, limit int) ([]models.TaskCompletion, error) {
	var completions []models.TaskCompletion
	err := r.DB.WithContext(ctx).
		Preload("Team").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&completions).Error
	if err != nil {
		return nil, fmt.Errorf("database: completions page at %d: %w", offset, err)
	}
	return completions, nil
}

// CountCars returns the number of cars.
func (r PageReader) CountCars(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Car{}).Count(&n).Error
	return n, err
}

// CountCompletions returns the number of task completions.
func (r PageReader) CountCompletions(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.TaskCompletion{}).Count(&n).Error
	return n, err
}
