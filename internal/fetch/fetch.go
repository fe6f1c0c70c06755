// Package fetch loads the full dashboard dataset through a paginated source.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"train-task-tracker/internal/models"
)

// ErrPartial wraps fetch errors when some rows were still read.
var ErrPartial = errors.New("fetch: partial dataset")

// DefaultPageSize matches the upstream row cap per request.
const DefaultPageSize = 1000

// PageSource serves rows in offset/limit pages.
type PageSource interface {
	CarsPage(ctx context.Context, offset, limit int) ([]models.Car, error)
	CompletionsPage(ctx context.Context, offset, limit int) ([]models.TaskCompletion, error)
}

// Fetcher reads every page of cars and completions, one request at a time.
type Fetcher struct {
	Source   PageSource
	PageSize int
}

// FetchAll reads both tables. When a page fails, the rows read so far are
// kept: the returned dataset is usable, marked Partial, and the error wraps
// ErrPartial.
func (f *Fetcher) FetchAll(ctx context.Context) (models.Dataset, error) {
	size := f.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	started := time.Now()
	cars, carsErr := readAll(ctx, "cars", size, f.Source.CarsPage)
	completions, completionsErr := readAll(ctx, "task_completions", size, f.Source.CompletionsPage)

	ds := models.Dataset{
		Cars:        cars,
		Completions: completions,
		Timestamp:   time.Now().UTC(),
	}
	log.Printf("fetch: %d cars, %d completions in %s", len(cars), len(completions), time.Since(started).Round(time.Millisecond))

	if err := errors.Join(carsErr, completionsErr); err != nil {
		ds.Partial = true
		return ds, fmt.Errorf("%w: %w", ErrPartial, err)
	}
	return ds, nil
}

// readAll requests pages sequentially until a short page. Each request waits
// for the previous one; the upstream caps rows per request.
func readAll[T any](ctx context.Context, table string, size int, page func(context.Context, int, int) ([]T, error)) ([]T, error) {
	rows := make([]T, 0, size)
	for offset := 0; ; offset += size {
		if err := ctx.Err(); err != nil {
			log.Printf("fetch: %s aborted at offset %d, keeping %d rows: %v", table, offset, len(rows), err)
			return rows, err
		}
		batch, err := page(ctx, offset, size)
		if err != nil {
			log.Printf("fetch: %s page at offset %d failed, keeping %d rows: %v", table, offset, len(rows), err)
			return rows, err
		}
		rows = append(rows, batch...)
		if len(batch) < size {
			return rows, nil
		}
	}
}
