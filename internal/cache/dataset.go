package cache

import (
	"context"
	"encoding/json"
	"log"

	"train-task-tracker/internal/models"
)

// DefaultDatasetKey is the fixed key the dashboard dataset is stored under.
const DefaultDatasetKey = "train-tracker-dataset"

// DatasetCache persists the last fetched dataset. Any read problem is
// reported as a miss so callers fall back to a network fetch.
type DatasetCache struct {
	store Store
	key   string
}

// NewDatasetCache wraps store. An empty key selects DefaultDatasetKey.
func NewDatasetCache(store Store, key string) *DatasetCache {
	if key == "" {
		key = DefaultDatasetKey
	}
	return &DatasetCache{store: store, key: key}
}

// Load returns the cached dataset, or false on a miss.
func (c *DatasetCache) Load(ctx context.Context) (*models.Dataset, bool) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		log.Printf("cache: load failed, treating as miss: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var ds models.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil || ds.Timestamp.IsZero() {
		log.Printf("cache: discarding unreadable entry %q: %v", c.key, err)
		if derr := c.store.Delete(ctx, c.key); derr != nil {
			log.Printf("cache: delete unreadable entry: %v", derr)
		}
		return nil, false
	}
	return &ds, true
}

// Save replaces the cached dataset with cars and completions, stamped now.
// The returned dataset carries the timestamp that was written.
func (c *DatasetCache) Save(ctx context.Context, cars []models.Car, completions []models.TaskCompletion) (*models.Dataset, error) {
	ds := &models.Dataset{
		Cars:        cars,
		Completions: completions,
		Timestamp:   now().UTC(),
	}
	payload, err := json.Marshal(ds)
	if err != nil {
		return nil, err
	}
	if err := c.store.Put(ctx, c.key, payload); err != nil {
		return nil, err
	}
	return ds, nil
}

// Clear removes the cached dataset.
func (c *DatasetCache) Clear(ctx context.Context) error {
	return c.store.Delete(ctx, c.key)
}
