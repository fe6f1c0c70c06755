// Package dashboard owns the dashboard's dataset: it loads it from the cache
// or the paginated source, guards refreshes, and runs the metrics engine over
// whatever is in memory.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"train-task-tracker/internal/fetch"
	"train-task-tracker/internal/metrics"
	"train-task-tracker/internal/models"
	"train-task-tracker/internal/realtime"

	"golang.org/x/sync/singleflight"
)

// Fetcher loads the full dataset from the source.
type Fetcher interface {
	FetchAll(ctx context.Context) (models.Dataset, error)
}

// Cache persists the last fetched dataset.
type Cache interface {
	Load(ctx context.Context) (*models.Dataset, bool)
	Save(ctx context.Context, cars []models.Car, completions []models.TaskCompletion) (*models.Dataset, error)
	Clear(ctx context.Context) error
}

// Notifier receives refresh events, typically the realtime hub.
type Notifier interface {
	Publish(evt realtime.Event)
}

// Status describes the dataset currently held in memory.
type Status struct {
	Loaded      bool          `json:"loaded"`
	Timestamp   time.Time     `json:"timestamp"`
	Age         time.Duration `json:"age_ns"`
	Cars        int           `json:"cars"`
	Completions int           `json:"completions"`
	Partial     bool          `json:"partial"`
	Refreshing  bool          `json:"refreshing"`
}

// Service is the dashboard state container.
type Service struct {
	fetcher  Fetcher
	cache    Cache
	notifier Notifier
	now      func() time.Time

	current    atomic.Pointer[models.Dataset]
	refreshing atomic.Bool
	group      singleflight.Group
}

// NewService wires a Service. notifier may be nil.
func NewService(fetcher Fetcher, cache Cache, notifier Notifier) *Service {
	return &Service{
		fetcher:  fetcher,
		cache:    cache,
		notifier: notifier,
		now:      time.Now,
	}
}

// Dataset returns the in-memory dataset, loading it from the cache without
// any fetch when possible and refreshing otherwise.
func (s *Service) Dataset(ctx context.Context) (*models.Dataset, error) {
	if ds := s.current.Load(); ds != nil {
		return ds, nil
	}
	if ds, ok := s.cache.Load(ctx); ok {
		s.current.CompareAndSwap(nil, ds)
		log.Printf("dashboard: serving cached dataset from %s", ds.Timestamp.Format(time.RFC3339))
		return s.current.Load(), nil
	}
	return s.Refresh(ctx)
}

// Refresh refetches everything and replaces the cached dataset. Calls that
// overlap an in-flight refresh wait for it and share its result; the shared
// fetch is not cancelled when the caller that started it goes away.
func (s *Service) Refresh(ctx context.Context) (*models.Dataset, error) {
	v, err, shared := s.group.Do("refresh", func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx))
	})
	if shared {
		log.Println("dashboard: joined in-flight refresh")
	}
	if err != nil {
		return nil, err
	}
	return v.(*models.Dataset), nil
}

// ErrRefreshFailed is returned when a refresh produced nothing usable. The
// previous dataset and cache entry are left in place.
var ErrRefreshFailed = errors.New("dashboard: refresh failed")

func (s *Service) refresh(ctx context.Context) (*models.Dataset, error) {
	s.refreshing.Store(true)
	defer s.refreshing.Store(false)

	fetched, err := s.fetcher.FetchAll(ctx)
	if err != nil && unusable(fetched, err) {
		log.Printf("dashboard: refresh failed, keeping previous dataset: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	ds := &fetched
	if fetched.Partial {
		// Partial rows are shown but not persisted; the next start refetches.
		log.Printf("dashboard: serving partial dataset: %v", err)
		if cerr := s.cache.Clear(ctx); cerr != nil {
			log.Printf("dashboard: clear cache: %v", cerr)
		}
	} else if saved, serr := s.cache.Save(ctx, fetched.Cars, fetched.Completions); serr != nil {
		log.Printf("dashboard: save cache: %v", serr)
		if cerr := s.cache.Clear(ctx); cerr != nil {
			log.Printf("dashboard: clear stale cache: %v", cerr)
		}
	} else {
		ds = saved
	}

	s.current.Store(ds)
	if s.notifier != nil {
		s.notifier.Publish(realtime.Event{
			Type:        realtime.EventDatasetRefreshed,
			Cars:        len(ds.Cars),
			Completions: len(ds.Completions),
			Partial:     ds.Partial,
		})
	}
	return ds, nil
}

// unusable reports whether a failed fetch must not replace the current
// dataset. Only a partial read that got some rows and was not cut short by
// its context is usable.
func unusable(ds models.Dataset, err error) bool {
	if !errors.Is(err, fetch.ErrPartial) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return len(ds.Cars) == 0 && len(ds.Completions) == 0
}

// Metrics aggregates the in-memory dataset. Changing the filter never
// triggers a fetch.
func (s *Service) Metrics(ctx context.Context, f metrics.Filter, opts metrics.Options) (metrics.DashboardMetrics, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return metrics.DashboardMetrics{}, err
	}
	if opts.Now == nil {
		opts.Now = s.now
	}
	return metrics.Aggregate(*ds, f, opts), nil
}

// Refreshing reports whether a refresh is in flight.
func (s *Service) Refreshing() bool {
	return s.refreshing.Load()
}

// Status reports on the in-memory dataset without loading it.
func (s *Service) Status() Status {
	st := Status{Refreshing: s.refreshing.Load()}
	ds := s.current.Load()
	if ds == nil {
		return st
	}
	st.Loaded = true
	st.Timestamp = ds.Timestamp
	st.Age = ds.Age(s.now())
	st.Cars = len(ds.Cars)
	st.Completions = len(ds.Completions)
	st.Partial = ds.Partial
	return st
}

// ClearCache drops the durable cache. The in-memory dataset stays until the
// next refresh.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}
