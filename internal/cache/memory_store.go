package cache

import "context"

// MemoryStore is a Store over a goroutine-safe SimpleCache. Entries never
// expire and are lost when the process exits. Values are copied on the way
// in and out so callers cannot alias the stored payload.
type MemoryStore struct {
	items *SimpleCache[string, []byte]
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: NewSimpleCache[string, []byte](Options{ConcurrencySafe: true})}
}

// Get implements Store.Get.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.items.Get(key)
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

// Put implements Store.Put.
func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.items.Set(key, clone(value), 0)
	return nil
}

// Delete implements Store.Delete.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.items.Delete(key)
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	return s.items.Len()
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

var _ Store = (*MemoryStore)(nil)
