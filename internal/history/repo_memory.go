package history

import (
	"context"
	"sync"
)

// MemoryRepo is the in-memory fallback used when no database is configured.
type MemoryRepo struct {
	mu       sync.RWMutex
	requests []SlotRequest
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, req SlotRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return nil
}

func (r *MemoryRepo) ListRecent(ctx context.Context, limit int) ([]SlotRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit < 0 {
		limit = 0
	}
	if limit > len(r.requests) {
		limit = len(r.requests)
	}
	out := make([]SlotRequest, 0, limit)
	for i := len(r.requests) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.requests[i])
	}
	return out, nil
}
