package history

import "context"

// Repo stores served slot requests.
type Repo interface {
	Create(ctx context.Context, req SlotRequest) error
	ListRecent(ctx context.Context, limit int) ([]SlotRequest, error)
}
