package ports

import (
	"context"
	"room-matching-service/internal/domain"
)

// Cache of solve results keyed by a fingerprint of (matrix, direction, strategy).
type ResultCache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, key string) (domain.Result, bool, error)
	Set(ctx context.Context, key string, r domain.Result) error
}
