package ports

import (
	"context"
	"room-matching-service/internal/domain"
)

// Contract for reading a complete score matrix from an external source.
type MatrixLoader interface {
	Load(ctx context.Context, source string) (*domain.ScoreMatrix, error)
}
