package ports

import (
	"context"

	"github.com/aretw0/mystem/pkg/domain"
)

// Analyzer is the primary interface used by transport adapters (HTTP, MCP).
type Analyzer interface {
	// Stemming sanitizes text, sends it to the worker and returns one result
	// per token, in the order the worker reported them.
	Stemming(ctx context.Context, text string) ([]domain.TokenResult, error)
}
