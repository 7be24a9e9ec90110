package translate

import (
	"context"

	"github.com/lumen-cloud/memodex/internal/domain"
)

// Client calls the external detection and translation endpoints.
type Client interface {
	Detect(ctx context.Context, text string) (domain.Detection, error)
	Translate(ctx context.Context, text, source, target string) (string, error)
}
