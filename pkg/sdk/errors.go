package memodex

import "github.com/lumen-cloud/memodex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput     = domain.ErrInvalidInput
	ErrStoreUnavailable = domain.ErrStoreUnavailable
	ErrStoreWrite       = domain.ErrStoreWrite
	ErrStoreRead        = domain.ErrStoreRead
	ErrTranslation      = domain.ErrTranslation
)
