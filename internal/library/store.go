package library

import (
	"context"
	"time"

	"github.com/julianstephens/homeplan/internal/constants"
	"github.com/julianstephens/homeplan/internal/models"
)

// Querier is the subset of the storage provider the library needs.
type Querier interface {
	QueryLibrary(q models.LibraryQuery) ([]models.LibraryExercise, error)
}

type storeLibrary struct {
	store Querier
}

// FromStore serves exercises imported into the database.
func FromStore(store Querier) Library {
	return storeLibrary{store: store}
}

func (s storeLibrary) Lookup(ctx context.Context, q models.LibraryQuery) ([]models.LibraryExercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.QueryLibrary(q)
}

// New builds the standard lookup chain: the store with retries, falling
// back to the built-in catalog, behind a TTL cache.
func New(store Querier, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = time.Duration(constants.DefaultLibraryCacheTTLMin) * time.Minute
	}
	retrying := NewRetrying(FromStore(store), constants.LibraryRetryAttempts, constants.LibraryRetryDelay, constants.LibraryRetryMaxDelay)
	return NewCached(Fallback{retrying, Builtin()}, ttl)
}
