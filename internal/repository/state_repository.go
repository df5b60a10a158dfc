package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/suvrat007/tutora-sub001/internal/models"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
)

const defaultStateTTL = 12 * time.Hour

// StateRepository keeps one ConsoleState per session in Redis.
type StateRepository struct {
	cache *CacheRepository
	ttl   time.Duration
}

// NewStateRepository constructs a state repository.
func NewStateRepository(cache *CacheRepository, ttl time.Duration) *StateRepository {
	if ttl <= 0 {
		ttl = defaultStateTTL
	}
	return &StateRepository{cache: cache, ttl: ttl}
}

func stateKey(session string) string {
	return fmt.Sprintf("console:%s:state", session)
}

// Load returns the stored state, or a fresh one when the session has none.
func (r *StateRepository) Load(ctx context.Context, session string) (models.ConsoleState, error) {
	st := models.NewConsoleState()
	if err := r.cache.Get(ctx, stateKey(session), &st); err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return models.NewConsoleState(), nil
		}
		return models.ConsoleState{}, err
	}
	if st.PresentIDs == nil {
		st.PresentIDs = models.PresentSet{}
	}
	return st, nil
}

// Save stores state and renews its TTL.
func (r *StateRepository) Save(ctx context.Context, session string, state models.ConsoleState) error {
	return r.cache.Set(ctx, stateKey(session), state, r.ttl)
}

// Delete forgets the session's state.
func (r *StateRepository) Delete(ctx context.Context, session string) error {
	return r.cache.Delete(ctx, stateKey(session))
}
