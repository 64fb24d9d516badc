package memory

import (
	"context"
	"sync"

	"github.com/greenpitch/dotball-tracker/internal/domain/match"
)

type MatchRepository struct {
	mu   sync.RWMutex
	byID map[string]match.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{byID: make(map[string]match.Match)}
}

func (r *MatchRepository) Upsert(_ context.Context, item match.Match) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[item.ID] = item
	return nil
}

func (r *MatchRepository) CountByDate(_ context.Context, date string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.byID {
		if item.Date == date {
			count++
		}
	}
	return count, nil
}

func (r *MatchRepository) ExistsByIDAndDate(_ context.Context, matchID, date string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[matchID]
	return ok && item.Date == date, nil
}

// Get is a test-inspection helper outside the repository contract.
func (r *MatchRepository) Get(matchID string) (match.Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[matchID]
	return item, ok
}
