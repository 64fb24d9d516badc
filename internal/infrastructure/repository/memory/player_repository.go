package memory

import (
	"context"
	"sync"

	"github.com/greenpitch/dotball-tracker/internal/domain/player"
)

type PlayerRepository struct {
	mu           sync.RWMutex
	players      map[string]player.Player
	performances map[string]player.MatchPerformance
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		players:      make(map[string]player.Player),
		performances: make(map[string]player.MatchPerformance),
	}
}

func (r *PlayerRepository) Ensure(_ context.Context, item player.Player) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[item.ID]; ok {
		return nil
	}
	r.players[item.ID] = item
	return nil
}

func (r *PlayerRepository) UpsertMatchPerformance(_ context.Context, item player.MatchPerformance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.performances[item.MatchID+"|"+item.PlayerID] = item
	return nil
}

// Get is a test-inspection helper outside the repository contract.
func (r *PlayerRepository) Get(playerID string) (player.Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.players[playerID]
	return item, ok
}

// Performance is a test-inspection helper outside the repository contract.
func (r *PlayerRepository) Performance(matchID, playerID string) (player.MatchPerformance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.performances[matchID+"|"+playerID]
	return item, ok
}
