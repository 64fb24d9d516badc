package memory

import (
	"context"
	"sync"

	"github.com/greenpitch/dotball-tracker/internal/domain/team"
)

type TeamRepository struct {
	mu           sync.RWMutex
	teams        map[string]team.Team
	performances map[string]team.MatchPerformance
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{
		teams:        make(map[string]team.Team),
		performances: make(map[string]team.MatchPerformance),
	}
}

func (r *TeamRepository) Ensure(_ context.Context, item team.Team) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[item.ID]; ok {
		return nil
	}
	r.teams[item.ID] = item
	return nil
}

func (r *TeamRepository) UpsertMatchPerformance(_ context.Context, item team.MatchPerformance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.performances[item.MatchID+"|"+item.TeamID] = item
	return nil
}

// Get is a test-inspection helper outside the repository contract.
func (r *TeamRepository) Get(teamID string) (team.Team, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok
}

// Performance is a test-inspection helper outside the repository contract.
func (r *TeamRepository) Performance(matchID, teamID string) (team.MatchPerformance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.performances[matchID+"|"+teamID]
	return item, ok
}
