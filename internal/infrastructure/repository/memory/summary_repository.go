package memory

import (
	"context"
	"sync"
	"time"

	"github.com/greenpitch/dotball-tracker/internal/domain/summary"
)

type SummaryRepository struct {
	mu     sync.RWMutex
	byTeam map[string]summary.TreePlanting
}

func NewSummaryRepository() *SummaryRepository {
	return &SummaryRepository{byTeam: make(map[string]summary.TreePlanting)}
}

func (r *SummaryRepository) AddTrees(_ context.Context, teamID string, trees int, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := r.byTeam[teamID]
	item.TeamID = teamID
	item.TotalTreesPlanted += trees
	item.LastUpdated = updatedAt
	r.byTeam[teamID] = item
	return nil
}

func (r *SummaryRepository) GetByTeam(_ context.Context, teamID string) (summary.TreePlanting, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byTeam[teamID]
	return item, ok, nil
}
