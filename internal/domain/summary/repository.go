package summary

import (
	"context"
	"time"
)

// Repository describes summary persistence needs from use cases.
type Repository interface {
	// AddTrees increments the team's running total, creating the row on
	// first write. The increment is applied on every call.
	AddTrees(ctx context.Context, teamID string, trees int, updatedAt time.Time) error
	GetByTeam(ctx context.Context, teamID string) (TreePlanting, bool, error)
}
