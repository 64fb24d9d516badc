package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	// Ensure inserts the player if it does not exist.
	Ensure(ctx context.Context, item Player) error
	UpsertMatchPerformance(ctx context.Context, item MatchPerformance) error
}
