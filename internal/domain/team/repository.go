package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	// Ensure inserts the team if it does not exist; an existing row keeps
	// its display name.
	Ensure(ctx context.Context, item Team) error
	UpsertMatchPerformance(ctx context.Context, item MatchPerformance) error
}
