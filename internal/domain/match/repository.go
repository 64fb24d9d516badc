package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, item Match) error
	CountByDate(ctx context.Context, date string) (int, error)
	ExistsByIDAndDate(ctx context.Context, matchID, date string) (bool, error)
}
