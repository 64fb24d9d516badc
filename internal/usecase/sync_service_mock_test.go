package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greenpitch/dotball-tracker/internal/domain/match"
	"github.com/greenpitch/dotball-tracker/internal/infrastructure/repository/memory"
)

type matchRepoMock struct {
	mock.Mock
}

func (m *matchRepoMock) Upsert(ctx context.Context, item match.Match) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *matchRepoMock) CountByDate(ctx context.Context, date string) (int, error) {
	args := m.Called(ctx, date)
	return args.Int(0), args.Error(1)
}

func (m *matchRepoMock) ExistsByIDAndDate(ctx context.Context, matchID, date string) (bool, error) {
	args := m.Called(ctx, matchID, date)
	return args.Bool(0), args.Error(1)
}

func TestRunDailySync_DedupCheckErrorProcessesAnyway(t *testing.T) {
	t.Parallel()

	repo := &matchRepoMock{}
	repo.On("CountByDate", mock.Anything, mock.AnythingOfType("string")).
		Return(0, fmt.Errorf("connection reset")).
		Once()
	repo.On("ExistsByIDAndDate", mock.Anything, "1832", mock.AnythingOfType("string")).
		Return(false, fmt.Errorf("connection reset")).
		Once()
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("match.Match")).
		Return(nil).
		Once()

	ingestion := NewIngestionService(
		repo,
		memory.NewTeamRepository(),
		memory.NewPlayerRepository(),
		memory.NewSummaryRepository(),
		nil,
		nil,
	)
	svc := NewSyncService(
		feedWithDots(map[string]string{"1832": "5"}),
		NewAggregationService(nil),
		ingestion,
		repo,
		[]string{"https://www.iplt20.com/match/2026/1832"},
		nil,
	)

	result, err := svc.RunDailySync(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Processed)
	require.Equal(t, 0, result.Skipped)
	repo.AssertExpectations(t)
}
