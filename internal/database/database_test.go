package database_test

import (
	"context"
	"testing"

	"train-task-tracker/internal/config"
	"train-task-tracker/internal/database"
	"train-task-tracker/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open(config.DatabaseConfig{Driver: "postgres", DSN: "x"})
	require.ErrorContains(t, err, "unsupported driver")
}

func TestPageReader_PagesInPrimaryKeyOrder(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	_, err = testutil.SeedFleet(db)
	require.NoError(t, err)

	r := database.PageReader{DB: db}
	ctx := context.Background()

	first, err := r.CompletionsPage(ctx, 0, 4)
	require.NoError(t, err)
	require.Len(t, first, 4)
	second, err := r.CompletionsPage(ctx, 4, 4)
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.Equal(t, "c-1-1", first[0].ID)
	require.Equal(t, "c-2-3", second[1].ID)

	require.NotNil(t, first[0].Team)
	require.Equal(t, "Team A", first[0].Team.Name)
	require.Equal(t, []string{"AS"}, []string(first[0].CompletedBy))
	require.Nil(t, first[2].Team)

	cars, err := r.CarsPage(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, cars, 2)
	require.NotNil(t, cars[1].TrainUnit)
	require.Equal(t, 2, cars[1].TrainUnit.TrainNumber)
	require.Equal(t, "3 CAR", cars[1].CarType.Category)

	n, err := r.CountCompletions(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(6), n)
}
