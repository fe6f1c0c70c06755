package normalize

import (
	"testing"

	"train-task-tracker/internal/models"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testCars() CarIndex {
	unitID := "unit-1"
	typeID := "type-dm3"
	return IndexCars([]models.Car{{
		ID:          "car-1",
		TrainUnitID: &unitID,
		TrainUnit:   &models.TrainUnit{ID: unitID, UnitNumber: "96067", TrainNumber: 1},
		CarTypeID:   &typeID,
		CarType:     &models.CarType{ID: typeID, Name: "DM 3 CAR", Category: models.Category3Car},
	}})
}

func TestNormalize_CompletedRecord(t *testing.T) {
	rec := Normalize(models.TaskCompletion{
		ID:           "c-1",
		CarID:        strPtr("car-1"),
		TaskName:     "DM CAR REMOVE BOGIE A",
		Status:       models.StatusCompleted,
		TotalMinutes: 420,
		CompletedBy:  []string{" as ", "jt"},
		CompletedAt:  strPtr("2024-03-11T10:00:00Z"),
	}, testCars())

	require.Equal(t, models.StatusCompleted, rec.Status)
	require.True(t, rec.StatusValid)
	require.Equal(t, 1680.0, rec.ManMinutes)
	require.Nil(t, rec.Team)
	require.NotNil(t, rec.Train)
	require.Equal(t, 1, rec.Train.Number)
	require.Equal(t, models.Category3Car, rec.Train.Category)
	require.Equal(t, []string{"AS", "JT"}, rec.Operators)
	require.Equal(t, []string{"AS|2024-03-11", "JT|2024-03-11"}, rec.OperatorDays)
}

func TestNormalize_UnknownStatusBecomesPending(t *testing.T) {
	rec := Normalize(models.TaskCompletion{ID: "c-2", Status: "blocked"}, nil)
	require.Equal(t, models.StatusPending, rec.Status)
	require.False(t, rec.StatusValid)

	rec = Normalize(models.TaskCompletion{ID: "c-3", Status: "not_started"}, nil)
	require.Equal(t, models.StatusPending, rec.Status)
	require.True(t, rec.StatusValid)
}

func TestNormalize_CompletedWithoutDateHasNoPersonDays(t *testing.T) {
	rec := Normalize(models.TaskCompletion{
		ID:           "c-4",
		Status:       models.StatusCompleted,
		TotalMinutes: 60,
		CompletedBy:  []string{"AS"},
	}, nil)
	require.Empty(t, rec.OperatorDays)
	require.Equal(t, 60.0, rec.ManMinutes)

	rec = Normalize(models.TaskCompletion{
		ID:          "c-5",
		Status:      models.StatusCompleted,
		CompletedAt: strPtr("2024-03-11"),
	}, nil)
	require.Empty(t, rec.OperatorDays)
}

func TestNormalize_PendingRecordHasNoPersonDays(t *testing.T) {
	rec := Normalize(models.TaskCompletion{
		ID:          "c-6",
		Status:      models.StatusInProgress,
		CompletedBy: []string{"AS"},
		CompletedAt: strPtr("2024-03-11"),
	}, nil)
	require.Empty(t, rec.OperatorDays)
}

func TestNormalize_NegativeMinutesClampToZero(t *testing.T) {
	rec := Normalize(models.TaskCompletion{ID: "c-7", TotalMinutes: -30}, nil)
	require.Zero(t, rec.ManMinutes)
}

func TestNormalize_MissingCarHasNoTrain(t *testing.T) {
	rec := Normalize(models.TaskCompletion{ID: "c-8", CarID: strPtr("nope")}, testCars())
	require.Nil(t, rec.Train)
}

func TestResolveTeam_Priority(t *testing.T) {
	teamID := "team-a"
	explicit := ResolveTeam(models.TaskCompletion{
		TeamID:      &teamID,
		Team:        &models.Team{ID: teamID, Name: "Team A", Color: "#10B981"},
		CompletedBy: []string{"TFOS"},
	})
	require.NotNil(t, explicit)
	require.Equal(t, "team-a", explicit.Key)
	require.Equal(t, "Team A", explicit.Name)
	require.False(t, explicit.External)

	tfos := ResolveTeam(models.TaskCompletion{CompletedBy: []string{"AS", "tfos contractor"}})
	require.NotNil(t, tfos)
	require.Equal(t, TFOSToken, tfos.Key)
	require.True(t, tfos.External)

	require.Nil(t, ResolveTeam(models.TaskCompletion{CompletedBy: []string{"AS"}}))
}

func TestResolveTeam_ExplicitTFOSTeamIsExternal(t *testing.T) {
	teamID := "team-tfos"
	ref := ResolveTeam(models.TaskCompletion{TeamID: &teamID, Team: &models.Team{ID: teamID, Name: "tfos"}})
	require.True(t, ref.External)
}

func TestOperatorDays_Deduplicates(t *testing.T) {
	days := OperatorDays([]string{"AS", "AS", "JT"}, "2024-03-11")
	require.Equal(t, []string{"AS|2024-03-11", "JT|2024-03-11"}, days)
}

func TestCompletionDate(t *testing.T) {
	cases := map[string]string{
		"2024-03-11T10:00:00Z":       "2024-03-11",
		"2024-03-11T23:30:00+01:00":  "2024-03-11",
		"2024-03-11 08:15:00+00":     "2024-03-11",
		"2024-03-11T08:15:00.123456": "2024-03-11",
		"2024-03-11":                 "2024-03-11",
	}
	for raw, want := range cases {
		got, ok := CompletionDate(raw)
		require.True(t, ok, raw)
		require.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "Oct 3, 3034", "2024-13-01", "yesterday"} {
		_, ok := CompletionDate(raw)
		require.False(t, ok, raw)
	}
}
