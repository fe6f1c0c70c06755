package metrics

import (
	"fmt"
	"testing"
	"time"

	"train-task-tracker/internal/models"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func opts() Options {
	return Options{Sort: SortByTrain, Now: func() time.Time { return fixedNow }}
}

func strPtr(s string) *string { return &s }

func car(id string, train int, unit, category string) models.Car {
	unitID := "unit-" + unit
	typeID := "type-" + category
	return models.Car{
		ID:          id,
		TrainUnitID: &unitID,
		TrainUnit:   &models.TrainUnit{ID: unitID, UnitNumber: unit, TrainNumber: train},
		CarTypeID:   &typeID,
		CarType:     &models.CarType{ID: typeID, Name: "DM " + category, Category: category},
	}
}

func team(id, name string) (*string, *models.Team) {
	return &id, &models.Team{ID: id, Name: name, Color: "#10B981"}
}

func completion(id, carID string, status models.CompletionStatus) models.TaskCompletion {
	return models.TaskCompletion{ID: id, CarID: &carID, TaskName: "CHECK SALOON LIGHTING", Status: status, TotalMinutes: 60}
}

func withTeam(c models.TaskCompletion, id, name string) models.TaskCompletion {
	c.TeamID, c.Team = team(id, name)
	return c
}

func TestAggregate_MultiPersonTaskExceedsHundredPercent(t *testing.T) {
	c := models.TaskCompletion{
		ID:           "c-1",
		TaskName:     "DM CAR REMOVE BOGIE A",
		Status:       models.StatusCompleted,
		TotalMinutes: 420,
		CompletedBy:  []string{"AS"},
		CompletedAt:  strPtr("2024-03-11T10:00:00Z"),
	}
	c = withTeam(c, "team-a", "Team A")

	m := Aggregate(models.Dataset{Completions: []models.TaskCompletion{c}}, Filter{}, opts())
	require.Len(t, m.Teams, 1)
	row := m.Teams[0]
	require.Equal(t, 28.0, row.CompletedHours)
	require.Equal(t, 1, row.PersonDays)
	require.Equal(t, 8, row.AvailableHours)
	require.Equal(t, 350, row.TimeEfficiency)
	require.Equal(t, 100, row.EfficiencyBar())
	require.Equal(t, 100, row.TaskCompletionPercent)
	require.Equal(t, []string{"AS"}, row.Members)
}

func TestAggregate_TFOSTokenSeparatedFromRanking(t *testing.T) {
	c := models.TaskCompletion{
		ID:           "c-1",
		TaskName:     "DM CAR REMOVE BOGIE A",
		Status:       models.StatusCompleted,
		TotalMinutes: 420,
		CompletedBy:  []string{"TFOS"},
		CompletedAt:  strPtr("2024-03-11T10:00:00Z"),
	}
	m := Aggregate(models.Dataset{Completions: []models.TaskCompletion{c}}, Filter{}, opts())
	require.Empty(t, m.Teams)
	require.NotNil(t, m.TFOS)
	require.Equal(t, 1, m.TFOS.Completed)
	require.Equal(t, 28.0, m.TFOS.CompletedHours)
	require.Equal(t, 1, m.Stats.Completed)
}

func TestAggregate_RanksByCompletedCount(t *testing.T) {
	build := func(aDone, aTotal, bDone, bTotal int) []models.TaskCompletion {
		var out []models.TaskCompletion
		add := func(prefix, teamID, name string, done, total int) {
			for i := 0; i < total; i++ {
				status := models.StatusPending
				if i < done {
					status = models.StatusCompleted
				}
				c := completion(fmt.Sprintf("%s-%d", prefix, i), "car-1", status)
				out = append(out, withTeam(c, teamID, name))
			}
		}
		add("a", "team-a", "Team A", aDone, aTotal)
		add("b", "team-b", "Team B", bDone, bTotal)
		return out
	}

	m := Aggregate(models.Dataset{Completions: build(3, 5, 4, 4)}, Filter{}, opts())
	require.Len(t, m.Teams, 2)
	require.Equal(t, "Team B", m.Teams[0].Name)
	require.Equal(t, 100, m.Teams[0].TaskCompletionPercent)
	require.Equal(t, 60, m.Teams[1].TaskCompletionPercent)

	m = Aggregate(models.Dataset{Completions: build(5, 10, 4, 4)}, Filter{}, opts())
	require.Equal(t, "Team A", m.Teams[0].Name)
	require.Equal(t, 50, m.Teams[0].TaskCompletionPercent)
	require.Equal(t, "Team B", m.Teams[1].Name)
}

func TestAggregate_PersonDaysDeduplicate(t *testing.T) {
	mk := func(id, at string, who ...string) models.TaskCompletion {
		c := completion(id, "car-1", models.StatusCompleted)
		c.CompletedBy = who
		c.CompletedAt = strPtr(at)
		return withTeam(c, "team-a", "Team A")
	}
	ds := models.Dataset{Completions: []models.TaskCompletion{
		mk("c-1", "2024-03-11T08:00:00Z", "AS"),
		mk("c-2", "2024-03-11T14:00:00Z", "as "),
		mk("c-3", "2024-03-12T08:00:00Z", "AS", "JT"),
	}}
	m := Aggregate(ds, Filter{}, opts())
	require.Equal(t, 3, m.Teams[0].PersonDays)
	require.Equal(t, 24, m.Teams[0].AvailableHours)
	require.Equal(t, 3.0, m.Teams[0].CompletedHours)
	require.Equal(t, 13, m.Teams[0].TimeEfficiency)
}

func TestAggregate_ZeroPersonDaysReportsZeroEfficiency(t *testing.T) {
	c := withTeam(completion("c-1", "car-1", models.StatusCompleted), "team-a", "Team A")
	m := Aggregate(models.Dataset{Completions: []models.TaskCompletion{c}}, Filter{}, opts())
	require.Equal(t, 0, m.Teams[0].PersonDays)
	require.Equal(t, 0, m.Teams[0].TimeEfficiency)
	require.Equal(t, 1.0, m.Teams[0].CompletedHours)
}

func TestAggregate_EmptyDataset(t *testing.T) {
	m := Aggregate(models.Dataset{}, Filter{}, opts())
	require.Equal(t, GlobalStats{}, m.Stats)
	require.NotNil(t, m.Teams)
	require.Empty(t, m.Teams)
	require.Nil(t, m.TFOS)
	require.Empty(t, m.Vehicles)
	require.Empty(t, m.Daily)
}

func TestAggregate_GlobalStatsCountInvalidStatusAsPending(t *testing.T) {
	ds := models.Dataset{Completions: []models.TaskCompletion{
		completion("c-1", "car-1", models.StatusCompleted),
		completion("c-2", "car-1", models.StatusInProgress),
		completion("c-3", "car-1", models.StatusPending),
		completion("c-4", "car-1", "weird"),
	}}
	m := Aggregate(ds, Filter{}, opts())
	require.Equal(t, GlobalStats{Total: 4, Completed: 1, InProgress: 1, Pending: 2, OverallEfficiency: 25}, m.Stats)
	require.LessOrEqual(t, m.Stats.Completed+m.Stats.InProgress+m.Stats.Pending, m.Stats.Total)
}

func sampleDataset() models.Dataset {
	cars := []models.Car{
		car("car-1", 1, "96067", models.Category3Car),
		car("car-2", 1, "96122", models.Category4Car),
		car("car-3", 2, "96051", models.Category3Car),
		car("car-4", 3, "96099", models.Category3Car),
	}
	done := func(id, carID, at string) models.TaskCompletion {
		c := completion(id, carID, models.StatusCompleted)
		c.CompletedAt = strPtr(at)
		c.CompletedBy = []string{"AS"}
		return withTeam(c, "team-a", "Team A")
	}
	completions := []models.TaskCompletion{
		done("c-1", "car-1", "2024-03-11T08:00:00Z"),
		done("c-2", "car-2", "2024-03-12T08:00:00Z"),
		completion("c-3", "car-2", models.StatusInProgress),
		completion("c-4", "car-3", models.StatusPending),
		done("c-5", "car-3", "2024-03-11T16:00:00Z"),
		{ID: "c-6", TaskName: "ORPHAN", Status: models.StatusCompleted},
	}
	return models.Dataset{Cars: cars, Completions: completions}
}

func TestAggregate_VehicleProgress(t *testing.T) {
	m := Aggregate(sampleDataset(), Filter{}, opts())
	require.Len(t, m.Vehicles, 3)

	t1 := m.Vehicles[0]
	require.Equal(t, 1, t1.TrainNumber)
	require.Equal(t, "T01", t1.Label)
	require.Equal(t, []string{"96067", "96122"}, t1.UnitNumbers)
	require.Equal(t, 2, t1.CompletedTasks)
	require.Equal(t, 3, t1.TotalTasks)
	require.Equal(t, 67, t1.Percent)
	require.Equal(t, []CategoryProgress{
		{Category: models.Category3Car, CompletedTasks: 1, TotalTasks: 1, Percent: 100},
		{Category: models.Category4Car, CompletedTasks: 1, TotalTasks: 2, Percent: 50},
	}, t1.Categories)

	t3 := m.Vehicles[2]
	require.Equal(t, 3, t3.TrainNumber)
	require.Equal(t, 0, t3.TotalTasks)
	require.Equal(t, 0, t3.Percent)
}

func TestAggregate_VehicleSortByPercent(t *testing.T) {
	o := opts()
	o.Sort = SortByPercent
	m := Aggregate(sampleDataset(), Filter{}, o)
	got := []int{m.Vehicles[0].TrainNumber, m.Vehicles[1].TrainNumber, m.Vehicles[2].TrainNumber}
	require.Equal(t, []int{1, 2, 3}, got)
	require.Equal(t, 67, m.Vehicles[0].Percent)
	require.Equal(t, 50, m.Vehicles[1].Percent)
	require.Equal(t, 0, m.Vehicles[2].Percent)
}

func TestAggregate_FilterByTrain(t *testing.T) {
	m := Aggregate(sampleDataset(), Filter{Trains: []int{2}}, opts())
	require.Equal(t, 2, m.Stats.Total)
	require.Equal(t, 1, m.Stats.Completed)
	require.Len(t, m.Vehicles, 1)
	require.Equal(t, 2, m.Vehicles[0].TrainNumber)
	require.Equal(t, []DailyCount{{Date: "2024-03-11", Label: "Mar 11", Count: 1}}, m.Daily)
}

func TestAggregate_EmptyFilterEqualsFullFilter(t *testing.T) {
	ds := sampleDataset()
	all := Aggregate(ds, Filter{}, opts())
	full := Aggregate(ds, Filter{Trains: []int{3, 1, 2}}, opts())
	require.Equal(t, all, full)
	require.Equal(t, 6, all.Stats.Total)
}

func TestAggregate_Idempotent(t *testing.T) {
	ds := sampleDataset()
	first := Aggregate(ds, Filter{}, opts())
	second := Aggregate(ds, Filter{}, opts())
	require.Equal(t, first, second)
	require.Equal(t, sampleDataset(), ds)
}

func TestAggregate_DailyHistogramBounds(t *testing.T) {
	mk := func(id, at string) models.TaskCompletion {
		c := completion(id, "car-1", models.StatusCompleted)
		c.CompletedAt = strPtr(at)
		return c
	}
	pending := completion("c-p", "car-1", models.StatusPending)
	pending.CompletedAt = strPtr("2024-03-01")
	ds := models.Dataset{Completions: []models.TaskCompletion{
		mk("c-1", "2024-03-12T08:00:00Z"),
		mk("c-2", "2024-03-11T08:00:00Z"),
		mk("c-3", "2024-03-11 17:30:00+00"),
		mk("c-4", "2019-12-31"),
		mk("c-5", "3034-10-03"),
		mk("c-6", "Oct 3, 3034"),
		mk("c-7", "2024-3-11"),
		mk("c-8", "2024-02-30"),
		mk("c-9", "2025-06-01"),
		mk("c-10", "2025-06-02"),
		pending,
	}}
	m := Aggregate(ds, Filter{}, opts())
	require.Equal(t, []DailyCount{
		{Date: "2024-03-11", Label: "Mar 11", Count: 2},
		{Date: "2024-03-12", Label: "Mar 12", Count: 1},
		{Date: "2025-06-01", Label: "Jun 1", Count: 1},
	}, m.Daily)
	require.Equal(t, 10, m.Stats.Completed)
}

func TestParseVehicleSort(t *testing.T) {
	require.Equal(t, SortByPercent, ParseVehicleSort("percent"))
	require.Equal(t, SortByTrain, ParseVehicleSort("train"))
	require.Equal(t, SortByTrain, ParseVehicleSort(""))
}

func TestAggregate_FilterWithNoTrainsPresentSelectsNothing(t *testing.T) {
	ds := models.Dataset{
		Cars:        []models.Car{{ID: "car-x"}},
		Completions: []models.TaskCompletion{completion("c-1", "car-x", models.StatusCompleted)},
	}
	m := Aggregate(ds, Filter{Trains: []int{5}}, opts())
	require.Equal(t, 0, m.Stats.Total)
	require.Empty(t, m.Vehicles)

	require.Equal(t, 1, Aggregate(ds, Filter{}, opts()).Stats.Total)
}
