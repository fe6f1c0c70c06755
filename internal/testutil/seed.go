package testutil

import (
	"fmt"

	"train-task-tracker/internal/models"

	"gorm.io/gorm"
)

// Fleet holds the ids created by SeedFleet.
type Fleet struct {
	TeamA  models.Team
	TeamB  models.Team
	CarIDs []string // one per train, in train order
}

// SeedFleet creates two teams, two trains with one DM 3 CAR each, and
// completions on every car: one completed by Team A, one in progress for
// Team B and one pending with no team.
func SeedFleet(db *gorm.DB) (Fleet, error) {
	var f Fleet
	f.TeamA = models.Team{ID: "team-a", Name: "Team A", Color: "#10B981"}
	f.TeamB = models.Team{ID: "team-b", Name: "Team B", Color: "#F59E0B"}
	if err := db.Create(&[]models.Team{f.TeamA, f.TeamB}).Error; err != nil {
		return f, err
	}

	carType := models.CarType{ID: "type-dm3", Name: "DM 3 CAR", Category: models.Category3Car}
	if err := db.Create(&carType).Error; err != nil {
		return f, err
	}

	for train := 1; train <= 2; train++ {
		unit := models.TrainUnit{
			ID:          fmt.Sprintf("unit-%d", train),
			UnitNumber:  fmt.Sprintf("9600%d", train),
			TrainNumber: train,
			TrainName:   models.TrainLabel(train),
		}
		if err := db.Create(&unit).Error; err != nil {
			return f, err
		}
		car := models.Car{
			ID:          fmt.Sprintf("car-%d", train),
			CarNumber:   fmt.Sprintf("%d1", train),
			TrainUnitID: &unit.ID,
			CarTypeID:   &carType.ID,
		}
		if err := db.Create(&car).Error; err != nil {
			return f, err
		}
		f.CarIDs = append(f.CarIDs, car.ID)

		at := fmt.Sprintf("2024-03-1%dT10:00:00Z", train)
		rows := []models.TaskCompletion{
			{
				ID:           fmt.Sprintf("c-%d-1", train),
				CarID:        &car.ID,
				TaskName:     "DM CAR REMOVE BOGIE A",
				Status:       models.StatusCompleted,
				TotalMinutes: 420,
				CompletedBy:  []string{"AS"},
				CompletedAt:  &at,
				TeamID:       &f.TeamA.ID,
			},
			{
				ID:           fmt.Sprintf("c-%d-2", train),
				CarID:        &car.ID,
				TaskName:     "DM CAR REFIT COUPLER",
				Status:       models.StatusInProgress,
				TotalMinutes: 90,
				TeamID:       &f.TeamB.ID,
			},
			{
				ID:           fmt.Sprintf("c-%d-3", train),
				CarID:        &car.ID,
				TaskName:     "BODYSHELL INSPECTION",
				Status:       models.StatusPending,
				TotalMinutes: 30,
			},
		}
		if err := db.Create(&rows).Error; err != nil {
			return f, err
		}
	}
	return f, nil
}
