// Package normalize turns raw task completion rows into the canonical shape
// the metrics engine aggregates over.
package normalize

import (
	"math"
	"sort"
	"strings"
	"time"

	"train-task-tracker/internal/models"
	"train-task-tracker/internal/multiplier"
)

// TFOSToken marks work done by operators outside the four shift teams.
const TFOSToken = "TFOS"

const tfosColor = "#EF4444"

const defaultTeamColor = "#3B82F6"

// TeamRef is the team a record is attributed to.
type TeamRef struct {
	Key   string
	Name  string
	Color string
	// External is true for TFOS work, which is kept out of the team ranking.
	External bool
}

// TrainRef is the train a record's car belongs to.
type TrainRef struct {
	Number     int
	UnitNumber string
	Category   string
}

// Record is one completion after normalization.
type Record struct {
	ID       string
	TaskName string
	Status   models.CompletionStatus
	// StatusValid is false when the raw status was outside the closed set.
	StatusValid bool
	ManMinutes  float64
	Team        *TeamRef
	Train       *TrainRef
	// CompletedAt is the raw timestamp, empty when null.
	CompletedAt string
	// Operators are the uppercased, trimmed initials from completed_by.
	Operators []string
	// OperatorDays holds "INITIAL|YYYY-MM-DD" keys, one per person-day.
	OperatorDays []string
}

// CarIndex resolves car ids to cars.
type CarIndex map[string]models.Car

// IndexCars builds a CarIndex from a car list.
func IndexCars(cars []models.Car) CarIndex {
	idx := make(CarIndex, len(cars))
	for _, c := range cars {
		idx[c.ID] = c
	}
	return idx
}

// Normalize converts one completion. It never fails; malformed fields end up
// as zero values that the aggregates skip.
func Normalize(c models.TaskCompletion, cars CarIndex) Record {
	status, valid := models.ParseStatus(string(c.Status))

	rec := Record{
		ID:          c.ID,
		TaskName:    c.TaskName,
		Status:      status,
		StatusValid: valid,
		ManMinutes:  manMinutes(c.TotalMinutes, c.TaskName),
		Team:        ResolveTeam(c),
		Train:       resolveTrain(c.CarID, cars),
		Operators:   Operators(c.CompletedBy),
	}
	if c.CompletedAt != nil {
		rec.CompletedAt = strings.TrimSpace(*c.CompletedAt)
	}

	if status == models.StatusCompleted {
		if date, ok := CompletionDate(rec.CompletedAt); ok {
			rec.OperatorDays = OperatorDays(rec.Operators, date)
		}
	}
	return rec
}

func manMinutes(total float64, taskName string) float64 {
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		return 0
	}
	return total * float64(multiplier.PeopleCount(taskName))
}

// ResolveTeam applies the attribution order: explicit team, then the TFOS
// token in completed_by, else nil.
func ResolveTeam(c models.TaskCompletion) *TeamRef {
	if c.TeamID != nil && strings.TrimSpace(*c.TeamID) != "" {
		ref := &TeamRef{Key: *c.TeamID, Name: *c.TeamID, Color: defaultTeamColor}
		if c.Team != nil {
			if c.Team.Name != "" {
				ref.Name = c.Team.Name
			}
			if c.Team.Color != "" {
				ref.Color = c.Team.Color
			}
		}
		ref.External = strings.EqualFold(strings.TrimSpace(ref.Name), TFOSToken)
		return ref
	}
	if HasTFOS(c.CompletedBy) {
		return &TeamRef{Key: TFOSToken, Name: TFOSToken, Color: tfosColor, External: true}
	}
	return nil
}

// HasTFOS reports whether any completed_by entry contains the TFOS token.
func HasTFOS(completedBy []string) bool {
	for _, who := range completedBy {
		if strings.Contains(strings.ToUpper(who), TFOSToken) {
			return true
		}
	}
	return false
}

func resolveTrain(carID *string, cars CarIndex) *TrainRef {
	if carID == nil {
		return nil
	}
	car, ok := cars[*carID]
	if !ok || car.TrainUnit == nil {
		return nil
	}
	ref := &TrainRef{
		Number:     car.TrainUnit.TrainNumber,
		UnitNumber: car.TrainUnit.UnitNumber,
	}
	if car.CarType != nil {
		ref.Category = car.CarType.Category
	}
	return ref
}

// Operators uppercases and trims initials, dropping blanks.
func Operators(completedBy []string) []string {
	if len(completedBy) == 0 {
		return nil
	}
	out := make([]string, 0, len(completedBy))
	for _, who := range completedBy {
		who = strings.ToUpper(strings.TrimSpace(who))
		if who != "" {
			out = append(out, who)
		}
	}
	return out
}

// OperatorDays renders the person-day keys for a set of initials on a date.
func OperatorDays(operators []string, date string) []string {
	if len(operators) == 0 || date == "" {
		return nil
	}
	seen := make(map[string]struct{}, len(operators))
	out := make([]string, 0, len(operators))
	for _, op := range operators {
		key := op + "|" + date
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// CompletionDate parses a completed_at value and returns its calendar date in
// the timestamp's own offset.
func CompletionDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(time.DateOnly), true
		}
	}
	return "", false
}
