// Package metrics derives the efficiency dashboard from a dataset of task
// completions. Aggregate is pure: it reads the dataset, never mutates it, and
// performs no I/O.
package metrics

import (
	"sort"
	"strings"
	"time"

	"train-task-tracker/internal/models"
	"train-task-tracker/internal/normalize"
)

// Aggregate computes DashboardMetrics for the completions selected by f.
func Aggregate(ds models.Dataset, f Filter, opts Options) DashboardMetrics {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	cars := normalize.IndexCars(ds.Cars)
	selected := selection(ds.Cars, f)

	records := make([]normalize.Record, 0, len(ds.Completions))
	for _, c := range ds.Completions {
		rec := normalize.Normalize(c, cars)
		if selected != nil && (rec.Train == nil || !selected[rec.Train.Number]) {
			continue
		}
		records = append(records, rec)
	}

	teams, tfos := teamPerformance(records)
	return DashboardMetrics{
		Stats:    globalStats(records),
		Teams:    teams,
		TFOS:     tfos,
		Vehicles: vehicleProgress(ds.Cars, records, selected, opts.Sort),
		Daily:    dailyHistogram(records, now()),
	}
}

// selection returns the set of selected train numbers, or nil when the filter
// selects everything: either nothing was picked or at least one train is
// present and every present train was picked.
func selection(cars []models.Car, f Filter) map[int]bool {
	if len(f.Trains) == 0 {
		return nil
	}
	selected := make(map[int]bool, len(f.Trains))
	for _, n := range f.Trains {
		selected[n] = true
	}
	present := false
	for _, car := range cars {
		if car.TrainUnit == nil {
			continue
		}
		present = true
		if !selected[car.TrainUnit.TrainNumber] {
			return selected
		}
	}
	if !present {
		return selected
	}
	return nil
}

func globalStats(records []normalize.Record) GlobalStats {
	var s GlobalStats
	s.Total = len(records)
	for _, r := range records {
		switch r.Status {
		case models.StatusCompleted:
			s.Completed++
		case models.StatusInProgress:
			s.InProgress++
		default:
			s.Pending++
		}
	}
	s.OverallEfficiency = percent(float64(s.Completed), float64(s.Total))
	return s
}

type teamAcc struct {
	row        TeamPerformance
	manMinutes float64
	days       map[string]struct{}
	members    map[string]struct{}
}

func (a *teamAcc) finish() TeamPerformance {
	row := a.row
	row.CompletedHours = round10(a.manMinutes / 60)
	row.PersonDays = len(a.days)
	row.AvailableHours = row.PersonDays * HoursPerPersonDay
	row.TaskCompletionPercent = percent(float64(row.Completed), float64(row.Total))
	row.TimeEfficiency = percent(row.CompletedHours, float64(row.AvailableHours))
	row.Members = make([]string, 0, len(a.members))
	for m := range a.members {
		row.Members = append(row.Members, m)
	}
	sort.Strings(row.Members)
	return row
}

// teamPerformance returns the ranked team rows and, separately, the TFOS row.
func teamPerformance(records []normalize.Record) ([]TeamPerformance, *TeamPerformance) {
	accs := make(map[string]*teamAcc)
	for _, r := range records {
		if r.Team == nil {
			continue
		}
		key := r.Team.Key
		if r.Team.External {
			key = normalize.TFOSToken
		}
		acc, ok := accs[key]
		if !ok {
			acc = &teamAcc{
				row:     TeamPerformance{Key: key, Name: r.Team.Name, Color: r.Team.Color},
				days:    make(map[string]struct{}),
				members: make(map[string]struct{}),
			}
			accs[key] = acc
		}

		acc.row.Total++
		switch r.Status {
		case models.StatusCompleted:
			acc.row.Completed++
			acc.manMinutes += r.ManMinutes
		case models.StatusInProgress:
			acc.row.InProgress++
		}
		for _, d := range r.OperatorDays {
			acc.days[d] = struct{}{}
		}
		for _, op := range r.Operators {
			acc.members[op] = struct{}{}
		}
	}

	var tfos *TeamPerformance
	teams := make([]TeamPerformance, 0, len(accs))
	for key, acc := range accs {
		row := acc.finish()
		if key == normalize.TFOSToken {
			tfos = &row
			continue
		}
		teams = append(teams, row)
	}

	// Ranked by throughput; efficiency is a separate column.
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Completed != teams[j].Completed {
			return teams[i].Completed > teams[j].Completed
		}
		if teams[i].Name != teams[j].Name {
			return teams[i].Name < teams[j].Name
		}
		return teams[i].Key < teams[j].Key
	})
	return teams, tfos
}

type vehicleAcc struct {
	row        VehicleProgress
	units      map[string]struct{}
	categories map[string]*CategoryProgress
}

func (a *vehicleAcc) category(name string) *CategoryProgress {
	cp, ok := a.categories[name]
	if !ok {
		cp = &CategoryProgress{Category: name}
		a.categories[name] = cp
	}
	return cp
}

func vehicleProgress(cars []models.Car, records []normalize.Record, selected map[int]bool, order VehicleSort) []VehicleProgress {
	accs := make(map[int]*vehicleAcc)
	get := func(n int) *vehicleAcc {
		acc, ok := accs[n]
		if !ok {
			acc = &vehicleAcc{
				row:        VehicleProgress{TrainNumber: n, Label: models.TrainLabel(n)},
				units:      make(map[string]struct{}),
				categories: make(map[string]*CategoryProgress),
			}
			accs[n] = acc
		}
		return acc
	}

	// Trains with cars but no completions still get a 0% row.
	for _, car := range cars {
		if car.TrainUnit == nil {
			continue
		}
		n := car.TrainUnit.TrainNumber
		if selected != nil && !selected[n] {
			continue
		}
		acc := get(n)
		if car.TrainUnit.UnitNumber != "" {
			acc.units[car.TrainUnit.UnitNumber] = struct{}{}
		}
		if car.CarType != nil && car.CarType.Category != "" {
			acc.category(car.CarType.Category)
		}
	}

	for _, r := range records {
		if r.Train == nil {
			continue
		}
		acc := get(r.Train.Number)
		done := r.Status == models.StatusCompleted
		acc.row.TotalTasks++
		if done {
			acc.row.CompletedTasks++
		}
		if r.Train.Category != "" {
			cp := acc.category(r.Train.Category)
			cp.TotalTasks++
			if done {
				cp.CompletedTasks++
			}
		}
	}

	rows := make([]VehicleProgress, 0, len(accs))
	for _, acc := range accs {
		row := acc.row
		row.Percent = percent(float64(row.CompletedTasks), float64(row.TotalTasks))
		row.UnitNumbers = make([]string, 0, len(acc.units))
		for u := range acc.units {
			row.UnitNumbers = append(row.UnitNumbers, u)
		}
		sort.Strings(row.UnitNumbers)
		row.Categories = make([]CategoryProgress, 0, len(acc.categories))
		for _, cp := range acc.categories {
			c := *cp
			c.Percent = percent(float64(c.CompletedTasks), float64(c.TotalTasks))
			row.Categories = append(row.Categories, c)
		}
		sort.Slice(row.Categories, func(i, j int) bool {
			return row.Categories[i].Category < row.Categories[j].Category
		})
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if order == SortByPercent && rows[i].Percent != rows[j].Percent {
			return rows[i].Percent > rows[j].Percent
		}
		return rows[i].TrainNumber < rows[j].TrainNumber
	})
	return rows
}

var histogramStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// histogramDate extracts a strict YYYY-MM-DD date from a completed_at value
// and checks it against [2020-01-01, now+1y].
func histogramDate(raw string, now time.Time) (time.Time, bool) {
	datePart := strings.TrimSpace(raw)
	if i := strings.IndexAny(datePart, "T "); i >= 0 {
		datePart = datePart[:i]
	}
	if len(datePart) != len(time.DateOnly) {
		return time.Time{}, false
	}
	d, err := time.Parse(time.DateOnly, datePart)
	if err != nil {
		return time.Time{}, false
	}
	limit := now.AddDate(1, 0, 0)
	upper := time.Date(limit.Year(), limit.Month(), limit.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(histogramStart) || d.After(upper) {
		return time.Time{}, false
	}
	return d, true
}

func dailyHistogram(records []normalize.Record, now time.Time) []DailyCount {
	counts := make(map[time.Time]int)
	for _, r := range records {
		if r.Status != models.StatusCompleted {
			continue
		}
		if d, ok := histogramDate(r.CompletedAt, now); ok {
			counts[d]++
		}
	}

	days := make([]time.Time, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]DailyCount, 0, len(days))
	for _, d := range days {
		out = append(out, DailyCount{
			Date:  d.Format(time.DateOnly),
			Label: d.Format("Jan 2"),
			Count: counts[d],
		})
	}
	return out
}
