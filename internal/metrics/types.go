package metrics

import "time"

// HoursPerPersonDay is the capacity one person-day contributes.
const HoursPerPersonDay = 8

// VehicleSort selects the ordering of the vehicle progress rows.
type VehicleSort string

const (
	SortByTrain   VehicleSort = "train"
	SortByPercent VehicleSort = "percent"
)

// ParseVehicleSort maps a query value to a VehicleSort, defaulting to train order.
func ParseVehicleSort(s string) VehicleSort {
	if VehicleSort(s) == SortByPercent {
		return SortByPercent
	}
	return SortByTrain
}

// Filter narrows the completions that are aggregated.
type Filter struct {
	// Trains lists selected train numbers. Empty means every train.
	Trains []int `json:"trains"`
}

// Options tunes presentation details of the output.
type Options struct {
	Sort VehicleSort
	// Now bounds the histogram's upper date. Defaults to time.Now.
	Now func() time.Time
}

// GlobalStats are the status counts over every aggregated completion.
type GlobalStats struct {
	Total             int `json:"total"`
	Completed         int `json:"completed"`
	InProgress        int `json:"in_progress"`
	Pending           int `json:"pending"`
	OverallEfficiency int `json:"overall_efficiency"`
}

// TeamPerformance is one row of the team table.
type TeamPerformance struct {
	Key                   string   `json:"key"`
	Name                  string   `json:"name"`
	Color                 string   `json:"color"`
	Completed             int      `json:"completed"`
	InProgress            int      `json:"in_progress"`
	Total                 int      `json:"total"`
	CompletedHours        float64  `json:"completed_hours"`
	PersonDays            int      `json:"person_days"`
	AvailableHours        int      `json:"available_hours"`
	TaskCompletionPercent int      `json:"task_completion_percent"`
	TimeEfficiency        int      `json:"time_efficiency"`
	Members               []string `json:"members"`
}

// EfficiencyBar is TimeEfficiency clipped to 100 for progress bars.
// TimeEfficiency itself keeps the real value.
func (t TeamPerformance) EfficiencyBar() int {
	return ClipPercent(t.TimeEfficiency)
}

// CategoryProgress is the completion ratio of one car category within a train.
type CategoryProgress struct {
	Category       string `json:"category"`
	CompletedTasks int    `json:"completed_tasks"`
	TotalTasks     int    `json:"total_tasks"`
	Percent        int    `json:"percent"`
}

// VehicleProgress is one train's completion ratio.
type VehicleProgress struct {
	TrainNumber    int                `json:"train_number"`
	Label          string             `json:"label"`
	UnitNumbers    []string           `json:"unit_numbers"`
	CompletedTasks int                `json:"completed_tasks"`
	TotalTasks     int                `json:"total_tasks"`
	Percent        int                `json:"percent"`
	Categories     []CategoryProgress `json:"categories"`
}

// DailyCount is one histogram bucket.
type DailyCount struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DashboardMetrics is everything the dashboard renders. It is plain data.
type DashboardMetrics struct {
	Stats    GlobalStats       `json:"stats"`
	Teams    []TeamPerformance `json:"teams"`
	TFOS     *TeamPerformance  `json:"tfos,omitempty"`
	Vehicles []VehicleProgress `json:"vehicles"`
	Daily    []DailyCount      `json:"daily"`
}
