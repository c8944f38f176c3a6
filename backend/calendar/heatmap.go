package calendar

import "time"

const (
	// HeatmapTrailingDays is how far before today the grid reaches before
	// being rewound to the start of its week.
	HeatmapTrailingDays = 35

	// WeekStart is the weekday every grid begins on.
	WeekStart = time.Sunday
)

// HeatmapCell is one day of the grid.
type HeatmapCell struct {
	DayBucket DayBucket `json:"dayBucket"`
	Level     int       `json:"level"`
}

// Level maps a submission count onto the 0-4 intensity scale.
func Level(count int) int {
	switch {
	case count <= 0:
		return 0
	case count <= 2:
		return 1
	case count <= 5:
		return 2
	case count <= 9:
		return 3
	default:
		return 4
	}
}

// BuildHeatmap returns one cell per day from the start of the week that
// contains now-35d through the day containing now, inclusive.
func BuildHeatmap(cal SubmissionCalendar, now time.Time) []HeatmapCell {
	today := BucketOf(now)
	start := WindowStart(now)

	cells := make([]HeatmapCell, 0, int((today-start)/SecondsPerDay)+1)
	for b := start; b <= today; b = b.Next() {
		cells = append(cells, HeatmapCell{DayBucket: b, Level: Level(cal[b])})
	}
	return cells
}

// WindowStart returns the first bucket of the heatmap window for now.
func WindowStart(now time.Time) DayBucket {
	first := BucketOf(now).Time().AddDate(0, 0, -HeatmapTrailingDays)
	offset := (int(first.Weekday()) - int(WeekStart) + 7) % 7
	return BucketOf(first.AddDate(0, 0, -offset))
}
