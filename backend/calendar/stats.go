package calendar

import "math"

// Stats holds the aggregate figures shown above the heatmap.
type Stats struct {
	TotalSubmissions int `json:"totalSubmissions"`
	ActiveDays       int `json:"activeDays"`
	MaxStreak        int `json:"maxStreak"`
}

// ComputeStats sums all submissions, counts active days and finds the
// longest run of consecutive days present in the calendar.
func ComputeStats(cal SubmissionCalendar) Stats {
	keys := cal.SortedKeys()
	if len(keys) == 0 {
		return Stats{}
	}

	var total int
	for _, count := range cal {
		total += count
	}

	current, longest := 1, 1
	for i := 1; i < len(keys); i++ {
		gap := dayGap(keys[i-1], keys[i])
		switch {
		case gap == 1:
			current++
		case gap > 1:
			current = 1
		}
		if current > longest {
			longest = current
		}
	}

	return Stats{
		TotalSubmissions: total,
		ActiveDays:       len(keys),
		MaxStreak:        longest,
	}
}

// dayGap rounds to the nearest whole day so near-multiples of a day still
// count as adjacent.
func dayGap(prev, curr DayBucket) int {
	return int(math.Round(float64(curr-prev) / SecondsPerDay))
}
