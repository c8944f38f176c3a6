package models

import "leetstats/backend/calendar"

// Profile is the payload returned by the public LeetCode stats API.
type Profile struct {
	Status             string               `json:"status"`
	Message            string               `json:"message,omitempty"`
	TotalSolved        int                  `json:"totalSolved"`
	TotalQuestions     int                  `json:"totalQuestions"`
	EasySolved         int                  `json:"easySolved"`
	TotalEasy          int                  `json:"totalEasy"`
	MediumSolved       int                  `json:"mediumSolved"`
	TotalMedium        int                  `json:"totalMedium"`
	HardSolved         int                  `json:"hardSolved"`
	TotalHard          int                  `json:"totalHard"`
	AcceptanceRate     float64              `json:"acceptanceRate"`
	Ranking            int                  `json:"ranking"`
	ContributionPoints int                  `json:"contributionPoints"`
	Reputation         int                  `json:"reputation"`
	SubmissionCalendar calendar.RawCalendar `json:"submissionCalendar"`
}

type DifficultyBreakdown struct {
	Name   string `json:"name"`
	Solved int    `json:"solved"`
	Total  int    `json:"total"`
}

// Difficulties returns the solved/total pairs in Easy, Medium, Hard order.
func (p *Profile) Difficulties() []DifficultyBreakdown {
	return []DifficultyBreakdown{
		{Name: "Easy", Solved: p.EasySolved, Total: p.TotalEasy},
		{Name: "Medium", Solved: p.MediumSolved, Total: p.TotalMedium},
		{Name: "Hard", Solved: p.HardSolved, Total: p.TotalHard},
	}
}

// UserStats is the response body of the stats endpoint.
type UserStats struct {
	Username           string                 `json:"username"`
	TotalSolved        int                    `json:"totalSolved"`
	TotalQuestions     int                    `json:"totalQuestions"`
	Ranking            int                    `json:"ranking"`
	AcceptanceRate     float64                `json:"acceptanceRate"`
	ContributionPoints int                    `json:"contributionPoints"`
	Reputation         int                    `json:"reputation"`
	Difficulty         []DifficultyBreakdown  `json:"difficulty"`
	CalendarStats      calendar.Stats         `json:"calendarStats"`
	Heatmap            []calendar.HeatmapCell `json:"heatmap"`
	SubmissionCalendar map[string]int         `json:"submissionCalendar"`
}
