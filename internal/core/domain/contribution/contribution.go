// Package contribution models the GitHub contribution calendar served by the
// contributions endpoint.
package contribution

// Day is a single calendar day with its bucketed intensity level.
type Day struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// Week groups seven (or fewer, at the calendar edges) days.
type Week struct {
	Days []Day `json:"days"`
}

// Data is the contributions endpoint payload for a rolling 365-day window.
type Data struct {
	TotalContributions int    `json:"totalContributions"`
	Weeks              []Week `json:"weeks"`
}

// Level buckets a day's contribution count into the fixed 5-level scale used
// by the contribution graph. Monotone non-decreasing in count.
func Level(count int) int {
	switch {
	case count <= 0:
		return 0
	case count <= 2:
		return 1
	case count <= 5:
		return 2
	case count <= 10:
		return 3
	default:
		return 4
	}
}
