package github

import (
	"context"
	"time"

	"github.com/gitfolio/gitfolio/internal/core/domain/contribution"
	"github.com/gitfolio/gitfolio/internal/core/ports"
)

// FetchContributions returns the contribution calendar for the rolling
// one-year window ending now, with per-day counts bucketed into levels.
func (c *Client) FetchContributions(ctx context.Context, username string) (*contribution.Data, error) {
	if c.sharedToken == "" {
		return nil, ports.ErrInvalidCredentials
	}

	to := time.Now().UTC()
	from := to.AddDate(-1, 0, 0)

	var data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	}
	vars := map[string]any{
		"username": username,
		"from":     from.Format(time.RFC3339),
		"to":       to.Format(time.RFC3339),
	}
	if err := c.doGraphQL(ctx, c.sharedToken, contributionsQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, ports.ErrNotFound
	}

	calendar := data.User.ContributionsCollection.ContributionCalendar
	out := &contribution.Data{
		TotalContributions: calendar.TotalContributions,
		Weeks:              make([]contribution.Week, 0, len(calendar.Weeks)),
	}
	for _, week := range calendar.Weeks {
		w := contribution.Week{Days: make([]contribution.Day, 0, len(week.ContributionDays))}
		for _, day := range week.ContributionDays {
			w.Days = append(w.Days, contribution.Day{
				Date:  day.Date,
				Count: day.ContributionCount,
				Level: contribution.Level(day.ContributionCount),
			})
		}
		out.Weeks = append(out.Weeks, w)
	}

	return out, nil
}
