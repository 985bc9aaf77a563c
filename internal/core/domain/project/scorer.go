package project

import (
	"math"
	"sort"
	"time"
)

const (
	starWeight    = 2.0
	forkWeight    = 1.5
	recencyWeight = 1.0
	pinnedWeight  = 10.0

	// DefaultFeaturedCount is how many top-scored repositories make the
	// featured-projects cut.
	DefaultFeaturedCount = 8
)

// Score computes the featured-projects heuristic for one repository:
// log-scaled popularity, a recency bonus that decays with repository age,
// and a flat bonus for pinned repos.
func Score(r Repository, pinned bool, now time.Time) float64 {
	daysSinceCreation := math.Floor(now.Sub(r.CreatedAt).Hours() / 24)
	daysSinceUpdate := math.Floor(now.Sub(r.UpdatedAt).Hours() / 24)

	starScore := math.Log1p(float64(r.Stars)) * starWeight
	forkScore := math.Log1p(float64(r.Forks)) * forkWeight

	recencyBonus := 0.5
	switch {
	case daysSinceUpdate <= 365:
		recencyBonus = 1.5
	case daysSinceUpdate <= 730:
		recencyBonus = 1.0
	}
	recencyScore := recencyWeight * recencyBonus / math.Log1p(daysSinceCreation)

	score := starScore + forkScore + recencyScore
	if pinned {
		score += pinnedWeight
	}
	return score
}

// ScoreRepositories filters out forks/archived/disabled repos, scores the
// rest against the pinned set and returns them ordered by descending score.
// Ties keep input order (the sort is stable).
func ScoreRepositories(repos []Repository, pinnedNames []string, now time.Time) []ScoredRepository {
	pinned := make(map[string]bool, len(pinnedNames))
	for _, name := range pinnedNames {
		pinned[name] = true
	}

	scored := make([]ScoredRepository, 0, len(repos))
	for _, r := range repos {
		if !Eligible(r) {
			continue
		}
		scored = append(scored, ScoredRepository{
			Repository: r,
			Score:      Score(r, pinned[r.Name], now),
			IsPinned:   pinned[r.Name],
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// TopProjects returns the topN highest-scored repositories.
func TopProjects(repos []Repository, pinnedNames []string, topN int, now time.Time) []ScoredRepository {
	scored := ScoreRepositories(repos, pinnedNames, now)
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}
