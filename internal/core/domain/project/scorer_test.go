package project

import (
	"math"
	"testing"
	"time"
)

func repoAt(name string, stars, forks int, created, updated time.Time) Repository {
	return Repository{
		Name:      name,
		Stars:     stars,
		Forks:     forks,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

func TestScore_Formula(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	created := now.AddDate(0, 0, -1000)
	updated := now.AddDate(0, 0, -100)

	r := repoAt("r", 50, 10, created, updated)
	got := Score(r, false, now)

	want := math.Log1p(50)*2.0 + math.Log1p(10)*1.5 + 1.5/math.Log1p(1000)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Score = %v, want %v", got, want)
	}
}

func TestScore_PinnedBonus(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	r := repoAt("r", 5, 1, now.AddDate(-2, 0, 0), now.AddDate(0, -1, 0))

	diff := Score(r, true, now) - Score(r, false, now)
	if math.Abs(diff-10.0) > 1e-9 {
		t.Fatalf("pinned bonus = %v, want 10", diff)
	}
}

func TestScore_RecencyTiers(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	created := now.AddDate(0, 0, -2000)

	fresh := Score(repoAt("a", 0, 0, created, now.AddDate(0, 0, -10)), false, now)
	aging := Score(repoAt("b", 0, 0, created, now.AddDate(0, 0, -500)), false, now)
	stale := Score(repoAt("c", 0, 0, created, now.AddDate(0, 0, -900)), false, now)

	if !(fresh > aging && aging > stale) {
		t.Fatalf("expected fresh > aging > stale, got %v %v %v", fresh, aging, stale)
	}
}

func TestScoreRepositories_ExcludesIneligible(t *testing.T) {
	now := time.Now()
	repos := []Repository{
		repoAt("keep", 10, 0, now.AddDate(-1, 0, 0), now),
		{Name: "fork", Fork: true, CreatedAt: now.AddDate(-1, 0, 0), UpdatedAt: now},
		{Name: "archived", Archived: true, CreatedAt: now.AddDate(-1, 0, 0), UpdatedAt: now},
		{Name: "disabled", Disabled: true, CreatedAt: now.AddDate(-1, 0, 0), UpdatedAt: now},
	}

	scored := ScoreRepositories(repos, nil, now)
	if len(scored) != 1 || scored[0].Name != "keep" {
		t.Fatalf("expected only eligible repo, got %v", scored)
	}
}

func TestTopProjects_OrderAndLimit(t *testing.T) {
	now := time.Now()
	created := now.AddDate(-3, 0, 0)
	repos := []Repository{
		repoAt("small", 1, 0, created, now),
		repoAt("big", 500, 100, created, now),
		repoAt("mid", 50, 5, created, now),
	}

	top := TopProjects(repos, []string{"small"}, 2, now)
	if len(top) != 2 {
		t.Fatalf("expected 2 results, got %d", len(top))
	}
	if top[0].Name != "big" {
		t.Fatalf("expected big first, got %s", top[0].Name)
	}
	if !top[1].IsPinned || top[1].Name != "small" {
		t.Fatalf("expected pinned small to beat mid, got %s (pinned=%v)", top[1].Name, top[1].IsPinned)
	}
}
