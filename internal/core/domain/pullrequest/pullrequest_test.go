package pullrequest

import "testing"

func mergedPR(number int, ownerLogin, ownerName string) MergedPR {
	return MergedPR{
		Number:     number,
		Title:      "change",
		MergedAt:   "2026-01-01T00:00:00Z",
		OwnerLogin: ownerLogin,
		OwnerName:  ownerName,
	}
}

func TestGroupByOrg_ExcludesOwnRepos(t *testing.T) {
	prs := []MergedPR{
		mergedPR(1, "octocat", "Octocat"),
		mergedPR(2, "OctoCat", "Octocat"),
		mergedPR(3, "acme", "Acme Inc"),
	}

	groups := GroupByOrg("octocat", prs)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].OrgLogin != "acme" {
		t.Fatalf("expected acme group, got %s", groups[0].OrgLogin)
	}
}

func TestGroupByOrg_SkipsUnmerged(t *testing.T) {
	prs := []MergedPR{
		{Number: 1, OwnerLogin: "acme"},
		mergedPR(2, "acme", ""),
	}

	groups := GroupByOrg("octocat", prs)
	if len(groups) != 1 || len(groups[0].PRs) != 1 {
		t.Fatalf("expected single merged PR, got %v", groups)
	}
	if groups[0].PRs[0].Number != 2 {
		t.Fatalf("expected PR 2, got %d", groups[0].PRs[0].Number)
	}
}

func TestGroupByOrg_NameFallsBackToLogin(t *testing.T) {
	groups := GroupByOrg("octocat", []MergedPR{mergedPR(1, "acme", "")})
	if groups[0].OrgName != "acme" {
		t.Fatalf("OrgName = %s, want acme", groups[0].OrgName)
	}
}

func TestGroupByOrg_OrderedByCountThenEncounter(t *testing.T) {
	prs := []MergedPR{
		mergedPR(1, "first", "First"),
		mergedPR(2, "second", "Second"),
		mergedPR(3, "third", "Third"),
		mergedPR(4, "third", "Third"),
		mergedPR(5, "second", "Second"),
		mergedPR(6, "third", "Third"),
	}

	groups := GroupByOrg("octocat", prs)
	want := []string{"third", "second", "first"}
	for i, login := range want {
		if groups[i].OrgLogin != login {
			t.Fatalf("groups[%d] = %s, want %s", i, groups[i].OrgLogin, login)
		}
	}
	if len(groups[0].PRs) != 3 {
		t.Fatalf("third group size = %d, want 3", len(groups[0].PRs))
	}
}

func TestGroupByOrg_Empty(t *testing.T) {
	if groups := GroupByOrg("octocat", nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %v", groups)
	}
}
