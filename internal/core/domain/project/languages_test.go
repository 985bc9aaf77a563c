package project

import (
	"testing"
	"time"
)

func langRepo(name, lang string) Repository {
	now := time.Now()
	return Repository{Name: name, Language: lang, CreatedAt: now, UpdatedAt: now}
}

func TestCountLanguages_UnknownBucket(t *testing.T) {
	repos := []Repository{
		langRepo("a", "Go"),
		langRepo("b", "Go"),
		langRepo("c", ""),
		{Name: "d", Language: "Rust", Fork: true},
	}

	counts := CountLanguages(repos)
	if counts["Go"] != 2 {
		t.Fatalf("Go count = %d, want 2", counts["Go"])
	}
	if counts["Unknown"] != 1 {
		t.Fatalf("Unknown count = %d, want 1", counts["Unknown"])
	}
	if _, ok := counts["Rust"]; ok {
		t.Fatal("fork should not be counted")
	}
}

func TestTopLanguages_ComplexityBeatsVolume(t *testing.T) {
	// One Rust repo against three JavaScript repos: complexity weighting
	// keeps Rust on top despite the lower count.
	repos := []Repository{
		langRepo("r1", "Rust"),
		langRepo("j1", "JavaScript"),
		langRepo("j2", "JavaScript"),
		langRepo("j3", "JavaScript"),
	}

	ranked := TopLanguages(repos, 5)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked languages, got %d", len(ranked))
	}
	if ranked[0].Language != "Rust" {
		t.Fatalf("expected Rust first, got %s", ranked[0].Language)
	}
	if ranked[1].Count != 3 {
		t.Fatalf("JavaScript count = %d, want 3", ranked[1].Count)
	}
}

func TestTopLanguages_UnknownNeverRanked(t *testing.T) {
	repos := []Repository{
		langRepo("a", ""),
		langRepo("b", ""),
		langRepo("c", "Python"),
	}

	ranked := TopLanguages(repos, 5)
	for _, r := range ranked {
		if r.Language == "Unknown" {
			t.Fatal("Unknown must not appear in the ranking")
		}
	}
	if len(ranked) != 1 || ranked[0].Language != "Python" {
		t.Fatalf("unexpected ranking: %v", ranked)
	}
}

func TestTopLanguages_TiesOrderByName(t *testing.T) {
	// Go and C++ carry the same complexity weight, so equal counts tie on
	// score and fall back to name order.
	repos := []Repository{
		langRepo("a", "Go"),
		langRepo("b", "C++"),
	}

	ranked := TopLanguages(repos, 5)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked languages, got %d", len(ranked))
	}
	if ranked[0].Language != "C++" || ranked[1].Language != "Go" {
		t.Fatalf("tie not broken by name: %v", ranked)
	}
}

func TestTopLanguages_Empty(t *testing.T) {
	if got := TopLanguages(nil, 5); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}
