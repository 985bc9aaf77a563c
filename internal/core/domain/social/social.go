// Package social recovers canonical LinkedIn/Twitter/Instagram profile URLs
// from free text (a bio or profile README).
//
// READMEs frequently contain other people's social links (copied templates,
// acknowledgements), so every candidate across all patterns is pooled and the
// one whose handle is most similar to the subject's username wins. This is a
// best-effort heuristic, not a guaranteed-accurate matcher.
package social

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Platform identifies a supported social network.
type Platform string

const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
)

// Links holds the extracted canonical profile URLs. Empty fields mean no
// candidate was found for that platform.
type Links struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	X         string `json:"x,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

var linkedinPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/([a-zA-Z0-9-]+)`),
	regexp.MustCompile(`(?i)linkedin\.com/in/([a-zA-Z0-9-]+)`),
	regexp.MustCompile(`(?i)\[LinkedIn\]\((https?://[^\s)]+linkedin\.com[^\s)]+)\)`),
	regexp.MustCompile(`(?i)\[LinkedIn\]\((https?://[^\s)]+linkedin\.com/in/[^\s)]+)\)`),
	regexp.MustCompile(`(?i)linkedin:\s*(https?://\S+)`),
	regexp.MustCompile(`(?i)<a[^>]*href=["'](https?://[^"']*linkedin\.com[^"']*)["'][^>]*>`),
	regexp.MustCompile(`(?i)href=["'](https?://[^"']*linkedin\.com[^"']*)["']`),
	regexp.MustCompile(`(?i)linkedin[:\s]+(?:https?://)?(?:www\.)?linkedin\.com/in/([a-zA-Z0-9-]+)`),
}

var twitterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:twitter\.com|x\.com)/([a-zA-Z0-9_]+)`),
	regexp.MustCompile(`(?i)twitter\.com/([a-zA-Z0-9_]+)`),
	regexp.MustCompile(`(?i)x\.com/([a-zA-Z0-9_]+)`),
	regexp.MustCompile(`(?i)\[Twitter\]\((https?://[^\s)]+(?:twitter|x)\.com[^\s)]+)\)`),
	regexp.MustCompile(`(?i)\[X\]\((https?://[^\s)]+(?:twitter|x)\.com[^\s)]+)\)`),
	regexp.MustCompile(`(?i)twitter:\s*(https?://\S+)`),
	regexp.MustCompile(`(?i)x:\s*(https?://\S+)`),
	regexp.MustCompile(`@([a-zA-Z0-9_]+)`),
}

var instagramPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?instagram\.com/([a-zA-Z0-9_.]+)`),
	regexp.MustCompile(`(?i)instagram\.com/([a-zA-Z0-9_.]+)`),
	regexp.MustCompile(`(?i)\[Instagram\]\((https?://[^\s)]+instagram\.com[^\s)]+)\)`),
	regexp.MustCompile(`(?i)instagram:\s*(https?://\S+)`),
	regexp.MustCompile(`(?i)<a[^>]*href=["'](https?://[^"']*instagram\.com[^"']*)["'][^>]*>`),
}

var (
	socialDomainPattern = regexp.MustCompile(`(?i)linkedin\.com|twitter\.com|x\.com|instagram\.com`)
	leadingBrackets     = regexp.MustCompile(`^[<\[(]+`)
	trailingBrackets    = regexp.MustCompile(`[>\])]+$`)
	leadingHandleJunk   = regexp.MustCompile(`^[@/#]+`)
	handleCharFilter    = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)
	trailingDots        = regexp.MustCompile(`\.+$`)
	linkedinInPrefix    = regexp.MustCompile(`(?i)^in/`)

	linkedinHandlePath  = regexp.MustCompile(`/in/([a-zA-Z0-9-]+)`)
	twitterHandlePath   = regexp.MustCompile(`/([a-zA-Z0-9_]+)$`)
	instagramHandlePath = regexp.MustCompile(`/([a-zA-Z0-9_.]+)$`)
	rawHandlePattern    = regexp.MustCompile(`(?:linkedin\.com/in/|twitter\.com/|x\.com/|instagram\.com/)([a-zA-Z0-9_.-]+)`)
)

// ExtractLinks scans content for social profile links and returns the best
// candidate per platform, judged by handle similarity to username.
func ExtractLinks(content, username string) Links {
	var links Links

	if best := findBestMatch(content, username, linkedinPatterns, PlatformLinkedIn); best != "" {
		links.LinkedIn = normalizeURL(best)
	}

	if best := findBestMatch(content, username, twitterPatterns, PlatformTwitter); best != "" {
		normalized := strings.ReplaceAll(normalizeURL(best), "x.com", "twitter.com")
		links.Twitter = normalized
		links.X = strings.ReplaceAll(normalized, "twitter.com", "x.com")
	}

	if best := findBestMatch(content, username, instagramPatterns, PlatformInstagram); best != "" {
		links.Instagram = normalizeURL(best)
	}

	return links
}

type linkMatch struct {
	url        string
	similarity float64
}

func findBestMatch(content, username string, patterns []*regexp.Regexp, platform Platform) string {
	var best *linkMatch

	for _, pattern := range patterns {
		for _, m := range pattern.FindAllStringSubmatch(content, -1) {
			raw := m[0]
			if len(m) > 1 && m[1] != "" {
				raw = m[1]
			}
			canonical := canonicalize(platform, raw)
			if canonical == "" {
				continue
			}

			score := 0.5
			if handle := extractHandle(canonical); handle != "" {
				score = similarity(strings.ToLower(username), strings.ToLower(handle))
			}

			// Strictly-greater keeps the first-encountered candidate on ties.
			if best == nil || score > best.similarity {
				best = &linkMatch{url: canonical, similarity: score}
			}
		}
	}

	if best == nil {
		return ""
	}
	return best.url
}

// canonicalize turns a raw pattern capture into a canonical profile URL:
// URL-ish captures get their scheme normalized, bare handles are cleaned and
// expanded into the platform's profile URL shape.
func canonicalize(platform Platform, value string) string {
	candidate := strings.TrimSpace(value)
	if candidate == "" {
		return ""
	}

	candidate = leadingBrackets.ReplaceAllString(candidate, "")
	candidate = trailingBrackets.ReplaceAllString(candidate, "")

	looksLikeURL := strings.HasPrefix(candidate, "http://") ||
		strings.HasPrefix(candidate, "https://") ||
		strings.HasPrefix(candidate, "//")

	if looksLikeURL || socialDomainPattern.MatchString(candidate) {
		return normalizeURL(candidate)
	}

	handle := strings.TrimSpace(leadingHandleJunk.ReplaceAllString(candidate, ""))
	if handle == "" {
		return ""
	}
	handle = linkedinInPrefix.ReplaceAllString(handle, "")
	handle = handleCharFilter.ReplaceAllString(handle, "")
	handle = trailingDots.ReplaceAllString(handle, "")
	if handle == "" {
		return ""
	}

	switch platform {
	case PlatformLinkedIn:
		return "https://www.linkedin.com/in/" + handle
	case PlatformTwitter:
		return "https://x.com/" + handle
	case PlatformInstagram:
		return "https://instagram.com/" + handle
	}
	return ""
}

func normalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return "https://" + u
}

func extractHandle(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		if m := rawHandlePattern.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
		return ""
	}

	path := parsed.Path
	host := parsed.Host

	if m := linkedinHandlePath.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	if strings.Contains(host, "twitter.com") || strings.Contains(host, "x.com") {
		if m := twitterHandlePath.FindStringSubmatch(path); m != nil {
			return m[1]
		}
	}
	if strings.Contains(host, "instagram.com") {
		if m := instagramHandlePath.FindStringSubmatch(path); m != nil {
			return m[1]
		}
	}
	return ""
}

// similarity is normalized Levenshtein: (maxLen - distance) / maxLen over
// lowercased strings. Two empty strings are identical.
func similarity(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return float64(maxLen-dist) / float64(maxLen)
}
