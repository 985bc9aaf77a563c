package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gitfolio/gitfolio/internal/core/domain/profile"
	"github.com/gitfolio/gitfolio/internal/core/ports"
	"github.com/sirupsen/logrus"
)

const aboutSystemPrompt = "You are an expert technical writer creating professional developer profiles. " +
	"Your goal is to craft unique, compelling descriptions that authentically represent each developer. " +
	"Avoid generic templates or formulaic language. Instead, analyze the specific data provided and create " +
	"personalized content that highlights what makes this developer distinctive. Focus on their actual " +
	"achievements, technical depth, and unique contributions. Write in a professional yet engaging tone " +
	"suitable for a portfolio website. Every profile should feel authentic and tailored, not templated."

const seoSystemPrompt = "You are an SEO expert. Generate SEO-optimized metadata for developer portfolios."

// GeneratorService produces the about and SEO blocks. A nil completion
// client, a failed call or an unparseable response all degrade to the
// deterministic fallback built only from the profile's own fields.
type GeneratorService struct {
	client ports.CompletionClient
	logger *logrus.Logger
	now    func() time.Time
}

// NewGeneratorService creates the description generator. client may be nil.
func NewGeneratorService(client ports.CompletionClient, logger *logrus.Logger) ports.DescriptionGenerator {
	return &GeneratorService{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// GenerateAbout produces the narrative about block.
func (s *GeneratorService) GenerateAbout(ctx context.Context, p *profile.NormalizedProfile) *profile.AboutData {
	if s.client == nil {
		return FallbackAbout(p)
	}

	opts := ports.CompletionOptions{Temperature: 0.7, MaxTokens: 800}
	text, err := s.client.Complete(ctx, aboutSystemPrompt, s.buildAboutPrompt(p), opts)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"username": p.Username}).WithError(err).Warn("generator: about completion failed, using fallback")
		}
		return FallbackAbout(p)
	}

	var parsed struct {
		Summary    string   `json:"summary"`
		Highlights []string `json:"highlights"`
		Skills     []string `json:"skills"`
	}
	if err := parseModelJSON(text, &parsed); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"username": p.Username}).WithError(err).Warn("generator: unparseable about response, using fallback")
		}
		return FallbackAbout(p)
	}

	about := &profile.AboutData{
		Summary:    parsed.Summary,
		Highlights: parsed.Highlights,
		Skills:     parsed.Skills,
	}
	if about.Highlights == nil {
		about.Highlights = []string{}
	}
	if about.Skills == nil {
		about.Skills = []string{}
	}
	return about
}

// GenerateSEO produces the page metadata block.
func (s *GeneratorService) GenerateSEO(ctx context.Context, p *profile.NormalizedProfile) *profile.SEOData {
	if s.client == nil {
		return FallbackSEO(p)
	}

	opts := ports.CompletionOptions{Temperature: 0.5, MaxTokens: 300}
	text, err := s.client.Complete(ctx, seoSystemPrompt, buildSEOPrompt(p), opts)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"username": p.Username}).WithError(err).Warn("generator: seo completion failed, using fallback")
		}
		return FallbackSEO(p)
	}

	var parsed struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Keywords    []string `json:"keywords"`
	}
	if err := parseModelJSON(text, &parsed); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"username": p.Username}).WithError(err).Warn("generator: unparseable seo response, using fallback")
		}
		return FallbackSEO(p)
	}

	seo := &profile.SEOData{
		Title:       parsed.Title,
		Description: parsed.Description,
		Keywords:    parsed.Keywords,
	}
	if seo.Keywords == nil {
		seo.Keywords = []string{}
	}
	return seo
}

func (s *GeneratorService) buildAboutPrompt(p *profile.NormalizedProfile) string {
	var metrics string
	if p.Metrics != nil {
		metrics = fmt.Sprintf("\nPRs Merged: %d\nPRs Open: %d\nTotal Contributions: %d\nIssues Opened: %d\nIssues Closed: %d\n",
			p.Metrics.PRsMerged, p.Metrics.PRsOpen, p.Metrics.TotalContributions, p.Metrics.IssuesOpened, p.Metrics.IssuesClosed)
	}

	yearsActive := 0
	memberSince := "N/A"
	if created, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
		yearsActive = int(s.now().Sub(created).Hours() / (24 * 365))
		memberSince = fmt.Sprintf("%d", created.Year())
	}
	yearsLabel := "N/A"
	if yearsActive > 0 {
		yearsLabel = fmt.Sprintf("%d", yearsActive)
	}

	contributionRate := 0
	if p.Metrics != nil && p.Metrics.TotalContributions > 0 && yearsActive > 0 {
		contributionRate = p.Metrics.TotalContributions / yearsActive
	}
	var rateLine string
	if contributionRate > 0 {
		rateLine = fmt.Sprintf("Average Contributions/Year: %d", contributionRate)
	}

	prsMerged, totalContributions := 0, 0
	if p.Metrics != nil {
		prsMerged = p.Metrics.PRsMerged
		totalContributions = p.Metrics.TotalContributions
	}

	return fmt.Sprintf(`Analyze the following developer profile and create a unique, professional description that authentically represents their work and achievements. Avoid generic templates or formulaic language.

Developer Profile:
Name: %s
Username: %s
Bio: %s
Location: %s
Company: %s
Website: %s
Public Repositories: %d
Followers: %d
Following: %d
GitHub Member Since: %s
Years Active: %s
%s
%s

Based on this data, generate:

1. Summary (3-4 sentences, 150-200 words):
   - Write a compelling narrative that tells their story, not a template
   - If they have a bio, use it as context but expand and professionalize it
   - Highlight what makes them unique: their contribution patterns, repository count, community engagement, or professional background
   - If they have high metrics, emphasize their impact and consistency
   - If they're newer, focus on their growth trajectory and potential
   - Mention specific achievements (e.g., "maintains X repositories" vs "has repositories")
   - Connect their work to real-world impact when possible
   - Use varied sentence structure - avoid repetitive patterns
   - DO NOT use phrases like "is a skilled developer" or "has expertise in" unless contextually appropriate

2. Highlights (4-5 items):
   - Prioritize the most impressive and unique metrics
   - Format: Concise, metric-focused statements
   - Include: "%d public repositories" (if > 0)
   - Include: "%d GitHub followers" (if > 0)
   - Include: "%d merged pull requests" (if > 0 and > 10)
   - Include: "%d total contributions" (if > 0 and > 100)
   - Include: "%d average contributions per year" (if > 50)
   - Include: "Active for %s years" (if >= 3)
   - Include: "Based in %s" (if location exists and is meaningful)
   - Only include metrics that are meaningful (avoid zeros or very low numbers)

3. Skills (6-10 items):
   - Infer skills from their activity patterns, not from generic assumptions
   - If they have many repos: "Repository Management", "Project Architecture"
   - If they have many PRs: "Code Review", "Collaborative Development"
   - If they have many contributions: "Open Source Contributions", "Community Engagement"
   - If they have a company: "Enterprise Software Development"
   - If years active >= 5: "Software Engineering", "Technical Leadership"
   - Always include: "Version Control" (they use Git)
   - Add technical skills based on their bio if mentioned
   - Use specific, professional terminology
   - Avoid generic terms like "Coding" or "Programming"

CRITICAL:
- Create unique content, not a template
- Analyze the actual data to infer their focus areas
- Return ONLY valid JSON - no markdown, no explanations
- Start with { and end with }

{
  "summary": "Write a unique, compelling 3-4 sentence professional summary...",
  "highlights": ["metric 1", "metric 2", "metric 3", "metric 4"],
  "skills": ["Skill 1", "Skill 2", "Skill 3", ...]
}`,
		p.DisplayName(), p.Username,
		orDefault(p.Bio, "Not provided"),
		orDefault(p.Location, "Not specified"),
		orDefault(p.Company, "Not specified"),
		orDefault(p.Website, "Not specified"),
		p.PublicRepos, p.Followers, p.Following,
		memberSince, yearsLabel, metrics, rateLine,
		p.PublicRepos, p.Followers, prsMerged, totalContributions,
		contributionRate, yearsLabel, p.Location)
}

func buildSEOPrompt(p *profile.NormalizedProfile) string {
	return fmt.Sprintf(`Generate SEO metadata for %s's developer portfolio.

Bio: %s
Public Repositories: %d

Provide:
1. SEO title (50-60 characters)
2. Meta description (150-160 characters)
3. 5-10 relevant keywords

IMPORTANT: Return ONLY valid JSON. Do not include markdown code blocks, explanations, or any text outside the JSON object. Start with { and end with }.

{
  "title": "...",
  "description": "...",
  "keywords": ["...", "..."]
}`, p.DisplayName(), orDefault(p.Bio, "Not provided"), p.PublicRepos)
}

// FallbackAbout builds a deterministic about block from profile fields.
func FallbackAbout(p *profile.NormalizedProfile) *profile.AboutData {
	summary := p.Bio
	if summary == "" {
		summary = fmt.Sprintf("%s is a developer with %d public repositories on GitHub.", p.DisplayName(), p.PublicRepos)
	}
	location := "Active developer"
	if p.Location != "" {
		location = "Based in " + p.Location
	}
	return &profile.AboutData{
		Summary: summary,
		Highlights: []string{
			fmt.Sprintf("%d public repositories", p.PublicRepos),
			fmt.Sprintf("%d followers on GitHub", p.Followers),
			location,
		},
		Skills: []string{"Software Development", "Open Source", "GitHub"},
	}
}

// FallbackSEO builds deterministic page metadata from profile fields.
func FallbackSEO(p *profile.NormalizedProfile) *profile.SEOData {
	name := p.DisplayName()
	description := p.Bio
	if description == "" {
		description = fmt.Sprintf("%s's developer portfolio showcasing projects and contributions on GitHub.", name)
	}
	return &profile.SEOData{
		Title:       name + " - Developer Portfolio",
		Description: description,
		Keywords:    []string{"developer", "portfolio", "github", p.Username, "software engineer"},
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

var (
	fencedJSONPattern   = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*\\})\\s*```")
	anyObjectPattern    = regexp.MustCompile(`(?s)\{.*\}`)
	controlCharPattern  = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
	trailingCommaClose  = regexp.MustCompile(`,\s*([}\]])`)
	leadingFencePattern = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	closingFencePattern = regexp.MustCompile("(?i)\\s*```$")
)

// parseModelJSON tolerantly extracts one JSON object from free model text
// and decodes it into out. It first tries a fenced code block, then a
// balanced-brace scan, then a greedy object match, and repairs the common
// defects (fences, control characters, trailing commas) before decoding.
func parseModelJSON(content string, out any) error {
	raw := extractJSON(content)
	if raw == "" {
		return fmt.Errorf("no JSON object found in response")
	}
	return json.Unmarshal([]byte(cleanJSON(raw)), out)
}

func extractJSON(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}

	if m := fencedJSONPattern.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}

	depth, start := 0, -1
	for i, r := range trimmed {
		switch r {
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			depth--
			if depth == 0 && start != -1 {
				return trimmed[start : i+1]
			}
		}
	}

	return anyObjectPattern.FindString(trimmed)
}

func cleanJSON(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = leadingFencePattern.ReplaceAllString(cleaned, "")
	cleaned = closingFencePattern.ReplaceAllString(cleaned, "")
	cleaned = controlCharPattern.ReplaceAllString(cleaned, "")
	cleaned = trailingCommaClose.ReplaceAllString(cleaned, "$1")
	return cleaned
}
