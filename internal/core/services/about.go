package services

import (
	"strings"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
)

// defaultAboutChars bounds the composed biographical summary.
const defaultAboutChars = 1400

// perSourceChars bounds how much one page may contribute, so a single
// long article cannot crowd out the rest.
const perSourceChars = 600

// assembleAbout composes a biographical summary from fetched page
// text, encyclopedia sources first, with source attribution. This is
// plain text assembly; no generation step is involved.
func assembleAbout(records []domain.Record, limit int) domain.AboutSummary {
	if limit <= 0 {
		limit = defaultAboutChars
	}

	ordered := make([]domain.Record, 0, len(records))
	seen := make(map[int]bool)
	passes := []func(domain.Record) bool{
		func(r domain.Record) bool {
			return strings.Contains(r.Domain, "wikipedia.org")
		},
		func(r domain.Record) bool {
			return r.SourceType == domain.SourceWebArticle
		},
		func(r domain.Record) bool {
			return r.SourceType == domain.SourceTavilyResult
		},
	}
	for _, match := range passes {
		for i, rec := range records {
			if seen[i] || rec.Text == "" || !rec.SourceType.TextBearing() {
				continue
			}
			if match(rec) {
				ordered = append(ordered, rec)
				seen[i] = true
			}
		}
	}

	var about domain.AboutSummary
	var parts []string
	remaining := limit
	for _, rec := range ordered {
		if remaining <= 0 {
			break
		}
		budget := perSourceChars
		if budget > remaining {
			budget = remaining
		}
		text := domain.Truncate(strings.TrimSpace(rec.Text), budget)
		if text == "" {
			continue
		}
		parts = append(parts, text)
		remaining -= len(text)
		about.Sources = append(about.Sources, domain.SourceRef{URL: rec.URL, Title: rec.Title})
	}
	about.Summary = strings.Join(parts, "\n\n")
	return about
}
