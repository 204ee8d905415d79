// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the content filtering logic shared by the public
// list pages.
package service

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fiscalcouncil-bg/fcsite/internal/model"
)

// NewsFilter narrows a fetched news list. Zero values mean "no constraint";
// all set criteria must match (conjunctive).
type NewsFilter struct {
	Search   string // case-insensitive substring over BG title and excerpt
	Category string // exact match
	Year     string // publication year of created_at
}

// ReportFilter narrows a fetched report list.
type ReportFilter struct {
	Search string // case-insensitive substring over BG title, description, keywords
	Type   string // exact match
	Year   string
}

// PublicationFilter narrows a fetched publication list.
type PublicationFilter struct {
	Search string // case-insensitive substring over BG title and description
	Type   string // exact match
	Year   string
}

func matchesSearch(needle string, haystacks ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func matchesYear(year string, createdYear int) bool {
	if year == "" {
		return true
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return false
	}
	return y == createdYear
}

// FilterNews returns the news items satisfying every set criterion, in the
// input order. The input slice is never modified.
func FilterNews(items []model.News, f NewsFilter) []model.News {
	var out []model.News
	for _, n := range items {
		if f.Category != "" && n.Category != f.Category {
			continue
		}
		if !matchesYear(f.Year, n.CreatedAt.Year()) {
			continue
		}
		if !matchesSearch(f.Search, n.TitleBG, n.ExcerptBG.String) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// FilterReports returns the reports satisfying every set criterion, in the
// input order. Keyword search covers both language lists.
func FilterReports(items []model.Report, f ReportFilter) []model.Report {
	var out []model.Report
	for _, r := range items {
		if f.Type != "" && r.ReportType != f.Type {
			continue
		}
		if !matchesYear(f.Year, r.CreatedAt.Year()) {
			continue
		}
		fields := []string{r.TitleBG, r.DescriptionBG.String}
		fields = append(fields, r.KeywordsBG...)
		fields = append(fields, r.KeywordsEN...)
		if !matchesSearch(f.Search, fields...) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterPublications returns the publications satisfying every set
// criterion, in the input order.
func FilterPublications(items []model.Publication, f PublicationFilter) []model.Publication {
	var out []model.Publication
	for _, p := range items {
		if f.Type != "" && p.PublicationType != f.Type {
			continue
		}
		if !matchesYear(f.Year, p.CreatedAt.Year()) {
			continue
		}
		if !matchesSearch(f.Search, p.TitleBG, p.DescriptionBG.String) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Years returns the distinct years of the given timestamps in descending
// order, for the year dropdowns on the list pages.
func Years(times []time.Time) []int {
	seen := make(map[int]bool)
	var years []int
	for _, t := range times {
		y := t.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// NewsYears collects the year dropdown values for a news list.
func NewsYears(items []model.News) []int {
	times := make([]time.Time, len(items))
	for i, n := range items {
		times[i] = n.CreatedAt
	}
	return Years(times)
}

// ReportYears collects the year dropdown values for a report list.
func ReportYears(items []model.Report) []int {
	times := make([]time.Time, len(items))
	for i, r := range items {
		times[i] = r.CreatedAt
	}
	return Years(times)
}

// PublicationYears collects the year dropdown values for a publication list.
func PublicationYears(items []model.Publication) []int {
	times := make([]time.Time, len(items))
	for i, p := range items {
		times[i] = p.CreatedAt
	}
	return Years(times)
}
