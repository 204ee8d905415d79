// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the sitemap and robots.txt for the public site.
package seo

import (
	"encoding/xml"
	"fmt"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
)

// SitemapURL is a single URL entry.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap is the complete urlset document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder accumulates URLs and renders the XML.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder rooted at siteURL.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{siteURL: siteURL}
}

// AddHomepage adds the homepage entry.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL,
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	})
}

// AddStaticPage adds a fixed public page (about, contacts and the like).
func (b *SitemapBuilder) AddStaticPage(path string) {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + path,
		ChangeFreq: ChangeFreqMonthly,
		Priority:   "0.6",
	})
}

// AddListPage adds a content list page (news, reports, publications).
func (b *SitemapBuilder) AddListPage(path string, updatedAt time.Time) {
	url := SitemapURL{
		Loc:        b.siteURL + path,
		ChangeFreq: ChangeFreqDaily,
		Priority:   "0.9",
	}
	if !updatedAt.IsZero() {
		url.LastMod = updatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// AddNewsItem adds a single news article by slug.
func (b *SitemapBuilder) AddNewsItem(slug string, updatedAt time.Time) {
	url := SitemapURL{
		Loc:        fmt.Sprintf("%s/news/%s", b.siteURL, slug),
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.8",
	}
	if !updatedAt.IsZero() {
		url.LastMod = updatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// Build renders the sitemap XML with header.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), xmlBytes...), nil
}
