// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapBuilder(t *testing.T) {
	b := NewSitemapBuilder("https://fiscalcouncil.bg")
	b.AddHomepage()
	b.AddListPage("/news", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	b.AddStaticPage("/contacts")
	b.AddNewsItem("stanovishte-proektobyudzhet", time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC))

	out, err := b.Build()
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, xml.Header))
	assert.Contains(t, s, "<loc>https://fiscalcouncil.bg</loc>")
	assert.Contains(t, s, "<loc>https://fiscalcouncil.bg/news</loc>")
	assert.Contains(t, s, "<loc>https://fiscalcouncil.bg/news/stanovishte-proektobyudzhet</loc>")
	assert.Contains(t, s, "<lastmod>2025-08-15T00:00:00Z</lastmod>")

	// The output must parse back as a urlset.
	var parsed Sitemap
	require.NoError(t, xml.Unmarshal(out, &parsed))
	assert.Len(t, parsed.URLs, 4)
	assert.Equal(t, XMLNamespace, parsed.XMLNS)
}

func TestSitemapBuilder_ZeroLastMod(t *testing.T) {
	b := NewSitemapBuilder("https://fiscalcouncil.bg")
	b.AddListPage("/reports", time.Time{})

	out, err := b.Build()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<lastmod>")
}

func TestGenerateRobots(t *testing.T) {
	out := GenerateRobots(RobotsConfig{SiteURL: "https://fiscalcouncil.bg/"})

	assert.Contains(t, out, "User-agent: *")
	assert.Contains(t, out, "Disallow: /admin")
	assert.Contains(t, out, "Disallow: /login")
	assert.Contains(t, out, "Allow: /")
	assert.Contains(t, out, "Sitemap: https://fiscalcouncil.bg/sitemap.xml")
}

func TestGenerateRobots_DisallowAll(t *testing.T) {
	out := GenerateRobots(RobotsConfig{SiteURL: "https://staging.fiscalcouncil.bg", DisallowAll: true})

	assert.Contains(t, out, "Disallow: /\n")
	assert.NotContains(t, out, "Sitemap:")
	assert.NotContains(t, out, "Allow: /")
}
