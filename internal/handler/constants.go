// Copyright (c) 2025-2026 Fiscal Council of Bulgaria
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixToggle is the suffix for publish/active toggle routes.
	RouteSuffixToggle = "/toggle"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"

	// RouteNews is the news admin route.
	RouteNews = "/news"
	// RouteReports is the reports admin route.
	RouteReports = "/reports"
	// RoutePublications is the publications admin route.
	RoutePublications = "/publications"
	// RouteMembers is the members admin route.
	RouteMembers = "/members"

	// RouteNewsID is the news ID route pattern.
	RouteNewsID = RouteNews + RouteParamID
	// RouteReportsID is the reports ID route pattern.
	RouteReportsID = RouteReports + RouteParamID
	// RoutePublicationsID is the publications ID route pattern.
	RoutePublicationsID = RoutePublications + RouteParamID
	// RouteMembersID is the members ID route pattern.
	RouteMembersID = RouteMembers + RouteParamID
)

// Redirect targets.
const (
	redirectHome         = "/"
	redirectAdmin        = "/admin"
	redirectLogin        = "/login"
	redirectNews         = "/admin/news"
	redirectReports      = "/admin/reports"
	redirectPublications = "/admin/publications"
	redirectMembers      = "/admin/members"
)
