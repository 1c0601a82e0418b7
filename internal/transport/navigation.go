package transport

import "net/url"

// Tab identifies a top-level view the UI can deep-link to.
type Tab string

const (
	TabView     Tab = "view"
	TabProgress Tab = "progress"
	TabNew      Tab = "new"
)

// Navigation is the interaction context of one request, derived from the
// incoming URL every time. It is a value: handlers never keep it between
// requests, so there is no ambient "current customer" state to go stale.
type Navigation struct {
	Tab        Tab    `json:"tab"`
	CustomerID string `json:"cid,omitempty"`
}

// ParseNavigation derives the navigation context from query parameters.
// Unknown or missing tabs fall back to the list view; a customer id is only
// meaningful on the progress tab.
func ParseNavigation(q url.Values) Navigation {
	tab := Tab(q.Get("tab"))
	switch tab {
	case TabView, TabProgress, TabNew:
	default:
		tab = TabView
	}

	nav := Navigation{Tab: tab}
	if tab == TabProgress {
		nav.CustomerID = q.Get("cid")
	}
	return nav
}

// Query encodes the navigation back into URL parameters, for building
// deep links.
func (n Navigation) Query() url.Values {
	q := url.Values{}
	q.Set("tab", string(n.Tab))
	if n.CustomerID != "" {
		q.Set("cid", n.CustomerID)
	}
	return q
}
