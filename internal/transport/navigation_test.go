package transport_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jqzhang/crmsheet/internal/transport"
)

func TestParseNavigation(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  transport.Navigation
	}{
		{"empty", "", transport.Navigation{Tab: transport.TabView}},
		{"unknown tab", "tab=bogus", transport.Navigation{Tab: transport.TabView}},
		{"view", "tab=view", transport.Navigation{Tab: transport.TabView}},
		{"new", "tab=new", transport.Navigation{Tab: transport.TabNew}},
		{"progress with customer", "tab=progress&cid=AB12CD34",
			transport.Navigation{Tab: transport.TabProgress, CustomerID: "AB12CD34"}},
		{"cid ignored off progress", "tab=view&cid=AB12CD34", transport.Navigation{Tab: transport.TabView}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			require.Equal(t, tt.want, transport.ParseNavigation(q))
		})
	}
}

func TestNavigationQueryRoundTrip(t *testing.T) {
	nav := transport.Navigation{Tab: transport.TabProgress, CustomerID: "AB12CD34"}
	require.Equal(t, nav, transport.ParseNavigation(nav.Query()))

	nav = transport.Navigation{Tab: transport.TabNew}
	require.Equal(t, nav, transport.ParseNavigation(nav.Query()))
}
