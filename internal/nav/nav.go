// Package nav describes the main navigation bar.
package nav

import "strings"

// Item is one entry of the main navigation
type Item struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

var mainItems = []Item{
	{Label: "Dashboard", Href: "/dashboard"},
	{Label: "My Trips", Href: "/trips"},
	{Label: "Destinations", Href: "/destinations"},
	{Label: "Stories", Href: "/stories"},
}

// IsActive reports whether href should be highlighted for the current path
func IsActive(path, href string) bool {
	return path == href || strings.HasPrefix(path, href+"/")
}

// Items returns the main navigation with Active set for path
func Items(path string) []Item {
	items := make([]Item, len(mainItems))
	for i, item := range mainItems {
		item.Active = IsActive(path, item.Href)
		items[i] = item
	}
	return items
}
