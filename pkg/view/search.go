package view

import (
	"strings"

	"github.com/mkessler/graphlens/pkg/graph"
)

// Matches reports whether a node matches the active search term.
//
// An empty term matches nothing - search is an opt-in boost, not a filter.
// Otherwise the match is a case-insensitive substring test against the
// display name and the ID.
func Matches(n *graph.Node, term string) bool {
	if term == "" {
		return false
	}
	q := strings.ToLower(term)
	return strings.Contains(strings.ToLower(n.DisplayName()), q) ||
		strings.Contains(strings.ToLower(n.ID), q)
}
