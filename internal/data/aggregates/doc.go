// Package aggregates implements the recipe, user-recipe relation and follow
// write boundaries on top of the table repos in internal/data/repos.
//
// Each write runs in one transaction through executeWrite, which maps driver
// failures onto aggregate error codes, opens a span and reports a WriteEvent.
package aggregates
