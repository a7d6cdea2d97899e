// Package main provides the entry point for the leaddeck CLI.
//
// leaddeck ranks brand collaboration leads by fit score, filters them by
// industry, region and free-text search, and renders the priority
// activation matrix and lead intelligence deck.
//
// Usage:
//
//	leaddeck rank
//	leaddeck rank --file leads.yaml --industry Fashion --region UAE
//	leaddeck rank --preset uae-fashion --preset high-value --json
//
// See --help for all available options.
package main

func main() {
	Execute()
}
