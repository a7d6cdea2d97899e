// Package model defines the core data structures used throughout leaddeck.
//
// This package contains the following main types:
//   - Lead: A prospective brand collaboration with its four fit metrics
//   - FilterSpec: The caller-owned filter state (industry, region, search, threshold)
//   - ScoreSnapshot: A lead paired with its computed composite score
//   - RegionSummary: Per-region lead count and average score
//   - Deck: The result of one ranking run, ready for report output
//   - Comparison: The difference between two decks
//
// Models live in their own package so that the store, ranking engine,
// pipeline and report writers can share them without import cycles.
// All models serialize to YAML and JSON.
package model
