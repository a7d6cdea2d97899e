// Package leadstore provides the immutable lead store that every ranking run
// reads from.
//
// A Store is built once from a list of leads, validated as a whole, and never
// mutated afterwards. The Industry and Region category sets are derived at
// construction in first-occurrence order and, together with the content
// digest, form part of the store's identity.
//
// Leads can come from YAML or JSON lead files, from the embedded sample
// dataset, or from the SQLite catalog in package database.
package leadstore
