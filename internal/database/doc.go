// Package database provides the SQLite lead catalog for leaddeck.
//
// The catalog is an authoring artifact: `leaddeck import` validates lead
// files and writes them here once, and ranking runs open the catalog
// read-only as a lead source. Nothing a ranking run computes is written back.
//
// The catalog stores:
//   - Leads, as JSON documents keyed by position so store order survives
//   - Import metadata (source, time, lead count, store digest)
//
// We use SQLite (via modernc.org/sqlite) because the catalog is a single
// file and the driver is CGO-free. Imports are serialized with a lock file
// next to the database (github.com/gofrs/flock) so two concurrent imports
// cannot interleave.
package database
