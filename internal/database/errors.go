package database

import "errors"

var (
	// ErrCatalogNotFound is returned when opening a catalog that does not exist
	// without CreateIfNotExists.
	ErrCatalogNotFound = errors.New("lead catalog not found: run 'leaddeck import' first")

	// ErrReadOnly is returned when writing to a catalog opened read-only.
	ErrReadOnly = errors.New("lead catalog is opened read-only")

	// ErrCatalogLocked is returned when another import holds the catalog lock.
	ErrCatalogLocked = errors.New("lead catalog is locked by another import")

	// ErrEmptyCatalog is returned when loading leads from a catalog that has
	// never been imported into.
	ErrEmptyCatalog = errors.New("lead catalog contains no leads")

	// ErrDigestMismatch is returned when the stored leads no longer match the
	// digest recorded at import time.
	ErrDigestMismatch = errors.New("lead catalog digest mismatch: re-run 'leaddeck import'")
)
