package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/leaddeck/internal/leadstore"
	"github.com/nao1215/leaddeck/internal/model"
)

const (
	// FileName is the catalog database file name inside the catalog directory.
	FileName = "leaddeck.db"

	// lockSuffix is appended to the database path to form the lock file path.
	lockSuffix = ".lock"

	// lockRetryDelay is how often a blocked import retries the catalog lock.
	lockRetryDelay = 100 * time.Millisecond
)

// Catalog metadata keys.
const (
	metaSource     = "source"
	metaImportedAt = "imported_at"
	metaLeadCount  = "lead_count"
	metaDigest     = "digest"
)

// Catalog is a SQLite-backed lead catalog.
type Catalog struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// lock guards imports across processes.
	lock *flock.Flock

	// lockTimeout bounds how long ReplaceLeads waits for the lock.
	lockTimeout time.Duration

	readOnly bool
}

// Options configures Catalog behavior.
type Options struct {
	// CreateIfNotExists creates the catalog directory and file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Ignored when ReadOnly is set.
	EnableWAL bool

	// ReadOnly opens the catalog with mode=ro. Ranking runs use this.
	ReadOnly bool

	// LockTimeout bounds how long an import waits for another import to
	// finish. Zero means try once.
	LockTimeout time.Duration
}

// DefaultOptions returns the options used by `leaddeck import`.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
		LockTimeout:       5 * time.Second,
	}
}

// ReadOnlyOptions returns the options used when ranking from a catalog.
func ReadOnlyOptions() Options {
	return Options{
		ReadOnly: true,
	}
}

// Info describes the catalog's current contents.
type Info struct {
	// Path is the database file path.
	Path string `json:"path"`

	// Source describes where the leads were imported from.
	Source string `json:"source"`

	// ImportedAt is when the last import finished. Zero if never imported.
	ImportedAt time.Time `json:"importedAt"`

	// LeadCount is the number of stored leads.
	LeadCount int `json:"leadCount"`

	// Digest is the lead store digest recorded at import time.
	Digest string `json:"digest"`
}

// Open opens or creates a Catalog in dbDir.
func Open(dbDir string, opts Options) (*Catalog, error) {
	dbPath := filepath.Join(dbDir, FileName)

	create := opts.CreateIfNotExists && !opts.ReadOnly
	if !create {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check catalog path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}

	// modernc.org/sqlite takes the open mode as a query parameter:
	// ro never writes, rw refuses to create, rwc creates on demand.
	var dsn string
	switch {
	case opts.ReadOnly:
		dsn = dbPath + "?mode=ro"
	case create:
		dsn = dbPath + "?mode=rwc"
	default:
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	c := &Catalog{
		db:          db,
		dbPath:      dbPath,
		lock:        flock.New(dbPath + lockSuffix),
		lockTimeout: opts.LockTimeout,
		readOnly:    opts.ReadOnly,
	}

	if opts.ReadOnly {
		if err := db.PingContext(context.Background()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to open catalog: %w", err)
		}
		return c, nil
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := c.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Catalog) Path() string {
	return c.dbPath
}

// LockPath returns the path of the import lock file.
func (c *Catalog) LockPath() string {
	return c.dbPath + lockSuffix
}

// createTables creates the catalog schema if it doesn't exist.
func (c *Catalog) createTables() error {
	schema := `
	-- Leads are stored whole; position preserves store order
	CREATE TABLE IF NOT EXISTS leads (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		industry TEXT NOT NULL,
		location TEXT NOT NULL,
		lead_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leads_industry ON leads(industry);
	CREATE INDEX IF NOT EXISTS idx_leads_location ON leads(location);

	-- Import metadata
	CREATE TABLE IF NOT EXISTS catalog_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := c.db.ExecContext(context.Background(), schema)
	return err
}

// ReplaceLeads replaces the catalog contents with the leads of store in a
// single transaction. Concurrent imports are serialized by the lock file;
// if the lock cannot be taken within LockTimeout, ErrCatalogLocked is returned.
func (c *Catalog) ReplaceLeads(ctx context.Context, store *leadstore.Store, source string) error {
	if c.readOnly {
		return ErrReadOnly
	}

	if err := c.acquireLock(ctx); err != nil {
		return err
	}
	defer func() {
		_ = c.lock.Unlock()
	}()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM leads"); err != nil {
		return fmt.Errorf("failed to clear leads: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO leads (position, id, name, industry, location, lead_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, lead := range store.Leads() {
		leadJSON, err := json.Marshal(lead)
		if err != nil {
			return fmt.Errorf("failed to serialize lead %q: %w", lead.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, i, lead.ID, lead.Name, string(lead.Industry), string(lead.Location), string(leadJSON)); err != nil {
			return fmt.Errorf("failed to insert lead %q: %w", lead.ID, err)
		}
	}

	meta := map[string]string{
		metaSource:     source,
		metaImportedAt: time.Now().UTC().Format(time.RFC3339),
		metaLeadCount:  strconv.Itoa(store.Len()),
		metaDigest:     store.Digest(),
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO catalog_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value); err != nil {
			return fmt.Errorf("failed to write catalog metadata: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

func (c *Catalog) acquireLock(ctx context.Context) error {
	if c.lockTimeout <= 0 {
		locked, err := c.lock.TryLock()
		if err != nil {
			return fmt.Errorf("failed to lock catalog: %w", err)
		}
		if !locked {
			return ErrCatalogLocked
		}
		return nil
	}

	lockCtx, cancel := context.WithTimeout(ctx, c.lockTimeout)
	defer cancel()

	locked, err := c.lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrCatalogLocked
		}
		return fmt.Errorf("failed to lock catalog: %w", err)
	}
	if !locked {
		return ErrCatalogLocked
	}
	return nil
}

// LoadLeads returns the stored leads in import order.
func (c *Catalog) LoadLeads(ctx context.Context) ([]model.Lead, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT lead_json FROM leads ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		var leadJSON string
		if err := rows.Scan(&leadJSON); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}

		var lead model.Lead
		if err := json.Unmarshal([]byte(leadJSON), &lead); err != nil {
			return nil, fmt.Errorf("failed to parse lead: %w", err)
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// LoadStore loads the stored leads into a validated store and checks that
// they still match the digest recorded at import time.
func (c *Catalog) LoadStore(ctx context.Context) (*leadstore.Store, error) {
	leads, err := c.LoadLeads(ctx)
	if err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return nil, ErrEmptyCatalog
	}

	store, err := leadstore.New(leads)
	if err != nil {
		return nil, fmt.Errorf("catalog contains invalid leads: %w", err)
	}

	info, err := c.Info(ctx)
	if err != nil {
		return nil, err
	}
	if info.Digest != "" && info.Digest != store.Digest() {
		return nil, ErrDigestMismatch
	}

	return store, nil
}

// Info returns the catalog's import metadata and lead count.
func (c *Catalog) Info(ctx context.Context) (*Info, error) {
	info := &Info{Path: c.dbPath}

	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&info.LeadCount); err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, `SELECT key, value FROM catalog_meta`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog metadata: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan catalog metadata: %w", err)
		}
		switch key {
		case metaSource:
			info.Source = value
		case metaImportedAt:
			info.ImportedAt = parseTimestamp(value)
		case metaDigest:
			info.Digest = value
		}
	}

	return info, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339,              // What ReplaceLeads writes
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
