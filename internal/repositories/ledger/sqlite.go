package ledger

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/repositories/ledger/migrations"
)

const (
	defaultListLimit = 100
	migrationTable   = "schema_migrations"
	upMarker         = "-- +migrate Up"
)

type sqliteRepository struct {
	db *sql.DB
}

// SQLiteConfig contains configuration for the SQLite ledger.
type SQLiteConfig struct {
	Path string
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return errors.InvalidArgument("ledger path is required")
	}
	return nil
}

// NewSQLite opens the ledger database and applies migrations
func NewSQLite(cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := filepath.Clean(cfg.Path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "ping sqlite db")
	}
	if err := migrate(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &sqliteRepository{db: db}, nil
}

func (r *sqliteRepository) Close() error {
	return r.db.Close()
}

func (r *sqliteRepository) Record(ctx context.Context, input RecordInput) error {
	if len(input.Entries) == 0 {
		return nil
	}

	vb := errors.NewValidationBuilder()
	for _, e := range input.Entries {
		if e.CharacterID == "" || e.TemplateID == "" {
			vb.RequiredField("entries.character_id/template_id")
		}
		if e.Kind != KindVendorSale && e.Kind != KindMarketPurchase {
			vb.InvalidField("entries.kind", string(e.Kind))
		}
		errors.ValidatePositive("entries.amount", e.Amount, vb)
	}
	if err := vb.Build(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin ledger transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO trades (
		   kind, character_id, counterparty_id, listing_id, template_id,
		   amount, currency, value, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare ledger insert")
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range input.Entries {
		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		if _, err := stmt.ExecContext(ctx,
			string(e.Kind),
			e.CharacterID,
			e.CounterpartyID,
			e.ListingID,
			e.TemplateID,
			e.Amount,
			string(e.Currency),
			e.Value,
			createdAt.UTC().UnixMilli(),
		); err != nil {
			return errors.Wrap(err, "insert ledger entry")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit ledger transaction")
	}
	return nil
}

func (r *sqliteRepository) ListByCharacter(ctx context.Context, input ListByCharacterInput) (*ListByCharacterOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID cannot be empty")
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, `SELECT
		   id, kind, character_id, counterparty_id, listing_id, template_id,
		   amount, currency, value, created_at
		 FROM trades
		 WHERE character_id = ? OR counterparty_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, input.CharacterID, input.CharacterID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query ledger")
	}
	defer func() { _ = rows.Close() }()

	out := &ListByCharacterOutput{Entries: []Entry{}}
	for rows.Next() {
		var (
			e         Entry
			kind      string
			currency  string
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &kind, &e.CharacterID, &e.CounterpartyID, &e.ListingID,
			&e.TemplateID, &e.Amount, &currency, &e.Value, &createdAt); err != nil {
			return nil, errors.Wrap(err, "scan ledger entry")
		}
		e.Kind = Kind(kind)
		e.Currency = entities.Currency(currency)
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		out.Entries = append(out.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "read ledger rows")
	}

	return out, nil
}

// migrate applies every embedded .sql file once, in name order
func migrate(db *sql.DB, migrationFS fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
		name TEXT PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`); err != nil {
		return errors.Wrap(err, "ensure migration table")
	}

	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return errors.Wrap(err, "read migrations dir")
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		var applied int
		if err := db.QueryRow(`SELECT COUNT(1) FROM `+migrationTable+` WHERE name = ?`, name).Scan(&applied); err != nil {
			return errors.Wrapf(err, "check migration %s", name)
		}
		if applied > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationFS, name)
		if err != nil {
			return errors.Wrapf(err, "read migration %s", name)
		}
		up := string(content)
		if i := strings.Index(up, upMarker); i >= 0 {
			up = up[i+len(upMarker):]
		}

		tx, err := db.Begin()
		if err != nil {
			return errors.Wrapf(err, "begin migration %s", name)
		}
		if _, err := tx.Exec(up); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "apply migration %s", name)
		}
		if _, err := tx.Exec(`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`,
			name, time.Now().UTC().UnixMilli()); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "record migration %s", name)
		}
		if err := tx.Commit(); err != nil {
			return errors.Wrapf(err, "commit migration %s", name)
		}
	}
	return nil
}
