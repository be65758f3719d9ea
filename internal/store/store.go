package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("store: record not found")

// Collection names.
const (
	CollectionSessions        = "sessions"
	CollectionSkillStats      = "skill_stats"
	CollectionRecommendations = "recommendations"
	CollectionSettings        = "settings"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs auto-migration.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer keeps in-memory databases and WAL files consistent.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, drv: drv}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// SkillStatsRepo returns a SkillStatsRepo backed by this store.
func (s *Store) SkillStatsRepo() SkillStatsRepo {
	return &skillStatsRepo{r: s.records()}
}

// RecommendationRepo returns a RecommendationRepo backed by this store.
func (s *Store) RecommendationRepo() RecommendationRepo {
	return &recommendationRepo{r: s.records()}
}

// SessionRepo returns a SessionRepo backed by this store.
func (s *Store) SessionRepo() SessionRepo {
	return &sessionRepo{r: s.records()}
}

// SettingsRepo returns a SettingsRepo backed by this store.
func (s *Store) SettingsRepo() SettingsRepo {
	return &settingsRepo{r: s.records()}
}

// ResetUser removes every record that belongs to userID.
func (s *Store) ResetUser(ctx context.Context, userID string) (int64, error) {
	return s.records().deleteUser(ctx, userID)
}

func (s *Store) records() *records {
	return &records{db: s.db}
}

var (
	recordColumns = []*schema.Column{
		{Name: "collection", Type: field.TypeString, Size: 64},
		{Name: "id", Type: field.TypeString, Size: 255},
		{Name: "user_id", Type: field.TypeString, Size: 255},
		{Name: "data", Type: field.TypeJSON},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	recordsTable = &schema.Table{
		Name:       "records",
		Columns:    recordColumns,
		PrimaryKey: []*schema.Column{recordColumns[0], recordColumns[1]},
		Indexes: []*schema.Index{
			{
				Name:    "records_collection_user_id",
				Columns: []*schema.Column{recordColumns[0], recordColumns[2]},
			},
		},
	}
)

func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, recordsTable)
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. ADAPTIQ_DB environment variable
// 2. $XDG_DATA_HOME/adaptiq/adaptiq.db
// 3. ~/.local/share/adaptiq/adaptiq.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("ADAPTIQ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "adaptiq", "adaptiq.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
