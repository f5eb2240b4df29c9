package recurso

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"recursoweb/internal/resolve"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore serves recursos from a local SQLite file. It backs development
// runs where no backend API is reachable.
type SQLiteStore struct {
	DB *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and runs
// migrations. ":memory:" opens a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	s := &SQLiteStore{DB: db}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

type migration struct {
	Version int
	Name    string
	SQL     string
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("store not initialized")
	}
	if _, err := s.DB.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  applied_at INTEGER NOT NULL
);`); err != nil {
		return err
	}

	applied, err := s.appliedVersions(ctx)
	if err != nil {
		return err
	}

	files, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return err
	}
	var migs []migration
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		v, err := parseMigrationVersion(name)
		if err != nil {
			return err
		}
		body, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return err
		}
		migs = append(migs, migration{Version: v, Name: name, SQL: string(body)})
	}
	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })

	for _, m := range migs {
		if applied[m.Version] {
			continue
		}
		if err := s.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.Name, err)
		}
	}
	return nil
}

func (s *SQLiteStore) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out[v] = true
	}
	return out, rows.Err()
}

func (s *SQLiteStore) applyMigration(ctx context.Context, m migration) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations(version, applied_at) VALUES(?, ?)`,
		m.Version, time.Now().Unix(),
	); err != nil {
		return err
	}
	return tx.Commit()
}

func parseMigrationVersion(name string) (int, error) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, fmt.Errorf("migration %q: expected <version>_<name>.sql", name)
	}
	v, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, fmt.Errorf("migration %q: %w", name, err)
	}
	return v, nil
}

func (s *SQLiteStore) Find(ctx context.Context, id int64) (Response, error) {
	var entity Recurso
	var ativo int
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, nome, descricao, ativo FROM recurso WHERE id = ?`, id,
	).Scan(&entity.ID, &entity.Nome, &entity.Descricao, &ativo)
	if errors.Is(err, sql.ErrNoRows) {
		return resolve.Absent[Recurso](), nil
	}
	if err != nil {
		return Response{}, fmt.Errorf("find recurso %d: %w", id, err)
	}

	entity.Ativo = ativo != 0
	return Response{StatusCode: http.StatusOK, Body: &entity}, nil
}

func (s *SQLiteStore) Query(ctx context.Context, page int, size int) (Page, error) {
	page = sanitizePage(page)
	size = sanitizeSize(size)

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM recurso`).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("count recursos: %w", err)
	}
	// Compared before multiplying so a huge page cannot overflow the offset.
	if page-1 > total/size {
		return newPage(nil, page, size, total), nil
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, nome, descricao, ativo FROM recurso ORDER BY id LIMIT ? OFFSET ?`,
		size, (page-1)*size,
	)
	if err != nil {
		return Page{}, fmt.Errorf("query recursos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []Recurso{}
	for rows.Next() {
		var entity Recurso
		var ativo int
		if err := rows.Scan(&entity.ID, &entity.Nome, &entity.Descricao, &ativo); err != nil {
			return Page{}, err
		}
		entity.Ativo = ativo != 0
		items = append(items, entity)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}

	return newPage(items, page, size, total), nil
}

// Upsert inserts or replaces the given recursos in one transaction.
func (s *SQLiteStore) Upsert(ctx context.Context, items []Recurso) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, item := range items {
		if item.ID < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidID, item.ID)
		}
		ativo := 0
		if item.Ativo {
			ativo = 1
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO recurso (id, nome, descricao, ativo) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET nome = excluded.nome, descricao = excluded.descricao, ativo = excluded.ativo`,
			item.ID, item.Nome, item.Descricao, ativo,
		); err != nil {
			return fmt.Errorf("upsert recurso %d: %w", item.ID, err)
		}
	}
	return tx.Commit()
}
