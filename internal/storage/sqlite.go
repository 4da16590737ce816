package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bunchhieng/arx/internal/model"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteSnapshot mirrors the bookmark collection into a SQLite database so it
// can be queried with SQL tools. Rows are keyed by bookmark UID.
type SQLiteSnapshot struct {
	db *sqlx.DB
}

// OpenSnapshot opens (or creates) the snapshot database at dbPath.
func OpenSnapshot(dbPath string) (*SQLiteSnapshot, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	var dsn string
	if dbPath == ":memory:" {
		dsn = dbPath + "?_pragma=journal_mode(DELETE)&_pragma=synchronous(NORMAL)"
	} else {
		dsn = dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps :memory: databases alive across calls.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteSnapshot{db: db}, nil
}

type bookmarkRow struct {
	UID       string         `db:"uid"`
	Position  int            `db:"position"`
	Title     string         `db:"title"`
	URL       sql.NullString `db:"url"`
	Category  string         `db:"category"`
	Tags      sql.NullString `db:"tags"`
	Notes     sql.NullString `db:"notes"`
	Status    string         `db:"status"`
	Hidden    bool           `db:"hidden"`
	CreatedAt string         `db:"created_at"`
}

func newBookmarkRow(position int, b model.Bookmark) bookmarkRow {
	category, _ := b.Category.MarshalText()
	status, _ := b.Status.MarshalText()
	return bookmarkRow{
		UID:       b.UID,
		Position:  position,
		Title:     b.Title,
		URL:       nullString(b.URL),
		Category:  string(category),
		Tags:      encodeTags(b.Tags),
		Notes:     nullString(b.Notes),
		Status:    string(status),
		Hidden:    b.Hidden,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (r *bookmarkRow) toBookmark() (model.Bookmark, error) {
	b := model.Bookmark{
		ID:        r.Position,
		UID:       r.UID,
		Title:     r.Title,
		Hidden:    r.Hidden,
		CreatedAt: parseSQLiteTime(r.CreatedAt),
	}
	if err := b.Category.UnmarshalText([]byte(r.Category)); err != nil {
		return b, fmt.Errorf("bookmark %s: %w", r.UID, err)
	}
	if err := b.Status.UnmarshalText([]byte(r.Status)); err != nil {
		return b, fmt.Errorf("bookmark %s: %w", r.UID, err)
	}
	if r.URL.Valid {
		b.URL = r.URL.String
	}
	if r.Notes.Valid {
		b.Notes = r.Notes.String
	}
	if r.Tags.Valid {
		if err := json.Unmarshal([]byte(r.Tags.String), &b.Tags); err != nil {
			return b, fmt.Errorf("bookmark %s: decode tags: %w", r.UID, err)
		}
	}
	return b, nil
}

// Write replaces the snapshot contents with bookmarks in a single transaction.
func (s *SQLiteSnapshot) Write(ctx context.Context, source string, bookmarks []model.Bookmark) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM bookmarks"); err != nil {
		return fmt.Errorf("clear bookmarks: %w", err)
	}

	for i, b := range bookmarks {
		if b.UID == "" {
			b.UID = model.NewUID()
		}
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO bookmarks (uid, position, title, url, category, tags, notes, status, hidden, created_at)
			VALUES (:uid, :position, :title, :url, :category, :tags, :notes, :status, :hidden, :created_at)
		`, newBookmarkRow(i, b))
		if err != nil {
			return fmt.Errorf("insert bookmark %q: %w", b.Title, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshot_meta (id, source, exported_at, count) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET source = excluded.source, exported_at = excluded.exported_at, count = excluded.count
	`, source, time.Now().UTC().Format(time.RFC3339), len(bookmarks))
	if err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Read returns the snapshot's bookmarks in their stored order.
func (s *SQLiteSnapshot) Read(ctx context.Context) ([]model.Bookmark, error) {
	var rows []bookmarkRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT uid, position, title, url, category, tags, notes, status, hidden, created_at
		FROM bookmarks
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}

	bookmarks := make([]model.Bookmark, 0, len(rows))
	for i := range rows {
		b, err := rows[i].toBookmark()
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, nil
}

// Count returns the number of bookmarks in the snapshot.
func (s *SQLiteSnapshot) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM bookmarks"); err != nil {
		return 0, fmt.Errorf("count bookmarks: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteSnapshot) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// encodeTags stores tags as a JSON array so tags may hold commas or spaces.
func encodeTags(tags []string) sql.NullString {
	if len(tags) == 0 {
		return sql.NullString{}
	}
	data, _ := json.Marshal(tags)
	return sql.NullString{String: string(data), Valid: true}
}

func parseSQLiteTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
