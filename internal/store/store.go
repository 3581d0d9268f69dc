// Package store handles SQLite persistence for graded corpora.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lexsift/lexsift/internal/cefr"
	"github.com/lexsift/lexsift/internal/corpus"
	"github.com/lexsift/lexsift/internal/grade"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for graded sentences.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sentences (
			id TEXT PRIMARY KEY,
			lang TEXT NOT NULL,
			level TEXT NOT NULL,
			words INTEGER NOT NULL,
			content_words INTEGER NOT NULL,
			max_rank INTEGER NOT NULL,
			avg_rank REAL NOT NULL,
			text TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rejections (
			sentence_id TEXT NOT NULL,
			reason TEXT NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (sentence_id, reason)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sentences_level ON sentences(level);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertGraded stores graded sentences in one transaction. Re-grading the
// same sentence replaces the previous row.
func (s *Store) InsertGraded(ctx context.Context, graded []corpus.Graded) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO sentences (id, lang, level, words, content_words, max_rank, avg_rank, text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, g := range graded {
		_, err = stmt.ExecContext(ctx,
			g.ID,
			g.Lang,
			g.Level.String(),
			g.Metrics.WordsWithStops,
			g.Metrics.WordsWithoutStops,
			g.Metrics.MaxRank,
			g.Metrics.AverageRank,
			g.Text,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// InsertRejections records why sentences were filtered out.
func (s *Store) InsertRejections(ctx context.Context, id, reason, text string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO rejections (sentence_id, reason, text) VALUES (?, ?, ?)`,
		id, reason, text)
	return err
}

// Distribution counts stored sentences per level.
func (s *Store) Distribution(ctx context.Context) (map[cefr.Level]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT level, COUNT(*) FROM sentences GROUP BY level`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[cefr.Level]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		level, err := cefr.Parse(name)
		if err != nil {
			continue // unreadable rows do not poison the report
		}
		counts[level] = n
	}
	return counts, rows.Err()
}

// ByLevel returns up to limit sentences at the given level; limit <= 0
// means all of them.
func (s *Store) ByLevel(ctx context.Context, level cefr.Level, limit int) ([]corpus.Graded, error) {
	query := `SELECT id, lang, level, words, content_words, max_rank, avg_rank, text
		FROM sentences WHERE level = ? ORDER BY id`
	args := []any{level.String()}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []corpus.Graded
	for rows.Next() {
		var g corpus.Graded
		var name string
		var m grade.Metrics
		if err := rows.Scan(&g.ID, &g.Lang, &name, &m.WordsWithStops, &m.WordsWithoutStops, &m.MaxRank, &m.AverageRank, &g.Text); err != nil {
			return nil, err
		}
		if g.Level, err = cefr.Parse(name); err != nil {
			continue
		}
		g.Metrics = m
		out = append(out, g)
	}
	return out, rows.Err()
}

// Count returns the total number of stored sentences.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sentences`).Scan(&n)
	return n, err
}
