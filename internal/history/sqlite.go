package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore хранит журнал в файле SQLite (WAL, один писатель).
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite открывает или создаёт базу и применяет схему.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("history: открытие базы: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: подключение к базе: %w", err)
	}

	// SQLite допускает одного писателя
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("history: %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: схема: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, rec Record) error {
	inputs, err := json.Marshal(rec.Inputs)
	if err != nil {
		return fmt.Errorf("history: входы: %w", err)
	}

	var value any
	if rec.OK {
		value = rec.Value
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, variant, inputs, ok, value, kind, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			variant = excluded.variant,
			inputs = excluded.inputs,
			ok = excluded.ok,
			value = excluded.value,
			kind = excluded.kind,
			message = excluded.message,
			created_at = excluded.created_at`,
		rec.ID, string(rec.Variant), string(inputs), rec.OK, value,
		rec.Kind, rec.Message, rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("history: запись %s: %w", rec.ID, err)
	}
	return nil
}

const selectColumns = `SELECT id, variant, inputs, ok, value, kind, message, created_at FROM evaluations`

func (s *SQLiteStore) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1 // в SQLite LIMIT -1 означает без ограничения
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: выборка: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec       Record
		variant   string
		inputs    string
		value     sql.NullFloat64
		createdAt string
	)
	if err := sc.Scan(&rec.ID, &variant, &inputs, &rec.OK, &value, &rec.Kind, &rec.Message, &createdAt); err != nil {
		return Record{}, err
	}
	rec.Variant = Variant(variant)
	rec.Value = value.Float64

	if err := json.Unmarshal([]byte(inputs), &rec.Inputs); err != nil {
		return Record{}, fmt.Errorf("history: входы %s: %w", rec.ID, err)
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("history: время %s: %w", rec.ID, err)
	}
	rec.CreatedAt = t
	return rec, nil
}
