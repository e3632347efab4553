// Package db stores users for the mock backend in SQLite.
//
// Every column is TEXT: values are kept exactly as the client sent them,
// so an age of "forty" round-trips unchanged.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when no user has the requested id.
var ErrNotFound = errors.New("user not found")

// Columns are the user attributes besides user_id, in display order.
var Columns = []string{"name", "city", "age", "phone_number", "email"}

// User is one stored record. Unset attributes are absent from Fields.
type User struct {
	ID     string
	Fields map[string]string
}

// Store is a SQLite-backed user table
type Store struct {
	db           *sql.DB
	dataSource   string
	queryTimeout time.Duration
}

const schema = `CREATE TABLE IF NOT EXISTS users (
	user_id      TEXT PRIMARY KEY,
	name         TEXT,
	city         TEXT,
	age          TEXT,
	phone_number TEXT,
	email        TEXT
)`

// Open opens (and migrates) the store described by connectionString.
// Accepted forms: "", ":memory:", "sqlite::memory:", "sqlite://path",
// "sqlite:path" or a bare file path. Empty means in-memory.
func Open(connectionString string) (*Store, error) {
	dsn := parseConnectionString(connectionString)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}

	return &Store{
		db:           db,
		dataSource:   dsn,
		queryTimeout: 5 * time.Second,
	}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DataSource reports the resolved SQLite DSN.
func (s *Store) DataSource() string {
	return s.dataSource
}

// Get loads one user.
func (s *Store) Get(ctx context.Context, id string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	query := "SELECT " + strings.Join(Columns, ", ") + " FROM users WHERE user_id = ?"
	values := make([]sql.NullString, len(Columns))
	ptrs := make([]any, len(Columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	err := s.db.QueryRowContext(ctx, query, id).Scan(ptrs...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	u := &User{ID: id, Fields: make(map[string]string)}
	for i, col := range Columns {
		if values[i].Valid {
			u.Fields[col] = values[i].String
		}
	}
	return u, nil
}

// Create inserts u. Unknown field names are ignored.
func (s *Store) Create(ctx context.Context, u *User) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	cols := []string{"user_id"}
	args := []any{u.ID}
	for _, col := range Columns {
		if v, ok := u.Fields[col]; ok {
			cols = append(cols, col)
			args = append(args, v)
		}
	}

	query := fmt.Sprintf("INSERT INTO users (%s) VALUES (%s)",
		strings.Join(cols, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

// Update overwrites the given fields of user id and returns the result.
// Unknown field names are ignored.
func (s *Store) Update(ctx context.Context, id string, fields map[string]string) (*User, error) {
	var sets []string
	var args []any
	for _, col := range Columns {
		if v, ok := fields[col]; ok {
			sets = append(sets, col+" = ?")
			args = append(args, v)
		}
	}

	if len(sets) > 0 {
		qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()

		args = append(args, id)
		query := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE user_id = ?"
		res, err := s.db.ExecContext(qctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("update failed: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil, ErrNotFound
		}
	}

	return s.Get(ctx, id)
}

// Count returns the number of stored users.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	return n, nil
}

func parseConnectionString(connStr string) string {
	connStr = strings.TrimSpace(connStr)

	switch {
	case connStr == "":
		return ":memory:"
	case strings.HasPrefix(connStr, "sqlite://"):
		return strings.TrimPrefix(connStr, "sqlite://")
	case strings.HasPrefix(connStr, "sqlite:"):
		return strings.TrimPrefix(connStr, "sqlite:")
	}
	return connStr
}
