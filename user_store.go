package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"komibot/internal/model"
)

// UserStore is the persistent store for bot users and their flags.
// An interface so tests can swap in an in-memory implementation.
type UserStore interface {
	UpsertUser(id int64, username, firstName, lastName string) error
	GetUser(id int64) (model.User, bool, error)
	SetAdmin(id int64, isAdmin bool) error
	SetBan(id int64, isBanned bool) error
	SetPro(id int64, isPro bool) error
	SetJoinPassed(id int64, passed bool) error
	ListUsers() ([]model.User, error)
	Close() error
}

// SQLiteUserStore implements UserStore on a local SQLite database.
type SQLiteUserStore struct {
	db *sql.DB
}

func NewSQLiteUserStore(path string) (*SQLiteUserStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: empty db path")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := migrateUsers(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteUserStore{db: db}, nil
}

func migrateUsers(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY,
	username TEXT,
	first_name TEXT,
	last_name TEXT,
	is_admin INTEGER NOT NULL DEFAULT 0,
	is_banned INTEGER NOT NULL DEFAULT 0,
	is_pro INTEGER NOT NULL DEFAULT 0,
	join_passed INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL
);`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: migrate users: %w", err)
	}
	return nil
}

func (s *SQLiteUserStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// UpsertUser inserts the user or refreshes the mutable identity fields.
// Flags are never touched here.
func (s *SQLiteUserStore) UpsertUser(id int64, username, firstName, lastName string) error {
	const q = `
INSERT INTO users (id, username, first_name, last_name, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	username = excluded.username,
	first_name = excluded.first_name,
	last_name = excluded.last_name;`

	if _, err := s.db.Exec(q, id, username, firstName, lastName, time.Now().UTC()); err != nil {
		return fmt.Errorf("sqlite: upsert user %d: %w", id, err)
	}
	return nil
}

func (s *SQLiteUserStore) GetUser(id int64) (model.User, bool, error) {
	// COALESCE: rows created by setFlag never saw the identity columns.
	const q = `
SELECT id, COALESCE(username, ''), COALESCE(first_name, ''), COALESCE(last_name, ''),
	is_admin, is_banned, is_pro, join_passed, created_at
FROM users WHERE id = ?;`

	var u model.User
	err := s.db.QueryRow(q, id).Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName,
		&u.IsAdmin, &u.IsBanned, &u.IsPro, &u.JoinPassed, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("sqlite: get user %d: %w", id, err)
	}
	return u, true, nil
}

func (s *SQLiteUserStore) SetAdmin(id int64, isAdmin bool) error {
	return s.setFlag(id, "is_admin", isAdmin)
}

func (s *SQLiteUserStore) SetBan(id int64, isBanned bool) error {
	return s.setFlag(id, "is_banned", isBanned)
}

func (s *SQLiteUserStore) SetPro(id int64, isPro bool) error {
	return s.setFlag(id, "is_pro", isPro)
}

func (s *SQLiteUserStore) SetJoinPassed(id int64, passed bool) error {
	return s.setFlag(id, "join_passed", passed)
}

// setFlag creates the row if the target user was never seen before, so
// admins can flag users by raw id.
func (s *SQLiteUserStore) setFlag(id int64, column string, value bool) error {
	v := 0
	if value {
		v = 1
	}

	q := fmt.Sprintf(`
INSERT INTO users (id, created_at, %s) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET %s = excluded.%s;`, column, column, column)

	if _, err := s.db.Exec(q, id, time.Now().UTC(), v); err != nil {
		return fmt.Errorf("sqlite: set %s for user %d: %w", column, id, err)
	}
	return nil
}

func (s *SQLiteUserStore) ListUsers() ([]model.User, error) {
	const q = `
SELECT id, COALESCE(username, ''), COALESCE(first_name, ''), COALESCE(last_name, ''),
	is_admin, is_banned, is_pro, join_passed, created_at
FROM users ORDER BY created_at, id;`

	rows, err := s.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.FirstName, &u.LastName,
			&u.IsAdmin, &u.IsBanned, &u.IsPro, &u.JoinPassed, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
