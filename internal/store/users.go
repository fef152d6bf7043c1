package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Created      time.Time
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	if username == "" {
		return 0, &ValidationError{Field: "username", Rule: "must not be empty"}
	}
	if _, err := s.UserByName(ctx, username); err == nil {
		return 0, &ConflictError{Name: username}
	} else if !errors.Is(err, ErrNotFound) {
		return 0, err
	}
	res, err := s.execContext(ctx,
		"INSERT INTO users(username, password_hash, created) VALUES(?, ?, ?)",
		username, passwordHash, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) UserByName(ctx context.Context, username string) (*User, error) {
	var u User
	var created int64
	err := s.queryRowContext(ctx,
		"SELECT id, username, password_hash, created FROM users WHERE username=?", username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user by name: %w", err)
	}
	u.Created = time.Unix(created, 0)
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.queryContext(ctx,
		"SELECT id, username, password_hash, created FROM users ORDER BY username")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var created int64
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &created); err != nil {
			return nil, err
		}
		u.Created = time.Unix(created, 0)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) DeleteUser(ctx context.Context, username string) (bool, error) {
	res, err := s.execContext(ctx, "DELETE FROM users WHERE username=?", username)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
