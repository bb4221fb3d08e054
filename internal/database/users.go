package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/matthewp/lodge/internal/auth"
	"github.com/matthewp/lodge/internal/models"
)

// CreateUser inserts a user with a bcrypt-hashed password.
func (d *DB) CreateUser(username, password, email, role string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = d.conn.Exec(
		`INSERT INTO users (username, password_hash, email, role) VALUES (?, ?, ?, ?)`,
		username, hash, email, role,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// VerifyUserPassword checks credentials against the stored bcrypt hash.
func (d *DB) VerifyUserPassword(username, password string) error {
	user, err := d.GetUserByUsername(username)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return ErrInvalidPassword
	}
	return nil
}

// GetUserByUsername returns nil, nil when no such user exists.
func (d *DB) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := d.conn.Get(&user,
		`SELECT id, username, password_hash, email, role FROM users WHERE username = ?`,
		username,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (d *DB) GetUsers() ([]models.User, error) {
	users := []models.User{}
	err := d.conn.Select(&users,
		`SELECT id, username, email, role, created_at FROM users ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

func (d *DB) DeleteUser(id int) error {
	result, err := d.conn.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
