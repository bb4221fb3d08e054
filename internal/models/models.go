// Package models defines the persistent entities shared by the store and
// the HTTP handlers.
package models

import (
	"database/sql"
	"time"
)

// User is an admin panel account.
type User struct {
	ID           int            `db:"id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	Email        sql.NullString `db:"email"`
	Role         string         `db:"role"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// Collection is a content type: a named group of items with a field schema.
type Collection struct {
	ID          int            `db:"id"`
	Name        string         `db:"name"`
	Slug        string         `db:"slug"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// CollectionField describes one field of a collection's schema.
type CollectionField struct {
	ID           int            `db:"id"`
	CollectionID int            `db:"collection_id"`
	Name         string         `db:"name"`
	Label        string         `db:"label"`
	Type         string         `db:"type"`
	Required     bool           `db:"required"`
	Placeholder  sql.NullString `db:"placeholder"`
	DefaultValue sql.NullString `db:"default_value"`
	SortOrder    int            `db:"sort_order"`
	CreatedAt    time.Time      `db:"created_at"`
}

// Item is a content entry. Data holds the field values as a JSON document.
type Item struct {
	ID           int            `db:"id"`
	CollectionID int            `db:"collection_id"`
	Slug         sql.NullString `db:"slug"`
	Data         string         `db:"data"`
	Status       string         `db:"status"`
	CreatedBy    sql.NullInt64  `db:"created_by"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// APIKey grants read access to the public content API. Only the SHA-256
// hash of the key is stored; the prefix is kept for display.
type APIKey struct {
	ID         int            `db:"id"`
	Name       string         `db:"name"`
	KeyHash    string         `db:"key_hash"`
	KeyPrefix  string         `db:"key_prefix"`
	Scopes     sql.NullString `db:"scopes"`
	CreatedBy  sql.NullInt64  `db:"created_by"`
	CreatedAt  time.Time      `db:"created_at"`
	LastUsedAt sql.NullTime   `db:"last_used_at"`
	IsActive   bool           `db:"is_active"`
}
