package database

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/matthewp/lodge/internal/models"
)

// CreateAPIKey generates a new key, stores its SHA-256 hash, and returns
// the full key. The plaintext key is never stored.
func (d *DB) CreateAPIKey(name string, createdBy int) (string, error) {
	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return "", fmt.Errorf("failed to generate random key: %w", err)
	}

	fullKey := "lodge_" + hex.EncodeToString(keyBytes)
	keyHash := hashKey(fullKey)

	// Only the first 12 characters are kept for display.
	keyPrefix := fullKey[:12] + "..."

	_, err := d.conn.Exec(
		`INSERT INTO api_keys (name, key_hash, key_prefix, created_by) VALUES (?, ?, ?, ?)`,
		name, keyHash, keyPrefix, createdBy,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create API key: %w", err)
	}
	return fullKey, nil
}

func (d *DB) GetAPIKeys() ([]models.APIKey, error) {
	keys := []models.APIKey{}
	err := d.conn.Select(&keys, `
		SELECT id, name, key_hash, key_prefix, scopes, created_by, created_at, last_used_at, is_active
		FROM api_keys
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query API keys: %w", err)
	}
	return keys, nil
}

func (d *DB) DeleteAPIKey(id int) error {
	result, err := d.conn.Exec(`DELETE FROM api_keys WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete API key: %w", err)
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

// ValidateAPIKey resolves a plaintext key to its active record, touching
// last_used_at. Returns nil, nil for unknown or inactive keys.
func (d *DB) ValidateAPIKey(apiKey string) (*models.APIKey, error) {
	var key models.APIKey
	err := d.conn.Get(&key, `
		SELECT id, name, key_hash, key_prefix, scopes, created_by, created_at, last_used_at, is_active
		FROM api_keys
		WHERE key_hash = ? AND is_active = 1`,
		hashKey(apiKey),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to validate API key: %w", err)
	}

	d.conn.Exec(`UPDATE api_keys SET last_used_at = CURRENT_TIMESTAMP WHERE id = ?`, key.ID)
	return &key, nil
}

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
