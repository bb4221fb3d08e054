package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/matthewp/lodge/internal/models"
)

func (d *DB) CreateItem(collectionID int, slug, data, status string, createdBy int) (*models.Item, error) {
	// Empty slugs are stored as NULL so the UNIQUE-style lookups stay sane.
	var slugParam interface{}
	if slug != "" {
		slugParam = slug
	}

	result, err := d.conn.Exec(`
		INSERT INTO items (collection_id, slug, data, status, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		collectionID, slugParam, data, status, createdBy)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get item ID: %w", err)
	}
	return d.GetItem(int(id))
}

func (d *DB) GetItem(id int) (*models.Item, error) {
	var item models.Item
	err := d.conn.Get(&item, `
		SELECT id, collection_id, slug, data, status, created_by, created_at, updated_at
		FROM items WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

func (d *DB) GetItemsByCollection(collectionID int) ([]models.Item, error) {
	items := []models.Item{}
	err := d.conn.Select(&items, `
		SELECT id, collection_id, slug, data, status, created_by, created_at, updated_at
		FROM items
		WHERE collection_id = ?
		ORDER BY created_at DESC`,
		collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	return items, nil
}

func (d *DB) GetItemsByCollectionWithPagination(collectionID, limit, offset int) ([]models.Item, error) {
	items := []models.Item{}
	err := d.conn.Select(&items, `
		SELECT id, collection_id, slug, data, status, created_by, created_at, updated_at
		FROM items
		WHERE collection_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`,
		collectionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	return items, nil
}

func (d *DB) UpdateItem(id int, slug, data, status string) error {
	var slugParam interface{}
	if slug != "" {
		slugParam = slug
	}

	result, err := d.conn.Exec(`
		UPDATE items
		SET slug = ?, data = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		slugParam, data, status, id)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
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

func (d *DB) DeleteItem(id int) error {
	result, err := d.conn.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
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

// GetStats returns entity counts for the dashboard. Individual count
// failures degrade to zero rather than failing the whole call.
func (d *DB) GetStats() (map[string]int, error) {
	stats := map[string]int{}
	for name, table := range map[string]string{
		"collections": "collections",
		"items":       "items",
		"users":       "users",
		"apiKeys":     "api_keys",
	} {
		var count int
		if err := d.conn.Get(&count, "SELECT COUNT(*) FROM "+table); err != nil {
			log.Printf("Failed to get %s count: %v", name, err)
			count = 0
		}
		stats[name] = count
	}
	return stats, nil
}
