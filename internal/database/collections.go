package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/matthewp/lodge/internal/models"
)

func (d *DB) CreateCollection(name, slug, description string) (*models.Collection, error) {
	result, err := d.conn.Exec(
		`INSERT INTO collections (name, slug, description) VALUES (?, ?, ?)`,
		name, slug, description,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get collection ID: %w", err)
	}
	return d.GetCollectionByID(int(id))
}

func (d *DB) GetCollections() ([]models.Collection, error) {
	collections := []models.Collection{}
	err := d.conn.Select(&collections, `
		SELECT id, name, slug, description, created_at, updated_at
		FROM collections
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}
	return collections, nil
}

func (d *DB) GetCollectionByID(id int) (*models.Collection, error) {
	var collection models.Collection
	err := d.conn.Get(&collection, `
		SELECT id, name, slug, description, created_at, updated_at
		FROM collections
		WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &collection, nil
}

func (d *DB) GetCollectionBySlug(slug string) (*models.Collection, error) {
	var collection models.Collection
	err := d.conn.Get(&collection, `
		SELECT id, name, slug, description, created_at, updated_at
		FROM collections
		WHERE slug = ?`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &collection, nil
}

func (d *DB) UpdateCollection(id int, name, slug, description string) error {
	result, err := d.conn.Exec(`
		UPDATE collections
		SET name = ?, slug = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		name, slug, description, id)
	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
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

func (d *DB) CreateCollectionField(collectionID int, name, label, fieldType string, required bool, placeholder, defaultValue string, sortOrder int) (*models.CollectionField, error) {
	result, err := d.conn.Exec(`
		INSERT INTO collection_fields (collection_id, name, label, type, required, placeholder, default_value, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		collectionID, name, label, fieldType, required, placeholder, defaultValue, sortOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection field: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get field ID: %w", err)
	}
	return d.GetCollectionFieldByID(int(id))
}

func (d *DB) GetCollectionFields(collectionID int) ([]models.CollectionField, error) {
	fields := []models.CollectionField{}
	err := d.conn.Select(&fields, `
		SELECT id, collection_id, name, label, type, required, placeholder, default_value, sort_order, created_at
		FROM collection_fields
		WHERE collection_id = ?
		ORDER BY sort_order ASC, created_at ASC`,
		collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection fields: %w", err)
	}
	return fields, nil
}

func (d *DB) GetCollectionFieldByID(id int) (*models.CollectionField, error) {
	var field models.CollectionField
	err := d.conn.Get(&field, `
		SELECT id, collection_id, name, label, type, required, placeholder, default_value, sort_order, created_at
		FROM collection_fields
		WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get collection field: %w", err)
	}
	return &field, nil
}

func (d *DB) UpdateCollectionField(id int, name, label, fieldType string, required bool, placeholder, defaultValue string, sortOrder int) error {
	result, err := d.conn.Exec(`
		UPDATE collection_fields
		SET name = ?, label = ?, type = ?, required = ?, placeholder = ?, default_value = ?, sort_order = ?
		WHERE id = ?`,
		name, label, fieldType, required, placeholder, defaultValue, sortOrder, id)
	if err != nil {
		return fmt.Errorf("failed to update collection field: %w", err)
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

func (d *DB) DeleteCollectionField(id int) error {
	result, err := d.conn.Exec(`DELETE FROM collection_fields WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete collection field: %w", err)
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
