//-------------------------------------------------------------------------
//
// Sparkify Warehouse ETL
//
// Copyright (c) 2025 - 2026, Sparkify Data Engineering
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/sparkify/warehouse-etl/internal/logging"
	"github.com/sparkify/warehouse-etl/pkg/version"
)

const metadataTable = "etl_metadata"

// SchemaVersion identifies the shape of the star schema. Bumped whenever a
// table definition changes incompatibly.
const SchemaVersion = "1"

// createMetadataTableSQL creates the metadata table if it doesn't exist.
const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS etl_metadata (
    key   VARCHAR(64) PRIMARY KEY,
    value VARCHAR(256) NOT NULL
)`

// SaveResetMetadata records a successful schema reset.
func SaveResetMetadata(ctx context.Context, db Executor) error {
	return saveMetadata(ctx, db, map[string]string{
		"schema_version": SchemaVersion,
		"version":        version.Short(),
		"reset_at":       time.Now().UTC().Format(time.RFC3339),
	})
}

// SaveRunMetadata records a completed ETL run.
func SaveRunMetadata(ctx context.Context, db Executor) error {
	return saveMetadata(ctx, db, map[string]string{
		"last_run_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func saveMetadata(ctx context.Context, db Executor, metadata map[string]string) error {
	if _, err := db.Exec(ctx, createMetadataTableSQL); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	// Delete-then-insert instead of ON CONFLICT: Redshift has no upsert.
	for key, value := range metadata {
		if _, err := db.Exec(ctx, `
            DELETE FROM etl_metadata WHERE key = $1
        `, key); err != nil {
			return fmt.Errorf("failed to clear metadata %s: %w", key, err)
		}
		if _, err := db.Exec(ctx, `
            INSERT INTO etl_metadata (key, value) VALUES ($1, $2)
        `, key, value); err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().Msg("Saved metadata")
	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, db Executor, key string) (string, error) {
	var value string
	err := db.QueryRow(ctx, `
        SELECT value FROM etl_metadata WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// DropMetadata drops the metadata table.
func DropMetadata(ctx context.Context, db Executor) error {
	_, err := db.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", metadataTable))
	return err
}
