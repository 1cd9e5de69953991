package sqlite

import (
	"context"
	"database/sql"
)

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// users must be created before bucketlists, bucketlists before bucketitems,
// because of the foreign key constraints.
//
// Timestamps are stored as Unix nanoseconds and written by the store's
// timestamp hook, never by column defaults.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    date_created INTEGER NOT NULL,
    date_modified INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bucketlists (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    created_by INTEGER,
    date_created INTEGER NOT NULL,
    date_modified INTEGER NOT NULL,
    UNIQUE (name, created_by),
    FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS bucketitems (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    done INTEGER NOT NULL DEFAULT 0,
    bucketlist_id INTEGER NOT NULL,
    date_created INTEGER NOT NULL,
    date_modified INTEGER NOT NULL,
    FOREIGN KEY (bucketlist_id) REFERENCES bucketlists(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_bucketlists_created_by ON bucketlists(created_by);
CREATE INDEX IF NOT EXISTS idx_bucketitems_bucketlist_id ON bucketitems(bucketlist_id);
`

// runMigrations executes the schema setup.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
