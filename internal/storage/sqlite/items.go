package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/bucketlist/internal/models"
	"github.com/mmynk/bucketlist/internal/storage"
)

const itemColumns = `id, name, description, done, bucketlist_id, date_created, date_modified`

// CreateItem persists a new item.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.stampCreated(item)

	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO bucketitems (name, description, done, bucketlist_id, date_created, date_modified)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			item.Name, item.Description, item.Done, item.BucketlistID,
			toNanos(item.DateCreated), toNanos(item.DateModified),
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", translateError(err))
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read item id: %w", err)
		}
		item.ID = id
		return nil
	})
}

// GetItem retrieves an item by ID.
func (s *SQLiteStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM bucketitems WHERE id = ?`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// ListItems retrieves items matching filter, ordered by ID.
func (s *SQLiteStore) ListItems(ctx context.Context, filter storage.ItemFilter) ([]*models.Item, error) {
	return s.queryItems(ctx, filter, 0)
}

// FindItem returns the first item matching filter.
func (s *SQLiteStore) FindItem(ctx context.Context, filter storage.ItemFilter) (*models.Item, error) {
	items, err := s.queryItems(ctx, filter, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

func (s *SQLiteStore) queryItems(ctx context.Context, filter storage.ItemFilter, limit int) ([]*models.Item, error) {
	var (
		where []string
		args  []any
	)
	if filter.Name != "" {
		where = append(where, "name = ?")
		args = append(args, filter.Name)
	}
	if filter.BucketlistID != 0 {
		where = append(where, "bucketlist_id = ?")
		args = append(args, filter.BucketlistID)
	}
	if filter.Done != nil {
		where = append(where, "done = ?")
		args = append(args, *filter.Done)
	}

	query := `SELECT ` + itemColumns + ` FROM bucketitems`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// UpdateItem writes the mutable fields of an existing item.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, err
	}

	var found bool
	updated := *item
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var created int64
		err := tx.QueryRowContext(ctx, "SELECT date_created FROM bucketitems WHERE id = ?", updated.ID).Scan(&created)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load item: %w", err)
		}
		found = true

		updated.DateCreated = fromNanos(created)
		s.stampModified(&updated)

		_, err = tx.ExecContext(ctx,
			`UPDATE bucketitems
			 SET name = ?, description = ?, done = ?, bucketlist_id = ?, date_modified = ?
			 WHERE id = ?`,
			updated.Name, updated.Description, updated.Done, updated.BucketlistID, toNanos(updated.DateModified), updated.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update item: %w", translateError(err))
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if found {
		*item = updated
	}
	return found, nil
}

// DeleteItem removes an item by ID.
func (s *SQLiteStore) DeleteItem(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, "bucketitems", id)
}

func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	var created, modified int64
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Done, &item.BucketlistID, &created, &modified); err != nil {
		return nil, err
	}
	item.DateCreated = fromNanos(created)
	item.DateModified = fromNanos(modified)
	return item, nil
}
