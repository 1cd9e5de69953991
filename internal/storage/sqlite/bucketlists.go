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

const bucketlistColumns = `id, name, created_by, date_created, date_modified`

// CreateBucketlist persists a new bucket list.
func (s *SQLiteStore) CreateBucketlist(ctx context.Context, bucketlist *models.Bucketlist) error {
	if err := bucketlist.Validate(); err != nil {
		return err
	}

	s.stampCreated(bucketlist)

	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO bucketlists (name, created_by, date_created, date_modified)
			 VALUES (?, ?, ?, ?)`,
			bucketlist.Name, nullableID(bucketlist.CreatedBy),
			toNanos(bucketlist.DateCreated), toNanos(bucketlist.DateModified),
		)
		if err != nil {
			return fmt.Errorf("failed to insert bucketlist: %w", translateError(err))
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read bucketlist id: %w", err)
		}
		bucketlist.ID = id
		return nil
	})
}

// GetBucketlist retrieves a bucket list by ID.
func (s *SQLiteStore) GetBucketlist(ctx context.Context, id int64) (*models.Bucketlist, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bucketlistColumns+` FROM bucketlists WHERE id = ?`, id)

	bucketlist, err := scanBucketlist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bucketlist: %w", err)
	}
	return bucketlist, nil
}

// ListBucketlists retrieves bucket lists matching filter, ordered by ID.
func (s *SQLiteStore) ListBucketlists(ctx context.Context, filter storage.BucketlistFilter) ([]*models.Bucketlist, error) {
	var (
		where []string
		args  []any
	)
	if filter.Name != "" {
		where = append(where, "name = ?")
		args = append(args, filter.Name)
	}
	switch {
	case filter.CreatedBy != nil:
		where = append(where, "created_by = ?")
		args = append(args, *filter.CreatedBy)
	case filter.Ownerless:
		where = append(where, "created_by IS NULL")
	}

	query := `SELECT ` + bucketlistColumns + ` FROM bucketlists`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bucketlists: %w", err)
	}
	defer rows.Close()

	var bucketlists []*models.Bucketlist
	for rows.Next() {
		bucketlist, err := scanBucketlist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bucketlist: %w", err)
		}
		bucketlists = append(bucketlists, bucketlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bucketlists: %w", err)
	}

	return bucketlists, nil
}

// UpdateBucketlist writes the name and owner of an existing bucket list.
func (s *SQLiteStore) UpdateBucketlist(ctx context.Context, bucketlist *models.Bucketlist) (bool, error) {
	if err := bucketlist.Validate(); err != nil {
		return false, err
	}

	var found bool
	updated := *bucketlist
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var created int64
		err := tx.QueryRowContext(ctx, "SELECT date_created FROM bucketlists WHERE id = ?", updated.ID).Scan(&created)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load bucketlist: %w", err)
		}
		found = true

		updated.DateCreated = fromNanos(created)
		s.stampModified(&updated)

		_, err = tx.ExecContext(ctx,
			`UPDATE bucketlists SET name = ?, created_by = ?, date_modified = ? WHERE id = ?`,
			updated.Name, nullableID(updated.CreatedBy), toNanos(updated.DateModified), updated.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update bucketlist: %w", translateError(err))
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if found {
		*bucketlist = updated
	}
	return found, nil
}

// DeleteBucketlist removes a bucket list and, through ON DELETE CASCADE,
// all of its items.
func (s *SQLiteStore) DeleteBucketlist(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, "bucketlists", id)
}

func scanBucketlist(row rowScanner) (*models.Bucketlist, error) {
	bucketlist := &models.Bucketlist{}
	var (
		createdBy         sql.NullInt64
		created, modified int64
	)
	if err := row.Scan(&bucketlist.ID, &bucketlist.Name, &createdBy, &created, &modified); err != nil {
		return nil, err
	}
	if createdBy.Valid {
		owner := createdBy.Int64
		bucketlist.CreatedBy = &owner
	}
	bucketlist.DateCreated = fromNanos(created)
	bucketlist.DateModified = fromNanos(modified)
	return bucketlist, nil
}

// nullableID maps a nil owner to SQL NULL.
func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
