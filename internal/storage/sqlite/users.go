package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/bucketlist/internal/models"
)

const userColumns = `id, username, password_hash, date_created, date_modified`

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.Username == "" {
		return models.ErrUsernameRequired
	}
	if user.PasswordHash == "" {
		return models.ErrPasswordRequired
	}

	s.stampCreated(user)

	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, password_hash, date_created, date_modified)
			 VALUES (?, ?, ?, ?)`,
			user.Username, user.PasswordHash, toNanos(user.DateCreated), toNanos(user.DateModified),
		)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", translateError(err))
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read user id: %w", err)
		}
		user.ID = id
		return nil
	})
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username, ignoring case.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`,
		models.NormalizeUsername(username))

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all users ordered by ID.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// UpdateUser writes the username and password hash of an existing user.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) (bool, error) {
	username := models.NormalizeUsername(user.Username)
	if username == "" {
		return false, models.ErrUsernameRequired
	}

	var found bool
	updated := *user
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var created int64
		err := tx.QueryRowContext(ctx, "SELECT date_created FROM users WHERE id = ?", updated.ID).Scan(&created)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		found = true

		updated.Username = username
		updated.DateCreated = fromNanos(created)
		s.stampModified(&updated)

		_, err = tx.ExecContext(ctx,
			`UPDATE users SET username = ?, password_hash = ?, date_modified = ? WHERE id = ?`,
			updated.Username, updated.PasswordHash, toNanos(updated.DateModified), updated.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", translateError(err))
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if found {
		*user = updated
	}
	return found, nil
}

// DeleteUser removes a user. Owned bucket lists and their items are removed
// in the same transaction by the cascading foreign keys.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, "users", id)
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var created, modified int64
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &created, &modified); err != nil {
		return nil, err
	}
	user.DateCreated = fromNanos(created)
	user.DateModified = fromNanos(modified)
	return user, nil
}
