package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"log/slog"

	"github.com/garnizeh/jobportal/pkg/models"
	"github.com/garnizeh/jobportal/pkg/repository"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO users (email, name, photo, title, location, bio, updated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Email, u.Name, u.Photo, u.Title, u.Location, u.Bio, now())
	if err != nil {
		// The unique index on users.email is the only duplicate detector;
		// there is deliberately no existence pre-check.
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *SQLiteRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT email, name, photo, title, location, bio, updated FROM users WHERE email = ?`, email)
	var u models.User
	if err := row.Scan(&u.Email, &u.Name, &u.Photo, &u.Title, &u.Location, &u.Bio, &u.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &u, nil
}

// UpsertUser merges the non-empty fields of u into the row keyed by u.Email
// and classifies the effect. A write that lands on an existing row without
// changing any field is a login, not an update.
func (r *SQLiteRepo) UpsertUser(ctx context.Context, u *models.User) (models.UpsertOutcome, error) {
	if u == nil {
		return "", fmt.Errorf("user is nil")
	}

	existing, err := r.GetByEmail(ctx, u.Email)
	if err != nil {
		return "", err
	}

	if existing == nil {
		if err := r.CreateUser(ctx, u); err != nil {
			if err == repository.ErrDuplicateEmail {
				// lost a create race; reclassify against the winner's row
				return r.UpsertUser(ctx, u)
			}
			return "", err
		}
		return models.OutcomeCreated, nil
	}

	merged := *existing
	mergeField(&merged.Name, u.Name)
	mergeField(&merged.Photo, u.Photo)
	mergeField(&merged.Title, u.Title)
	mergeField(&merged.Location, u.Location)
	mergeField(&merged.Bio, u.Bio)

	if merged == *existing {
		return models.OutcomeLoginNoop, nil
	}

	_, err = r.conn.Exec(ctx, `UPDATE users SET name = ?, photo = ?, title = ?, location = ?, bio = ?, updated = ? WHERE email = ?`,
		merged.Name, merged.Photo, merged.Title, merged.Location, merged.Bio, now(), u.Email)
	if err != nil {
		return "", err
	}

	r.logger.Debug("user upserted", slog.String("email", u.Email))

	return models.OutcomeUpdated, nil
}

func mergeField(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
