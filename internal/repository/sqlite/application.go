package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"log/slog"

	"github.com/google/uuid"

	"github.com/garnizeh/jobportal/pkg/models"
	"github.com/garnizeh/jobportal/pkg/repository"
)

// SubmitApplication bumps the job's counter and records the application in
// one transaction. The increment is a single UPDATE so concurrent submissions
// against the same job never lose a count, and its affected-row count doubles
// as the job-existence check.
func (r *SQLiteRepo) SubmitApplication(ctx context.Context, a *models.Application) error {
	if a == nil {
		return fmt.Errorf("application is nil")
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	if a.Created == 0 {
		a.Created = now()
	}

	tx, err := r.conn.GetConn().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE jobs SET application_count = application_count + 1 WHERE id = ?`, a.JobID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO applications (id, job_id, applicant_email, applicant_name, applicant_photo, resume_link, cover_note, status, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.JobID, a.ApplicantEmail, a.ApplicantName, a.ApplicantPhoto, a.ResumeLink, a.CoverNote, a.Status, a.Created); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.logger.Debug("application submitted",
		slog.String("job_id", a.JobID),
		slog.String("applicant", a.ApplicantEmail),
	)

	return nil
}

const applicationColumns = `id, job_id, applicant_email, applicant_name, applicant_photo, resume_link, cover_note, status, created`

func (r *SQLiteRepo) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	return r.listApplications(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = ? ORDER BY created DESC`, jobID)
}

func (r *SQLiteRepo) ListByApplicant(ctx context.Context, email string) ([]models.Application, error) {
	return r.listApplications(ctx, `SELECT `+applicationColumns+` FROM applications WHERE applicant_email = ? ORDER BY created DESC`, email)
}

func (r *SQLiteRepo) listApplications(ctx context.Context, query string, args ...any) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.ApplicantEmail, &a.ApplicantName, &a.ApplicantPhoto, &a.ResumeLink, &a.CoverNote, &a.Status, &a.Created); err != nil {
			return nil, err
		}

		out = append(out, a)
	}

	return out, rows.Err()
}

// UpdateStatus enforces the transition table. The UPDATE is guarded on the
// status the transition was validated against, so a concurrent move to a
// different state cannot be overwritten.
func (r *SQLiteRepo) UpdateStatus(ctx context.Context, id string, next models.ApplicationStatus) error {
	row := r.conn.QueryRow(ctx, `SELECT status FROM applications WHERE id = ?`, id)
	var current models.ApplicationStatus
	if err := row.Scan(&current); err != nil {
		if err == sql.ErrNoRows {
			return repository.ErrNotFound
		}

		return err
	}

	if !current.CanTransitionTo(next) {
		return repository.ErrInvalidTransition
	}

	res, err := r.conn.Exec(ctx, `UPDATE applications SET status = ? WHERE id = ? AND status = ?`, next, id, current)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// status moved underneath us; the validated transition no longer applies
		return repository.ErrInvalidTransition
	}

	return nil
}

// GetAppliedJobView joins the applicant and the posting into the composite
// the applied-jobs screen renders.
func (r *SQLiteRepo) GetAppliedJobView(ctx context.Context, email, jobID string) (*models.AppliedJobView, error) {
	u, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, repository.ErrNotFound
	}

	j, err := r.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, repository.ErrNotFound
	}

	return &models.AppliedJobView{
		Job:            *j,
		ApplicantEmail: u.Email,
		ApplicantName:  u.Name,
		ApplicantPhoto: u.Photo,
	}, nil
}
