package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/garnizeh/jobportal/pkg/models"
	"github.com/garnizeh/jobportal/pkg/repository"
)

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Posted == 0 {
		j.Posted = now()
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO jobs (id, hr_email, title, company, location, job_type, salary, description, application_count, posted) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.HREmail, j.Title, j.Company, j.Location, j.JobType, j.Salary, j.Description, j.ApplicationCount, j.Posted)
	return err
}

func (r *SQLiteRepo) CreateJobs(ctx context.Context, js []models.Job) error {
	if len(js) == 0 {
		return fmt.Errorf("no jobs to create")
	}

	tx, err := r.conn.GetConn().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range js {
		j := &js[i]
		if j.ID == "" {
			j.ID = uuid.NewString()
		}
		if j.Posted == 0 {
			j.Posted = now()
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO jobs (id, hr_email, title, company, location, job_type, salary, description, application_count, posted) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			j.ID, j.HREmail, j.Title, j.Company, j.Location, j.JobType, j.Salary, j.Description, j.ApplicationCount, j.Posted); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const jobColumns = `id, hr_email, title, company, location, job_type, salary, description, application_count, posted`

func scanJob(scan func(dest ...any) error) (*models.Job, error) {
	var j models.Job
	if err := scan(&j.ID, &j.HREmail, &j.Title, &j.Company, &j.Location, &j.JobType, &j.Salary, &j.Description, &j.ApplicationCount, &j.Posted); err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return j, nil
}

func (r *SQLiteRepo) ListJobs(ctx context.Context) ([]models.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY posted DESC`)
}

func (r *SQLiteRepo) ListJobsByOwner(ctx context.Context, hrEmail string) ([]models.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE hr_email = ? ORDER BY posted DESC`, hrEmail)
}

func (r *SQLiteRepo) listJobs(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, *j)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateJob(ctx context.Context, id string, patch *models.JobPatch) error {
	if patch == nil || patch.Empty() {
		return fmt.Errorf("empty patch")
	}

	set := make([]string, 0, 6)
	args := make([]any, 0, 7)
	add := func(col string, v *string) {
		if v != nil {
			set = append(set, col+" = ?")
			args = append(args, *v)
		}
	}
	add("title", patch.Title)
	add("company", patch.Company)
	add("location", patch.Location)
	add("job_type", patch.JobType)
	add("salary", patch.Salary)
	add("description", patch.Description)

	args = append(args, id)
	query := `UPDATE jobs SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	res, err := r.conn.Exec(ctx, query, args...)
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

	return nil
}

func (r *SQLiteRepo) DeleteJob(ctx context.Context, id string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
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

	return nil
}
