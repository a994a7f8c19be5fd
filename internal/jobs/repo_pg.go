package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"jobtracker-backend/internal/analytics"
)

type PGRepo struct {
	DB *sql.DB
}

const insertHistory = `
INSERT INTO job_status_history (user_id, job_id, status, changed_at)
VALUES ($1, $2, $3, $4)`

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

func (r *PGRepo) CreateBatch(ctx context.Context, jobs []Job) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const insertJob = `
INSERT INTO jobs (id, user_id, status, title, role, company, company_size, source, industry, cover_letter, notes, archived, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())`
	for _, job := range jobs {
		if _, err := tx.ExecContext(ctx, insertJob,
			job.ID,
			job.UserID,
			string(job.Status),
			job.Title,
			nullableString(job.Role),
			nullableString(job.Company),
			nullableString(job.CompanySize),
			nullableString(job.Source),
			nullableString(job.Industry),
			nullableString(job.CoverLetter),
			nullableString(job.Notes),
			job.Archived,
			nullableTime(job.CreatedAt),
		); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("job %s: %w", job.ID, ErrConflict)
			}
			return fmt.Errorf("insert job %s: %w", job.ID, err)
		}
		for _, h := range job.History {
			if _, err := tx.ExecContext(ctx, insertHistory, job.UserID, job.ID, string(h.Status), nullableTime(h.Timestamp)); err != nil {
				return fmt.Errorf("insert job history: %w", err)
			}
		}
	}
	return tx.Commit()
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Job, error) {
	const query = `
SELECT id, status, title, role, company, company_size, source, industry, cover_letter, notes, archived, created_at, updated_at
FROM jobs
WHERE user_id = $1
ORDER BY created_at NULLS FIRST, id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	index := make(map[string]int)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		job.UserID = userID
		index[job.ID] = len(out)
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	const historyQuery = `
SELECT job_id, status, changed_at
FROM job_status_history
WHERE user_id = $1
ORDER BY job_id, id`
	hrows, err := r.DB.QueryContext(ctx, historyQuery, userID)
	if err != nil {
		return nil, err
	}
	defer hrows.Close()
	for hrows.Next() {
		jobID, change, err := scanChange(hrows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[jobID]; ok {
			out[i].History = append(out[i].History, change)
		}
	}
	return out, hrows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, userID, jobID string, status analytics.Status, changedAt time.Time) (Job, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Job{}, err
	}
	defer tx.Rollback()

	const update = `
UPDATE jobs SET status = $1, updated_at = $2
WHERE id = $3 AND user_id = $4`
	res, err := tx.ExecContext(ctx, update, string(status), changedAt, jobID, userID)
	if err != nil {
		return Job{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Job{}, err
	}
	if affected == 0 {
		return Job{}, ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, insertHistory, userID, jobID, string(status), changedAt); err != nil {
		return Job{}, err
	}

	const query = `
SELECT id, status, title, role, company, company_size, source, industry, cover_letter, notes, archived, created_at, updated_at
FROM jobs
WHERE user_id = $1 AND id = $2`
	job, err := scanJob(tx.QueryRowContext(ctx, query, userID, jobID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	job.UserID = userID

	const historyQuery = `
SELECT job_id, status, changed_at
FROM job_status_history
WHERE user_id = $1 AND job_id = $2
ORDER BY id`
	hrows, err := tx.QueryContext(ctx, historyQuery, userID, jobID)
	if err != nil {
		return Job{}, err
	}
	for hrows.Next() {
		_, change, err := scanChange(hrows)
		if err != nil {
			hrows.Close()
			return Job{}, err
		}
		job.History = append(job.History, change)
	}
	hrows.Close()
	if err := hrows.Err(); err != nil {
		return Job{}, err
	}

	if err := tx.Commit(); err != nil {
		return Job{}, err
	}
	return job, nil
}

func scanChange(row rowScanner) (string, analytics.StatusChange, error) {
	var (
		jobID     string
		status    string
		changedAt sql.NullTime
	)
	if err := row.Scan(&jobID, &status, &changedAt); err != nil {
		return "", analytics.StatusChange{}, err
	}
	change := analytics.StatusChange{Status: analytics.Status(status)}
	if changedAt.Valid {
		change.Timestamp = changedAt.Time.UTC()
	}
	return jobID, change, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var (
		job         Job
		status      string
		role        sql.NullString
		company     sql.NullString
		companySize sql.NullString
		source      sql.NullString
		industry    sql.NullString
		coverLetter sql.NullString
		notes       sql.NullString
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	)
	if err := row.Scan(
		&job.ID,
		&status,
		&job.Title,
		&role,
		&company,
		&companySize,
		&source,
		&industry,
		&coverLetter,
		&notes,
		&job.Archived,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Job{}, err
	}
	job.Status = analytics.Status(status)
	job.Role = role.String
	job.Company = company.String
	job.CompanySize = companySize.String
	job.Source = source.String
	job.Industry = industry.String
	job.CoverLetter = coverLetter.String
	job.Notes = notes.String
	if createdAt.Valid {
		job.CreatedAt = createdAt.Time.UTC()
	}
	if updatedAt.Valid {
		job.UpdatedAt = updatedAt.Time.UTC()
	}
	return job, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value
}
