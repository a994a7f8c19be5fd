package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"jobtracker-backend/internal/analytics"
)

var jobColumns = []string{
	"id", "status", "title", "role", "company", "company_size", "source", "industry",
	"cover_letter", "notes", "archived", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateBatchWritesJobAndHistory(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	job := Job{
		ID:          "job-1",
		UserID:      "user-1",
		Status:      analytics.StatusScreening,
		Title:       "Backend Engineer",
		Source:      "LinkedIn",
		CoverLetter: "Dear team",
		CreatedAt:   created,
		History: []analytics.StatusChange{
			{Status: analytics.StatusApplied, Timestamp: created},
			{Status: analytics.StatusScreening},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO jobs").
		WithArgs(
			job.ID,
			job.UserID,
			"Screening",
			job.Title,
			nil, // role
			nil, // company
			nil, // company_size
			"LinkedIn",
			nil, // industry
			"Dear team",
			nil, // notes
			false,
			created,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO job_status_history").
		WithArgs("user-1", "job-1", "Applied", created).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO job_status_history").
		WithArgs("user-1", "job-1", "Screening", nil).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	if err := repo.CreateBatch(context.Background(), []Job{job}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateBatchRollsBackOnDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)
	batch := []Job{
		{ID: "a", UserID: "user-1", Status: analytics.StatusApplied},
		{ID: "b", UserID: "user-1", Status: analytics.StatusApplied},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO jobs").
		WithArgs("a", "user-1", "Applied", "", nil, nil, nil, nil, nil, nil, nil, false, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO jobs").
		WithArgs("b", "user-1", "Applied", "", nil, nil, nil, nil, nil, nil, nil, false, nil).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.CreateBatch(context.Background(), batch)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUserAttachesHistory(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	responded := created.Add(72 * time.Hour)

	mock.ExpectQuery("SELECT id, status, title").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(jobColumns).
			AddRow("job-1", "Interview", "Senior Engineer", nil, "Acme", "Startup", nil, "Fintech", nil, nil, false, created, created).
			AddRow("job-2", "Applied", "Engineer", nil, nil, nil, nil, nil, nil, "note", false, nil, created))
	mock.ExpectQuery("FROM job_status_history").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "status", "changed_at"}).
			AddRow("job-1", "Applied", created).
			AddRow("job-1", "Interview", responded).
			AddRow("job-2", "Applied", nil))

	jobs, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Company != "Acme" || jobs[0].Industry != "Fintech" || jobs[0].Source != "" {
		t.Fatalf("unexpected optional fields: %+v", jobs[0])
	}
	if len(jobs[0].History) != 2 || !jobs[0].History[1].Timestamp.Equal(responded) {
		t.Fatalf("unexpected history: %+v", jobs[0].History)
	}
	if !jobs[1].CreatedAt.IsZero() {
		t.Fatalf("expected zero createdAt for NULL column")
	}
	if len(jobs[1].History) != 1 || !jobs[1].History[0].Timestamp.IsZero() {
		t.Fatalf("expected NULL changed_at to map to zero time: %+v", jobs[1].History)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUserEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT id, status, title").
		WithArgs("user-2").
		WillReturnRows(sqlmock.NewRows(jobColumns))

	jobs, err := repo.ListByUser(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs, got %d", len(jobs))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	applied := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	changed := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE jobs SET status").
		WithArgs("Interview", changed, "job-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO job_status_history").
		WithArgs("user-1", "job-1", "Interview", changed).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("SELECT id, status, title").
		WithArgs("user-1", "job-1").
		WillReturnRows(sqlmock.NewRows(jobColumns).
			AddRow("job-1", "Interview", "Engineer", nil, nil, nil, nil, nil, nil, nil, false, applied, changed))
	mock.ExpectQuery("FROM job_status_history").
		WithArgs("user-1", "job-1").
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "status", "changed_at"}).
			AddRow("job-1", "Applied", applied).
			AddRow("job-1", "Interview", changed))
	mock.ExpectCommit()

	job, err := repo.UpdateStatus(context.Background(), "user-1", "job-1", analytics.StatusInterview, changed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if job.Status != analytics.StatusInterview || job.UserID != "user-1" {
		t.Fatalf("unexpected job: %+v", job)
	}
	want := []analytics.StatusChange{
		{Status: analytics.StatusApplied, Timestamp: applied},
		{Status: analytics.StatusInterview, Timestamp: changed},
	}
	if len(job.History) != len(want) || job.History[0] != want[0] || job.History[1] != want[1] {
		t.Fatalf("expected history %+v, got %+v", want, job.History)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	changed := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE jobs SET status").
		WithArgs("Offer", changed, "job-9", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.UpdateStatus(context.Background(), "user-1", "job-9", analytics.StatusOffer, changed)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
