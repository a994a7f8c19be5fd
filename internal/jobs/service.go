package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"jobtracker-backend/internal/analytics"
	"jobtracker-backend/internal/shared/metrics"
	"jobtracker-backend/internal/shared/validation"
)

// MaxImportBatch bounds a single import request.
const MaxImportBatch = 2000

var ErrInvalidInput = errors.New("invalid input")

// ValidationError carries per-field issues for a rejected payload.
type ValidationError struct {
	Issues []validation.FieldIssue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %d issue(s)", len(e.Issues))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

type Service struct {
	Repo     Repo
	Now      func() time.Time
	validate *validator.Validate
}

func NewService(repo Repo) *Service {
	v := validation.New()
	_ = v.RegisterValidation("jobstatus", func(fl validator.FieldLevel) bool {
		_, ok := analytics.ParseStatus(fl.Field().String())
		return ok
	})
	return &Service{Repo: repo, Now: time.Now, validate: v}
}

// ImportResult summarizes a stored batch.
type ImportResult struct {
	Imported int      `json:"imported"`
	IDs      []string `json:"ids"`
}

// Import validates and stores records for userID. Storage is all or
// nothing: an invalid record or an id the user already owns stores none.
func (s *Service) Import(ctx context.Context, userID string, records []ImportRecord) (ImportResult, error) {
	if s == nil || s.Repo == nil {
		return ImportResult{}, errors.New("jobs service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return ImportResult{}, errors.New("user id is required")
	}
	if err := s.ValidateBatch(records); err != nil {
		return ImportResult{}, err
	}

	now := s.now()
	batch := make([]Job, 0, len(records))
	for _, rec := range records {
		job := rec.ToJob(userID)
		if job.ID == "" {
			job.ID = uuid.NewString()
		}
		job.UpdatedAt = now
		// A blank createdAt means "now"; an unparseable one stays zero.
		if strings.TrimSpace(rec.CreatedAt) == "" {
			job.CreatedAt = now
		}
		batch = append(batch, job)
	}
	if err := s.Repo.CreateBatch(ctx, batch); err != nil {
		return ImportResult{}, fmt.Errorf("store jobs: %w", err)
	}

	result := ImportResult{Imported: len(batch), IDs: make([]string, 0, len(batch))}
	for _, job := range batch {
		result.IDs = append(result.IDs, job.ID)
	}
	metrics.JobsImported.Add(float64(result.Imported))
	return result, nil
}

// ValidateBatch checks a whole import payload and reports every failing
// field as records[i].<field>. Repeated ids within the batch are rejected.
func (s *Service) ValidateBatch(records []ImportRecord) error {
	if len(records) == 0 {
		return &ValidationError{Issues: []validation.FieldIssue{{Field: "records", Issue: "required"}}}
	}
	if len(records) > MaxImportBatch {
		return &ValidationError{Issues: []validation.FieldIssue{{Field: "records", Issue: fmt.Sprintf("max=%d", MaxImportBatch)}}}
	}

	var issues []validation.FieldIssue
	if err := s.ValidateRecords(records); err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		issues = verr.Issues
	}
	firstSeen := make(map[string]int, len(records))
	for i, rec := range records {
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			continue
		}
		if j, dup := firstSeen[id]; dup {
			issues = append(issues, validation.FieldIssue{
				Field: fmt.Sprintf("records[%d].id", i),
				Issue: fmt.Sprintf("unique=records[%d].id", j),
			})
			continue
		}
		firstSeen[id] = i
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// ValidateRecords checks each record without batch size limits.
func (s *Service) ValidateRecords(records []ImportRecord) error {
	var issues []validation.FieldIssue
	for i, rec := range records {
		if err := s.validate.Struct(rec); err != nil {
			for _, issue := range validation.Issues(err) {
				issue.Field = fmt.Sprintf("records[%d].%s", i, issue.Field)
				issues = append(issues, issue)
			}
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// UpdateStatus moves a job to a new stage and records the transition.
func (s *Service) UpdateStatus(ctx context.Context, userID, jobID, rawStatus string) (Job, error) {
	if s == nil || s.Repo == nil {
		return Job{}, errors.New("jobs service not configured")
	}
	status, ok := analytics.ParseStatus(rawStatus)
	if !ok {
		return Job{}, &ValidationError{Issues: []validation.FieldIssue{{Field: "status", Issue: "jobstatus"}}}
	}
	return s.Repo.UpdateStatus(ctx, userID, jobID, status, s.now())
}

// List returns every job owned by userID.
func (s *Service) List(ctx context.Context, userID string) ([]Job, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("jobs service not configured")
	}
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
