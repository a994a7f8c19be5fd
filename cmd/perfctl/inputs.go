package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"jobtracker-backend/internal/analytics"
	"jobtracker-backend/internal/goals"
	"jobtracker-backend/internal/jobs"
	"jobtracker-backend/internal/performance"
	"jobtracker-backend/internal/shared/validation"
)

const cliUser = "perfctl"

// computeOptions is everything one engine run needs.
type computeOptions struct {
	RecordsPath string
	GoalsPath   string
	OutPath     string
	From        string
	To          string
	Status      string
	Now         string
	Timezone    string
}

// loadRecords reads a JSON export: either a bare array of records or an
// object with a "records" key.
func loadRecords(path string) ([]jobs.ImportRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	var records []jobs.ImportRecord
	if raw[0] == '[' {
		err = json.Unmarshal(raw, &records)
	} else {
		var wrapped struct {
			Records []jobs.ImportRecord `json:"records"`
		}
		err = json.Unmarshal(raw, &wrapped)
		records = wrapped.Records
	}
	if err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	if err := jobs.NewService(nil).ValidateRecords(records); err != nil {
		var verr *jobs.ValidationError
		if errors.As(err, &verr) {
			return nil, fmt.Errorf("invalid records: %s", formatIssues(verr.Issues))
		}
		return nil, err
	}
	return records, nil
}

// loadGoals reads YAML goals. An empty path yields the defaults; keys missing
// from the file keep their default value.
func loadGoals(path string) (goals.Goals, error) {
	g := goals.DefaultGoals()
	if strings.TrimSpace(path) == "" {
		return g, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return goals.Goals{}, fmt.Errorf("read goals: %w", err)
	}
	if err := yaml.Unmarshal(raw, &g); err != nil {
		return goals.Goals{}, fmt.Errorf("decode goals: %w", err)
	}
	if err := validation.New().Struct(g); err != nil {
		return goals.Goals{}, fmt.Errorf("invalid goals: %s", formatIssues(validation.Issues(err)))
	}
	return g, nil
}

func formatIssues(issues []validation.FieldIssue) string {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, issue.Field+" "+issue.Issue)
	}
	return strings.Join(parts, "; ")
}

func (o computeOptions) engine() (analytics.Engine, error) {
	var e analytics.Engine
	if tz := strings.TrimSpace(o.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return e, fmt.Errorf("invalid --tz: %w", err)
		}
		e.Location = loc
	}
	if now := strings.TrimSpace(o.Now); now != "" {
		t, err := time.Parse(time.RFC3339, now)
		if err != nil {
			return e, fmt.Errorf("invalid --now, want RFC3339: %w", err)
		}
		e.Now = func() time.Time { return t }
	}
	return e, nil
}

// computeSnapshot runs one full load, filter and compute cycle.
func computeSnapshot(o computeOptions) (analytics.Snapshot, int, error) {
	engine, err := o.engine()
	if err != nil {
		return analytics.Snapshot{}, 0, err
	}
	filter, err := performance.ParseFilter(o.From, o.To, o.Status)
	if err != nil {
		return analytics.Snapshot{}, 0, err
	}
	records, err := loadRecords(o.RecordsPath)
	if err != nil {
		return analytics.Snapshot{}, 0, err
	}
	g, err := loadGoals(o.GoalsPath)
	if err != nil {
		return analytics.Snapshot{}, 0, err
	}

	all := make([]jobs.Job, 0, len(records))
	for _, rec := range records {
		all = append(all, rec.ToJob(cliUser))
	}
	normalized := performance.Normalize(all, filter)
	return engine.Compute(normalized, g.Config()), len(normalized), nil
}

// writeSnapshot writes indented JSON to path, or stdout for "" and "-".
func writeSnapshot(path string, snapshot analytics.Snapshot) error {
	out, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	out = append(out, '\n')
	if path == "" || path == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func bindComputeFlags(flags interface {
	StringVar(p *string, name, value, usage string)
}, o *computeOptions) {
	flags.StringVar(&o.RecordsPath, "records", "", "Path to exported job records JSON (required)")
	flags.StringVar(&o.GoalsPath, "goals", "", "Path to goals YAML (defaults apply when omitted)")
	flags.StringVar(&o.OutPath, "out", "-", "Output path for the snapshot JSON, - for stdout")
	flags.StringVar(&o.From, "from", "", "Only include jobs created on or after YYYY-MM-DD")
	flags.StringVar(&o.To, "to", "", "Only include jobs created on or before YYYY-MM-DD")
	flags.StringVar(&o.Status, "status", "", "Comma separated statuses to include")
	flags.StringVar(&o.Now, "now", "", "Reference time in RFC3339, defaults to the current time")
	flags.StringVar(&o.Timezone, "tz", "", "IANA time zone for weekly and monthly boundaries, defaults to UTC")
}
