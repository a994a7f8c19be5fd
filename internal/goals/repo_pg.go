package goals

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, userID string, goals Goals) error {
	const query = `
INSERT INTO user_goals (user_id, weekly_applications, monthly_interviews, target_response_rate, target_interview_rate, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (user_id) DO UPDATE SET
  weekly_applications = EXCLUDED.weekly_applications,
  monthly_interviews = EXCLUDED.monthly_interviews,
  target_response_rate = EXCLUDED.target_response_rate,
  target_interview_rate = EXCLUDED.target_interview_rate,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		userID,
		goals.WeeklyApplications,
		goals.MonthlyInterviews,
		goals.TargetResponseRate,
		goals.TargetInterviewRate,
	)
	return err
}

func (r *PGRepo) Get(ctx context.Context, userID string) (Goals, error) {
	const query = `
SELECT weekly_applications, monthly_interviews, target_response_rate, target_interview_rate, updated_at
FROM user_goals
WHERE user_id = $1
LIMIT 1`
	var goals Goals
	var updatedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&goals.WeeklyApplications,
		&goals.MonthlyInterviews,
		&goals.TargetResponseRate,
		&goals.TargetInterviewRate,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Goals{}, ErrNotFound
		}
		return Goals{}, err
	}
	if updatedAt.Valid {
		goals.UpdatedAt = updatedAt.Time.UTC()
	}
	return goals, nil
}
