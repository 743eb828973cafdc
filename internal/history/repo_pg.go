package history

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// PGRepo persists slot requests in Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, req SlotRequest) error {
	const query = `
INSERT INTO slot_requests (id, user_id, purpose, attendees, target_date, requested_hours, returned, top_probability, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		req.ID,
		req.UserID,
		req.Purpose,
		req.Attendees,
		req.TargetDate,
		joinHours(req.RequestedHours),
		req.Returned,
		req.TopProbability,
		req.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]SlotRequest, error) {
	const query = `
SELECT id, user_id, purpose, attendees, target_date, requested_hours, returned, top_probability, created_at
FROM slot_requests
ORDER BY created_at DESC
LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SlotRequest
	for rows.Next() {
		var req SlotRequest
		var hours string
		if err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.Purpose,
			&req.Attendees,
			&req.TargetDate,
			&hours,
			&req.Returned,
			&req.TopProbability,
			&req.CreatedAt,
		); err != nil {
			return nil, err
		}
		req.RequestedHours = parseHours(hours)
		out = append(out, req)
	}
	return out, rows.Err()
}

func joinHours(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, ",")
}

func parseHours(raw string) []int {
	if raw == "" {
		return []int{}
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if v, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			out = append(out, v)
		}
	}
	return out
}
