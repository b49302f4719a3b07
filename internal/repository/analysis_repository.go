package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/farmsync/farmsync-api/internal/model"
)

// AnalysisRepo persists the audit log of analysis requests. Rows are only
// ever inserted and listed; there is no update or delete path outside the
// administrative reset.
type AnalysisRepo struct{ DB *sql.DB }

func NewAnalysisRepo(db *sql.DB) *AnalysisRepo { return &AnalysisRepo{DB: db} }

// Insert writes one audit row and returns its id.
func (r *AnalysisRepo) Insert(ctx context.Context, userID uint64, datasets []string, region string) (uint64, error) {
	ds, err := json.Marshal(datasets)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO analysis_requests (user_id, datasets, region, requested_at) VALUES (?,?,?,NOW())",
		userID, ds, region)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByUser returns the caller's most recent audit rows, newest first.
func (r *AnalysisRepo) ListByUser(ctx context.Context, userID uint64, limit int) ([]model.AnalysisRequest, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, datasets, region, requested_at FROM analysis_requests WHERE user_id=? ORDER BY requested_at DESC, id DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.AnalysisRequest, 0, limit)
	for rows.Next() {
		var a model.AnalysisRequest
		var ds []byte
		if err := rows.Scan(&a.ID, &a.UserID, &ds, &a.Region, &a.RequestedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(ds, &a.Datasets); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
