package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"invonest/internal/port"
)

type hsnRepo struct {
	db *sqlx.DB
}

// NewHSNRepo creates a new PostgreSQL-backed HSNRepository.
func NewHSNRepo(db *sqlx.DB) port.HSNRepository {
	return &hsnRepo{db: db}
}

func (r *hsnRepo) LoadAll(ctx context.Context) ([]port.HSNEntry, error) {
	var entries []port.HSNEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT code, description, gst_rate, COALESCE(condition_desc, '') AS condition_desc
		 FROM hsn_codes
		 WHERE effective_from <= CURRENT_DATE
		   AND (effective_to IS NULL OR effective_to >= CURRENT_DATE)
		 ORDER BY code, gst_rate`)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *hsnRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
