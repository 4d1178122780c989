package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lexova/lexova-backend/internal/core/domain"
	"github.com/lexova/lexova-backend/internal/core/ports"
)

// LawyerRepository reads the candidate pool for matching. Only active,
// verification-approved lawyers are returned, in stable id order so repeated
// matching runs rank identical pools identically.
type LawyerRepository struct {
	db *sql.DB
}

var _ ports.LawyerCatalog = (*LawyerRepository)(nil)

func NewLawyerRepository(db *sql.DB) *LawyerRepository {
	return &LawyerRepository{db: db}
}

func (r *LawyerRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026041102)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS lawyers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	specializations JSONB NOT NULL DEFAULT '[]'::jsonb,
	experience_years INTEGER NOT NULL DEFAULT 0,
	cases_handled INTEGER NOT NULL DEFAULT 0,
	languages JSONB NOT NULL DEFAULT '[]'::jsonb,
	location TEXT,
	average_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count INTEGER NOT NULL DEFAULT 0,
	hourly_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
	availability TEXT NOT NULL DEFAULT 'medium',
	success_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	verification_status TEXT NOT NULL DEFAULT 'pending'
);

CREATE INDEX IF NOT EXISTS idx_lawyers_eligibility ON lawyers(is_active, verification_status);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *LawyerRepository) GetAvailableLawyers(ctx context.Context) ([]domain.LawyerProfile, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, specializations, experience_years, cases_handled, languages, location, average_rating, review_count, hourly_rate, availability, success_rate
FROM lawyers
WHERE is_active = TRUE AND verification_status = 'approved'
ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("query lawyers: %w", err)
	}
	defer rows.Close()

	var lawyers []domain.LawyerProfile
	for rows.Next() {
		var l domain.LawyerProfile
		var specsRaw, langsRaw []byte
		var location sql.NullString
		var availability string

		// location is nullable and profile rows are seeded externally; one
		// NULL must not poison the whole candidate pool.
		err := rows.Scan(
			&l.ID, &l.Name, &specsRaw, &l.ExperienceYears, &l.CasesHandled, &langsRaw,
			&location, &l.AverageRating, &l.ReviewCount, &l.HourlyRate, &availability, &l.SuccessRate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan lawyer: %w", err)
		}
		l.Location = location.String

		if err := json.Unmarshal(specsRaw, &l.Specializations); err != nil {
			return nil, fmt.Errorf("unmarshal specializations: %w", err)
		}
		if err := json.Unmarshal(langsRaw, &l.Languages); err != nil {
			return nil, fmt.Errorf("unmarshal languages: %w", err)
		}
		l.Availability = domain.ParseAvailability(availability)
		lawyers = append(lawyers, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lawyers: %w", err)
	}
	return lawyers, nil
}
