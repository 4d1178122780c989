package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/lexova/lexova-backend/internal/core/domain"
	"github.com/lexova/lexova-backend/internal/core/ports"
)

type CaseRepository struct {
	db *sql.DB
}

var _ ports.CaseRepository = (*CaseRepository)(nil)

func NewCaseRepository(db *sql.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *CaseRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026041101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS cases (
	id TEXT PRIMARY KEY,
	client_id TEXT NOT NULL,
	case_type TEXT NOT NULL,
	description TEXT NOT NULL,
	location TEXT,
	budget TEXT NOT NULL,
	urgency TEXT NOT NULL,
	language_preferences JSONB NOT NULL DEFAULT '[]'::jsonb,
	status TEXT NOT NULL,
	attributes JSONB,
	insights JSONB,
	error_message TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS case_documents (
	id TEXT PRIMARY KEY,
	case_id TEXT NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	extracted_text TEXT,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cases_status ON cases(status);
CREATE INDEX IF NOT EXISTS idx_cases_client_id ON cases(client_id);
CREATE INDEX IF NOT EXISTS idx_case_documents_case_id ON case_documents(case_id);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *CaseRepository) Create(ctx context.Context, c *domain.Case) error {
	langsJSON, err := json.Marshal(orEmpty(c.LanguagePreferences))
	if err != nil {
		return fmt.Errorf("marshal language preferences: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO cases (
	id, client_id, case_type, description, location, budget, urgency, language_preferences, status, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
`,
		c.ID, c.ClientID, c.CaseType, c.Description, c.Location, string(c.Budget), string(c.Urgency),
		langsJSON, string(c.Status), c.Error, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert case: %w", err)
	}
	return nil
}

func (r *CaseRepository) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, client_id, case_type, description, location, budget, urgency, language_preferences, status, attributes, insights, error_message, created_at, updated_at
FROM cases
WHERE id = $1
`, id)

	var c domain.Case
	var langsRaw []byte
	var attrsRaw, insightsRaw []byte
	var location, errMessage sql.NullString
	var budget, urgency, status string

	err := row.Scan(
		&c.ID, &c.ClientID, &c.CaseType, &c.Description, &location, &budget, &urgency,
		&langsRaw, &status, &attrsRaw, &insightsRaw, &errMessage, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrCaseNotFound, "get case", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan case: %w", err)
	}
	c.Location = location.String
	c.Error = errMessage.String

	if err := json.Unmarshal(langsRaw, &c.LanguagePreferences); err != nil {
		return nil, fmt.Errorf("unmarshal language preferences: %w", err)
	}
	if len(attrsRaw) > 0 {
		var attrs domain.CaseAttributes
		if err := json.Unmarshal(attrsRaw, &attrs); err != nil {
			return nil, fmt.Errorf("unmarshal case attributes: %w", err)
		}
		c.Attributes = &attrs
	}
	if len(insightsRaw) > 0 {
		var insights domain.CaseInsights
		if err := json.Unmarshal(insightsRaw, &insights); err != nil {
			return nil, fmt.Errorf("unmarshal case insights: %w", err)
		}
		c.Insights = &insights
	}
	c.Budget = domain.BudgetBand(budget)
	c.Urgency = domain.Urgency(urgency)
	c.Status = domain.CaseStatus(status)
	return &c, nil
}

func (r *CaseRepository) UpdateStatus(ctx context.Context, id string, status domain.CaseStatus, errMessage string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE cases
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update case status: %w", err)
	}
	return checkAffected(result, id)
}

func (r *CaseRepository) SaveAnalysis(ctx context.Context, id string, attrs domain.CaseAttributes, insights domain.CaseInsights) error {
	attrsJSON, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("marshal case attributes: %w", err)
	}
	insightsJSON, err := json.Marshal(insights)
	if err != nil {
		return fmt.Errorf("marshal case insights: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
UPDATE cases
SET attributes = $2, insights = $3, updated_at = $4
WHERE id = $1
`, id, attrsJSON, insightsJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save case analysis: %w", err)
	}
	return checkAffected(result, id)
}

func (r *CaseRepository) AddDocument(ctx context.Context, doc *domain.CaseDocument) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO case_documents (
	id, case_id, title, mime_type, storage_path, extracted_text, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7)
`,
		doc.ID, doc.CaseID, doc.Title, doc.MimeType, doc.StoragePath, doc.Text, doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert case document: %w", err)
	}
	return nil
}

func (r *CaseRepository) ListDocuments(ctx context.Context, caseID string) ([]domain.CaseDocument, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, case_id, title, mime_type, storage_path, extracted_text, created_at
FROM case_documents
WHERE case_id = $1
ORDER BY created_at, id
`, caseID)
	if err != nil {
		return nil, fmt.Errorf("query case documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.CaseDocument
	for rows.Next() {
		var doc domain.CaseDocument
		var text sql.NullString
		err := rows.Scan(&doc.ID, &doc.CaseID, &doc.Title, &doc.MimeType, &doc.StoragePath, &text, &doc.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan case document: %w", err)
		}
		doc.Text = text.String
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case documents: %w", err)
	}
	return docs, nil
}

func checkAffected(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrCaseNotFound, "update case", fmt.Errorf("id %s", id))
	}
	return nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
