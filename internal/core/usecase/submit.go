package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lexova/lexova-backend/internal/core/domain"
	"github.com/lexova/lexova-backend/internal/core/ports"
)

// SubmitCaseUseCase handles case intake: persist the case, queue it for
// asynchronous analysis, and store any uploaded documents.
type SubmitCaseUseCase struct {
	repo      ports.CaseRepository
	storage   ports.ObjectStorage
	extractor ports.TextExtractor
	queue     ports.MessageQueue
	logger    *slog.Logger
}

func NewSubmitCaseUseCase(
	repo ports.CaseRepository,
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	queue ports.MessageQueue,
	logger *slog.Logger,
) *SubmitCaseUseCase {
	return &SubmitCaseUseCase{
		repo:      repo,
		storage:   storage,
		extractor: extractor,
		queue:     queue,
		logger:    logger,
	}
}

func (uc *SubmitCaseUseCase) Submit(ctx context.Context, c *domain.Case) error {
	if strings.TrimSpace(c.ClientID) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "submit case",
			fmt.Errorf("client id is required"))
	}
	if strings.TrimSpace(c.CaseType) == "" && strings.TrimSpace(c.Description) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "submit case",
			fmt.Errorf("case type or description is required"))
	}

	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.Budget = domain.ParseBudgetBand(string(c.Budget))
	c.Urgency = domain.ParseUrgency(string(c.Urgency))
	c.Status = domain.CaseStatusSubmitted
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := uc.repo.Create(ctx, c); err != nil {
		return fmt.Errorf("create case: %w", err)
	}

	if err := uc.queue.PublishCaseSubmitted(ctx, c.ID); err != nil {
		return fmt.Errorf("publish case submitted event: %w", err)
	}

	uc.logger.Info("case_submitted", "case_id", c.ID, "case_type", c.CaseType)
	return nil
}

func (uc *SubmitCaseUseCase) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	return uc.repo.GetByID(ctx, id)
}

// AttachDocument stores an uploaded file and records it against the case.
// Text extraction is best effort; a document the extractor cannot read is
// still attached, just without searchable text.
func (uc *SubmitCaseUseCase) AttachDocument(
	ctx context.Context,
	caseID, title, mimeType string,
	body io.Reader,
) (*domain.CaseDocument, error) {
	if _, err := uc.repo.GetByID(ctx, caseID); err != nil {
		return nil, fmt.Errorf("load case %s: %w", caseID, err)
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s/%s_%s", caseID, id, sanitizeFilename(title))

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	doc := &domain.CaseDocument{
		ID:          id,
		CaseID:      caseID,
		Title:       title,
		MimeType:    mimeType,
		StoragePath: storageKey,
		CreatedAt:   time.Now().UTC(),
	}

	if rc, err := uc.storage.Open(ctx, storageKey); err != nil {
		uc.logger.Warn("document_reopen_failed", "case_id", caseID, "document_id", id, "error", err)
	} else {
		text, err := uc.extractor.Extract(ctx, rc, mimeType)
		rc.Close()
		if err != nil {
			uc.logger.Warn("document_text_extraction_failed",
				"case_id", caseID, "document_id", id, "error", err)
		} else {
			doc.Text = text
		}
	}

	if err := uc.repo.AddDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("record case document: %w", err)
	}
	return doc, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
