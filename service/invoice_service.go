package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/dto"
	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/utils"
)

type InvoiceService struct {
	pdfProcessor PDFProcessor
	sessions     *SessionStore
	validator    *AmountValidator
}

func NewInvoiceService(pdfProcessor PDFProcessor, sessions *SessionStore, validator *AmountValidator) *InvoiceService {
	return &InvoiceService{
		pdfProcessor: pdfProcessor,
		sessions:     sessions,
		validator:    validator,
	}
}

// ProcessPDF extracts the fields of an uploaded PDF and opens a correction session
func (s *InvoiceService) ProcessPDF(ctx context.Context, pdfData []byte, password string) (*dto.ExtractionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	extracted, err := s.pdfProcessor.ExtractText(pdfData, password)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}
	if strings.TrimSpace(extracted.Text) == "" {
		return nil, ErrNoExtractableText
	}
	log.Printf("Extracted %d characters from %d of %d pages", len(extracted.Text), extracted.PagesRead, extracted.PageCount)

	resp, err := s.ProcessText(ctx, extracted.Text)
	if err != nil {
		return nil, err
	}
	resp.PageCount = extracted.PageCount
	return resp, nil
}

// ProcessText extracts the fields of text produced elsewhere. Empty text
// yields a record with every field absent.
func (s *InvoiceService) ProcessText(ctx context.Context, text string) (*dto.ExtractionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record := utils.ParseInvoice(text)
	session := NewCorrectionSession(record, text)
	id := s.sessions.Create(session)
	log.Printf("Opened correction session %s", id)

	return &dto.ExtractionResponse{
		Session:     snapshot(id, session),
		Validation:  s.validator.Validate(record),
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Snapshot returns the current state of a session
func (s *InvoiceService) Snapshot(sessionID string) (*dto.SessionSnapshot, error) {
	var out dto.SessionSnapshot
	err := s.withSession(sessionID, func(id uuid.UUID, session *CorrectionSession) error {
		out = snapshot(id, session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SelectField activates a field, or a "descuento.<key>" sub-field, for correction
func (s *InvoiceService) SelectField(sessionID, rawKey string) (*dto.SessionSnapshot, error) {
	key, err := dto.ParseSelectionKey(rawKey)
	if err != nil {
		return nil, err
	}

	var out dto.SessionSnapshot
	err = s.withSession(sessionID, func(id uuid.UUID, session *CorrectionSession) error {
		session.SelectField(key)
		out = snapshot(id, session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleToken adds or removes a token from the pending selection
func (s *InvoiceService) ToggleToken(sessionID string, index int) (*dto.SessionSnapshot, error) {
	var out dto.SessionSnapshot
	err := s.withSession(sessionID, func(id uuid.UUID, session *CorrectionSession) error {
		if err := session.ToggleToken(index); err != nil {
			return err
		}
		out = snapshot(id, session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Finalize commits the pending selection and validates the resulting record
func (s *InvoiceService) Finalize(sessionID string) (*dto.FinalizeResponse, error) {
	var out dto.FinalizeResponse
	err := s.withSession(sessionID, func(id uuid.UUID, session *CorrectionSession) error {
		record := session.Finalize()
		out = dto.FinalizeResponse{
			SessionID:  id.String(),
			Record:     record,
			Validation: s.validator.Validate(record),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Export renders the committed record of a session
func (s *InvoiceService) Export(sessionID string, format ExportFormat, opts ExportOptions) (*ExportResult, error) {
	var record dto.FieldRecord
	err := s.withSession(sessionID, func(_ uuid.UUID, session *CorrectionSession) error {
		record = session.Record()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Export(record, format, opts)
}

// Close discards a session
func (s *InvoiceService) Close(sessionID string) error {
	id, err := parseSessionID(sessionID)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(id); err != nil {
		return err
	}
	log.Printf("Closed correction session %s", id)
	return nil
}

func (s *InvoiceService) withSession(sessionID string, fn func(uuid.UUID, *CorrectionSession) error) error {
	id, err := parseSessionID(sessionID)
	if err != nil {
		return err
	}
	return s.sessions.Update(id, func(session *CorrectionSession) error {
		return fn(id, session)
	})
}

func parseSessionID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrSessionNotFound, raw)
	}
	return id, nil
}

func snapshot(id uuid.UUID, session *CorrectionSession) dto.SessionSnapshot {
	out := dto.SessionSnapshot{
		SessionID:    id.String(),
		Record:       session.Record(),
		Tokens:       session.Tokens(),
		State:        string(session.State()),
		Pending:      session.Pending(),
		PendingValue: session.PendingValue(),
	}
	if key, ok := session.ActiveKey(); ok {
		out.ActiveKey = key.String()
	}
	return out
}
