package service

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/dto"
	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/utils"
)

// ErrTokenIndexOutOfRange is returned when a toggled index is not in the token view
var ErrTokenIndexOutOfRange = errors.New("token index out of range")

// SessionState is the edit state of a correction session
type SessionState string

const (
	StateIdle    SessionState = "idle"
	StateEditing SessionState = "editing"
)

// editing is the transient selection of the active field.
// A nil *editing means the session is idle.
type editing struct {
	key     dto.SelectionKey
	pending []int
}

// CorrectionSession lets a user override extracted fields by picking tokens
// from the source text. It owns a deep copy of the record it was opened with.
type CorrectionSession struct {
	record dto.FieldRecord
	tokens []string
	edit   *editing
}

// NewCorrectionSession opens a session over the record extracted from text
func NewCorrectionSession(record dto.FieldRecord, text string) *CorrectionSession {
	return &CorrectionSession{
		record: record.Clone(),
		tokens: utils.Tokenize(text),
	}
}

// SelectField activates key for editing. Selecting the active key again
// discards its pending tokens. Selecting another key commits the pending
// tokens of the previous one first.
func (s *CorrectionSession) SelectField(key dto.SelectionKey) {
	if s.edit != nil && s.edit.key == key {
		s.edit = nil
		return
	}
	if s.edit != nil && len(s.edit.pending) > 0 {
		s.commit()
	}
	s.edit = &editing{key: key}
}

// ToggleToken adds or removes a token from the pending selection.
// It does nothing while no field is active.
func (s *CorrectionSession) ToggleToken(index int) error {
	if s.edit == nil {
		return nil
	}
	if index < 0 || index >= len(s.tokens) {
		return fmt.Errorf("%w: %d (have %d tokens)", ErrTokenIndexOutOfRange, index, len(s.tokens))
	}

	pos, found := slices.BinarySearch(s.edit.pending, index)
	if found {
		s.edit.pending = slices.Delete(s.edit.pending, pos, pos+1)
	} else {
		s.edit.pending = slices.Insert(s.edit.pending, pos, index)
	}
	return nil
}

// Finalize commits the pending selection, if any, and returns the session
// to idle. The returned record is a copy.
func (s *CorrectionSession) Finalize() dto.FieldRecord {
	if s.edit != nil && len(s.edit.pending) > 0 {
		s.commit()
	}
	s.edit = nil
	return s.record.Clone()
}

func (s *CorrectionSession) commit() {
	value := utils.JoinTokens(s.tokens, s.edit.pending)
	key := s.edit.key

	if key.IsDiscount() {
		if s.record.Descuento == nil {
			s.record.Descuento = &dto.DiscountRecord{}
		}
		s.record.Descuento.Set(key.Discount, value)
	} else {
		s.record.Set(key.Field, value)
		if key.Field == dto.FieldImportePedidoSap {
			s.record.Set(dto.FieldImporteRecepcionBien, value)
		}
	}
	s.edit.pending = nil
}

// Record returns a copy of the working record
func (s *CorrectionSession) Record() dto.FieldRecord {
	return s.record.Clone()
}

// Tokens returns the token view of the source text
func (s *CorrectionSession) Tokens() []string {
	return slices.Clone(s.tokens)
}

func (s *CorrectionSession) State() SessionState {
	if s.edit == nil {
		return StateIdle
	}
	return StateEditing
}

// ActiveKey returns the field being edited; ok is false when idle
func (s *CorrectionSession) ActiveKey() (dto.SelectionKey, bool) {
	if s.edit == nil {
		return dto.SelectionKey{}, false
	}
	return s.edit.key, true
}

// Pending returns the selected token indexes in ascending order
func (s *CorrectionSession) Pending() []int {
	if s.edit == nil {
		return nil
	}
	return slices.Clone(s.edit.pending)
}

// PendingValue previews the value the pending selection would commit
func (s *CorrectionSession) PendingValue() string {
	if s.edit == nil {
		return ""
	}
	return utils.JoinTokens(s.tokens, s.edit.pending)
}
