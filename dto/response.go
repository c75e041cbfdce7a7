package dto

import "errors"

// Custom errors
var (
	ErrUnsupportedFileType = errors.New("only .pdf files are accepted")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ValidationWarning is a non-blocking inconsistency found in a record
type ValidationWarning struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult summarizes the amount and date checks of a record
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Warnings []ValidationWarning `json:"warnings"`
}

// SessionSnapshot is the observable state of a correction session
type SessionSnapshot struct {
	SessionID    string      `json:"session_id"`
	Record       FieldRecord `json:"record"`
	Tokens       []string    `json:"tokens"`
	State        string      `json:"state"`
	ActiveKey    string      `json:"active_key,omitempty"`
	Pending      []int       `json:"pending,omitempty"`
	PendingValue string      `json:"pending_value,omitempty"`
}

// ExtractionResponse is returned when a document or text has been extracted
type ExtractionResponse struct {
	Session     SessionSnapshot  `json:"session"`
	Validation  ValidationResult `json:"validation"`
	PageCount   int              `json:"page_count,omitempty"`
	ProcessedAt string           `json:"processed_at"`
}

// FinalizeResponse is returned when a correction session is finalized
type FinalizeResponse struct {
	SessionID  string           `json:"session_id"`
	Record     FieldRecord      `json:"record"`
	Validation ValidationResult `json:"validation"`
}
