package service

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	ErrInvalidPDF        = errors.New("file is not a valid PDF")
	ErrPasswordRequired  = errors.New("PDF is encrypted and the password is missing or wrong")
	ErrNoExtractableText = errors.New("no extractable text found in the PDF, it may be a scanned image")
)

// DefaultMaxPages is how many leading pages are read when no limit is configured
const DefaultMaxPages = 2

// ExtractedText is the text layer of the leading pages of a document
type ExtractedText struct {
	Text      string
	PageCount int
	PagesRead int
}

type PDFProcessor interface {
	ExtractText(pdfData []byte, password string) (*ExtractedText, error)
}

type pdfProcessor struct {
	maxPages int
}

func NewPDFProcessor(maxPages int) PDFProcessor {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &pdfProcessor{maxPages: maxPages}
}

// ValidatePDF checks the "%PDF-" magic bytes
func ValidatePDF(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}

// ExtractText reads the text of the first pages. Words of a row are joined
// with a space, rows with a newline, and pages are separated by a blank line.
func (p *pdfProcessor) ExtractText(pdfData []byte, password string) (*ExtractedText, error) {
	if !ValidatePDF(pdfData) {
		return nil, ErrInvalidPDF
	}

	data := pdfData
	if password != "" {
		decrypted, err := decrypt(pdfData, password)
		if err != nil {
			// pdfcpu refuses files that are not encrypted; read those as they are
			log.Printf("PDF decryption skipped: %v", err)
		} else {
			data = decrypted
		}
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, ErrPasswordRequired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	totalPage := r.NumPage()
	limit := min(totalPage, p.maxPages)

	pages := make([]string, 0, limit)
	for pageIndex := 1; pageIndex <= limit; pageIndex++ {
		text, err := readPage(r, pageIndex)
		if err != nil {
			log.Printf("Warning: skipping page %d: %v", pageIndex, err)
			continue
		}
		pages = append(pages, text)
	}

	return &ExtractedText{
		Text:      strings.Join(pages, "\n\n"),
		PageCount: totalPage,
		PagesRead: limit,
	}, nil
}

func readPage(r *pdf.Reader, pageIndex int) (text string, err error) {
	// malformed font tables make the reader panic
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("read page: %v", rec)
		}
	}()

	p := r.Page(pageIndex)
	if p.V.IsNull() {
		return "", nil
	}

	rows, err := p.GetTextByRow()
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		words := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			words = append(words, word.S)
		}
		lines = append(lines, strings.Join(words, " "))
	}
	return strings.Join(lines, "\n"), nil
}

func decrypt(pdfData []byte, password string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(pdfData), &out, conf); err != nil {
		return nil, fmt.Errorf("failed to decrypt pdf: %w", err)
	}
	return out.Bytes(), nil
}
