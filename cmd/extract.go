package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/config"
	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/dto"
	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/service"
)

var (
	extractFile     string
	extractPassword string
	extractFormat   string
	extractOutput   string
	removeCommas    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract invoice fields from a PDF or text file",
	Long: `Extract reads a .pdf file through its text layer, or a .txt file as is,
and prints the extracted fields. Amount warnings are written to stderr.

Example Usage:
  pdfextract extract --file factura.pdf
  pdfextract extract --file factura.pdf --password secreto --format values
  pdfextract extract --file factura.txt --format xlsx --output factura.xlsx`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "PDF or text file to extract (required)")
	extractCmd.Flags().StringVar(&extractPassword, "password", "", "Password of an encrypted PDF")
	extractCmd.Flags().StringVar(&extractFormat, "format", "text", "Output format: text, values, json or xlsx")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Write the export to this file instead of stdout")
	extractCmd.Flags().BoolVar(&removeCommas, "remove-commas", true, "Strip thousands separators from values")
	_ = extractCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	format, err := service.ParseExportFormat(extractFormat)
	if err != nil {
		return err
	}
	opts := service.ExportOptions{RemoveCommas: cfg.RemoveCommas}
	if cmd.Flags().Changed("remove-commas") {
		opts.RemoveCommas = removeCommas
	}

	invoiceService := service.NewInvoiceService(
		service.NewPDFProcessor(cfg.MaxPages),
		service.NewSessionStore(cfg.SessionTTL),
		service.NewAmountValidator(),
	)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	resp, err := extractPath(ctx, invoiceService, extractFile, extractPassword)
	if err != nil {
		return err
	}

	for _, w := range resp.Validation.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", w.Field, w.Message)
	}

	result, err := service.Export(resp.Session.Record, format, opts)
	if err != nil {
		return err
	}
	return writeExport(cmd.OutOrStdout(), extractOutput, result)
}

// extractPath runs extraction on a file, reading .pdf files through the PDF
// text layer and anything else as plain text
func extractPath(ctx context.Context, invoiceService *service.InvoiceService, path, password string) (*dto.ExtractionResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		log.Printf("Extracting %s", path)
		return invoiceService.ProcessPDF(ctx, data, password)
	}
	return invoiceService.ProcessText(ctx, string(data))
}

func writeExport(stdout io.Writer, output string, result *service.ExportResult) error {
	if output == "" {
		if result.Extension == "xlsx" {
			return fmt.Errorf("xlsx output needs --output")
		}
		_, err := fmt.Fprintln(stdout, string(result.Data))
		return err
	}
	if err := os.WriteFile(output, result.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}
