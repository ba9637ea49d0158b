package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dealscan/dealscan/constants"
	"github.com/dealscan/dealscan/internal/common"
	"github.com/dealscan/dealscan/internal/extract"
	"github.com/dealscan/dealscan/internal/fields"
	"github.com/dealscan/dealscan/internal/ocr"
	"github.com/dealscan/dealscan/internal/scan"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

type fileResult struct {
	Path string `json:"path"`
	extract.Result
}

func main() {
	var (
		dir      = flag.String("dir", "", "directory to scan for documents (required)")
		docType  = flag.String("type", "cof", "document type: cof | invoice | generic")
		maxFiles = flag.Int("max", 0, "maximum number of files to process (0 = config default)")
		maxDepth = flag.Int("max-depth", 0, "maximum scan depth (0 = config default)")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	// Results go to stdout as JSON lines; logs stay on stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, common.ErrProviderUnavailable) {
			logger.Warn("no model provider configured; pattern fallback only")
		} else {
			printError("Error: invalid configuration: %v\n", err)
			os.Exit(1)
		}
	}
	if *maxFiles > 0 {
		cfg.Scan.MaxFiles = *maxFiles
	}
	if *maxDepth > 0 {
		cfg.Scan.MaxDepth = *maxDepth
	}

	dt, known := constants.CanonicalDocType(*docType)
	if !known {
		logger.Warn("unknown document type, using generic", "type", *docType)
	}

	scanner := scan.NewScanner(scan.Config{MaxDepth: cfg.Scan.MaxDepth}, logger)
	files := scanner.Scan(*dir, cfg.Scan.MaxFiles)
	if len(files) == 0 {
		printError("Error: no matching documents under %s\n", *dir)
		os.Exit(1)
	}
	logger.Info("scan.complete", "dir", *dir, "files", len(files))

	acquirer := ocr.NewAcquirer(ocr.Config{
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
	}, logger)

	adapters := extract.BuildAdapters(ctx, cfg, logger)
	orch := extract.NewOrchestrator(adapters, acquirer,
		extract.Config{MinCriticalFields: cfg.Extract.MinCriticalFields}, logger)
	batch := extract.NewBatch(orch, cfg.Extract.DocumentsPerMin, cfg.Extract.Workers, logger)

	specs := defaultFields(dt)
	reqs := make([]extract.Request, len(files))
	for i, f := range files {
		reqs[i] = extract.Request{
			Fields:       specs,
			FileName:     filepath.Base(f.Path),
			DocType:      dt,
			DocumentPath: f.Path,
		}
	}

	results := batch.Process(ctx, reqs)

	enc := json.NewEncoder(os.Stdout)
	succeeded := 0
	for i, res := range results {
		if res.Success {
			succeeded++
		}
		if err := enc.Encode(fileResult{Path: files[i].Path, Result: res}); err != nil {
			printError("Error: encode result: %v\n", err)
		}
	}

	logger.Info("batch.complete", "documents", len(results), "succeeded", succeeded)
	if succeeded == 0 {
		os.Exit(1)
	}
}

// defaultFields is the field set requested per document type when the
// caller does not supply one.
func defaultFields(dt constants.DocType) []fields.Spec {
	switch dt {
	case constants.Invoice:
		return []fields.Spec{
			{Name: "company_name", DisplayName: "Company Name", Description: "the issuing company's legal name"},
			{Name: "invoice_number", DisplayName: "Invoice Number", Description: "the invoice identifier"},
			{Name: "invoice_date", DisplayName: "Invoice Date", Description: "the issue date"},
			{Name: "total_amount", DisplayName: "Total Amount", Description: "the final payable amount"},
			{Name: "currency", DisplayName: "Currency", Description: "ISO 4217 currency code"},
			{Name: "contact_email", DisplayName: "Contact Email", Description: "billing contact email address"},
		}
	case constants.ContractOfFinance:
		return []fields.Spec{
			{Name: "region", DisplayName: "Region", Description: "operating region: NA, EMEA, APAC or LATAM"},
			{Name: "company_name", DisplayName: "Company Name", Description: "the counterparty's legal name"},
			{Name: "floor_amount", DisplayName: "Floor Amount", Description: "the minimum funding commitment"},
			{Name: "period_months", DisplayName: "Period", Description: "the contract period in months"},
			{Name: "currency", DisplayName: "Currency", Description: "ISO 4217 currency code"},
			{Name: "contact_email", DisplayName: "Point of Contact", Description: "primary contact email address"},
		}
	default:
		return []fields.Spec{
			{Name: "company_name", DisplayName: "Company Name", Description: "the company's legal name"},
			{Name: "document_date", DisplayName: "Date", Description: "the document date"},
			{Name: "total_amount", DisplayName: "Amount", Description: "the main monetary amount"},
			{Name: "currency", DisplayName: "Currency", Description: "ISO 4217 currency code"},
			{Name: "contact_email", DisplayName: "Contact Email", Description: "contact email address"},
		}
	}
}
