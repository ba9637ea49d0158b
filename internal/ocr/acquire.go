// Package ocr turns documents into plain text. The primary path reads
// the embedded text layer; when that yields too little, pages are
// rasterized and run through text recognition one at a time.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dealscan/dealscan/constants"
	"github.com/dealscan/dealscan/internal/common"
)

type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI, tuned for recognition accuracy; default 300
	MaxPages      int    // default 10
	MinTextLength int    // below this, direct text is considered insufficient; default 32
}

// AcquireResult summarizes one text acquisition.
type AcquireResult struct {
	Success        bool
	Text           string
	PagesProcessed int
	Method         string
	Language       string
	Confidence     float32
	Duration       time.Duration
	Warnings       []string
}

type Acquirer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewAcquirer(cfg Config, logger *slog.Logger) *Acquirer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 10
	}
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = 32
	}
	return &Acquirer{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Acquire produces plain text for the document at path. Strategy is
// picked by extension: .txt is read directly, PDFs try the text layer
// first and fall back to page-wise OCR.
func (a *Acquirer) Acquire(ctx context.Context, path string) (AcquireResult, error) {
	start := time.Now()
	format := constants.MapExtToFormat(filepath.Ext(path))
	a.logger.Debug("acquire.start", "path", path, "format", format)

	switch format {
	case constants.TXT:
		res, err := a.readPlain(path)
		res.Duration = time.Since(start)
		return res, err
	case constants.PDF:
		res, err := a.acquirePDF(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	default:
		a.logger.Error("acquire.unsupported_extension", "path", path)
		return AcquireResult{}, common.NewAppError("ACQUIRE_UNSUPPORTED",
			fmt.Sprintf("unsupported extension: %q", filepath.Ext(path)), common.ErrAcquisitionFailed)
	}
}

func (a *Acquirer) readPlain(path string) (AcquireResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return AcquireResult{}, common.WrapError(err, "read text file")
	}
	text := string(b)
	return AcquireResult{
		Success:        strings.TrimSpace(text) != "",
		Text:           text,
		PagesProcessed: 1,
		Method:         constants.AcquirePlain,
		Confidence:     1.0,
	}, nil
}

func (a *Acquirer) acquirePDF(ctx context.Context, path string) (AcquireResult, error) {
	text, pages, err := pdfText(path)
	if err == nil && len(strings.TrimSpace(text)) >= a.cfg.MinTextLength {
		return AcquireResult{
			Success:        true,
			Text:           text,
			PagesProcessed: pages,
			Method:         constants.AcquirePDFText,
			Confidence:     1.0,
		}, nil
	}

	var warnings []string
	if err != nil {
		warnings = append(warnings, err.Error())
		a.logger.Warn("acquire.pdf_text_failed", "path", path, "error", err)
	} else {
		a.logger.Info("acquire.pdf_text_insufficient", "path", path, "text_len", len(text))
	}

	res, ocrErr := a.ocrPages(ctx, path)
	res.Warnings = append(warnings, res.Warnings...)
	return res, ocrErr
}

// ocrPages renders and recognizes pages one at a time, bounded by
// MaxPages. A page the renderer cannot produce is the end of the
// document, not an error; a page the recognizer fails on is logged and
// skipped so pages already recognized are never voided.
func (a *Acquirer) ocrPages(ctx context.Context, path string) (AcquireResult, error) {
	maxPages := a.cfg.MaxPages
	if total, err := pdfPageCount(path); err == nil && total < maxPages {
		maxPages = total
	}

	tmpDir, err := os.MkdirTemp("", "dealscan-ocr-*")
	if err != nil {
		return AcquireResult{}, common.WrapError(err, "create temp dir")
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			a.logger.Warn("acquire.tmp_cleanup_failed", "dir", tmpDir, "error", rmErr)
		}
	}()

	var b strings.Builder
	var warnings []string
	processed := 0
	recognized := 0

	for page := 1; page <= maxPages; page++ {
		img, rendered := a.renderPage(ctx, path, tmpDir, page)
		if !rendered {
			// beyond the last page: normal terminal condition
			break
		}

		processed++
		txt, err := a.recognize(ctx, img)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", page, err))
			a.logger.Warn("acquire.page_recognition_failed", "path", path, "page", page, "error", err)
			continue
		}
		if strings.TrimSpace(txt) == "" {
			continue
		}
		fmt.Fprintf(&b, "--- Page %d ---\n%s\n", page, txt)
		recognized++
	}

	text := b.String()
	res := AcquireResult{
		Success:        recognized > 0,
		Text:           text,
		PagesProcessed: processed,
		Method:         constants.AcquirePDFOCR,
		Language:       a.cfg.TesseractLang,
		Confidence:     heuristicConfidence(text),
		Warnings:       warnings,
	}
	if recognized == 0 {
		return res, common.NewAppError("ACQUIRE_EMPTY",
			fmt.Sprintf("no page yielded text: %s", path), common.ErrAcquisitionFailed)
	}
	return res, nil
}

// renderPage rasterizes a single page to PNG and returns the file path.
// The renderer signals "beyond last page" by producing no output file.
func (a *Acquirer) renderPage(ctx context.Context, path, tmpDir string, page int) (string, bool) {
	prefix := filepath.Join(tmpDir, fmt.Sprintf("p%d", page))
	pageArg := fmt.Sprintf("%d", page)
	_, _, err := a.runner.Run(ctx, a.cfg.Pdftoppm,
		"-f", pageArg, "-l", pageArg,
		"-r", fmt.Sprintf("%d", a.cfg.DPI),
		"-png", path, prefix)
	matches, _ := filepath.Glob(prefix + "-*.png")
	if len(matches) == 0 {
		if err != nil {
			a.logger.Debug("acquire.render_stopped", "path", path, "page", page, "error", err)
		}
		return "", false
	}
	sort.Strings(matches)
	return matches[0], true
}

func (a *Acquirer) recognize(ctx context.Context, imagePath string) (string, error) {
	out, errb, err := a.runner.Run(ctx, a.cfg.Tesseract,
		imagePath, "stdout", "-l", a.cfg.TesseractLang)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 512))
	}
	return string(out), nil
}
