package ocr

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// maxTextBytes caps how much extracted text we keep per document.
const maxTextBytes = 2 << 20

// pdfText extracts the embedded text layer of a PDF. Pages whose
// content stream cannot be decoded are skipped; the pages that do
// decode still count.
func pdfText(path string) (string, int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	pages := 0
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if b.Len()+len(content) > maxTextBytes {
			break
		}
		b.WriteString(content)
		b.WriteString("\n")
		pages++
	}
	return b.String(), pages, nil
}

// pdfPageCount reads the page count without parsing content streams.
// Best effort: callers fall back to probing page by page when it fails.
func pdfPageCount(path string) (int, error) {
	return api.PageCountFile(path)
}
