package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealscan/dealscan/constants"
	"github.com/dealscan/dealscan/internal/common"
)

// stubRunner plays pdftoppm and tesseract: rendering a page past
// totalPages produces no output file, and recognition answers from the
// pageText script (an error entry fails that page).
type stubRunner struct {
	t          *testing.T
	totalPages int
	pageText   map[int]string
	pageErr    map[int]error

	rendered   []int
	recognized int
}

func (r *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.t.Helper()
	switch {
	case strings.Contains(name, "pdftoppm"):
		return r.render(args)
	case strings.Contains(name, "tesseract"):
		return r.recognize(args)
	default:
		r.t.Fatalf("unexpected command %q", name)
		return nil, nil, nil
	}
}

func (r *stubRunner) render(args []string) ([]byte, []byte, error) {
	var page int
	_, err := fmt.Sscanf(args[1], "%d", &page)
	require.NoError(r.t, err)
	r.rendered = append(r.rendered, page)

	if page > r.totalPages {
		return nil, []byte("Wrong page range given"), errors.New("exit status 99")
	}
	prefix := args[len(args)-1]
	out := fmt.Sprintf("%s-%02d.png", prefix, page)
	require.NoError(r.t, os.WriteFile(out, []byte("png"), 0o644))
	return nil, nil, nil
}

func (r *stubRunner) recognize(args []string) ([]byte, []byte, error) {
	r.recognized++
	base := filepath.Base(args[0]) // p<N>-<NN>.png
	var page int
	_, err := fmt.Sscanf(base, "p%d-", &page)
	require.NoError(r.t, err)

	if e := r.pageErr[page]; e != nil {
		return nil, []byte("recognition error"), e
	}
	return []byte(r.pageText[page]), nil, nil
}

func newTestAcquirer(r *stubRunner) *Acquirer {
	a := NewAcquirer(Config{MaxPages: 10}, nil)
	a.runner = r
	return a
}

func TestOcrPagesStopsAtLastPage(t *testing.T) {
	runner := &stubRunner{t: t, totalPages: 2, pageText: map[int]string{
		1: "Floor Amount: $1,250,000 in USD",
		2: "Region: EMEA",
	}}
	a := newTestAcquirer(runner)

	res, err := a.ocrPages(context.Background(), "deal.pdf")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.PagesProcessed)
	assert.Equal(t, constants.AcquirePDFOCR, res.Method)
	assert.Contains(t, res.Text, "--- Page 1 ---")
	assert.Contains(t, res.Text, "Region: EMEA")
	// the probe past the last page terminates the loop, silently
	assert.Equal(t, []int{1, 2, 3}, runner.rendered)
}

func TestOcrPagesSkipsFailedPage(t *testing.T) {
	runner := &stubRunner{
		t:          t,
		totalPages: 3,
		pageText:   map[int]string{1: "page one text", 3: "page three text"},
		pageErr:    map[int]error{2: errors.New("exit status 1")},
	}
	a := newTestAcquirer(runner)

	res, err := a.ocrPages(context.Background(), "deal.pdf")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 3, res.PagesProcessed, "a failed page still advances the counter")
	assert.Contains(t, res.Text, "page one text")
	assert.NotContains(t, res.Text, "--- Page 2 ---")
	assert.Contains(t, res.Text, "page three text")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "page 2")
}

func TestOcrPagesAllEmptyIsFailure(t *testing.T) {
	runner := &stubRunner{t: t, totalPages: 2, pageText: map[int]string{
		1: "   ",
		2: "",
	}}
	a := newTestAcquirer(runner)

	res, err := a.ocrPages(context.Background(), "deal.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrAcquisitionFailed))
	assert.False(t, res.Success)
	assert.Equal(t, 2, res.PagesProcessed)
}

func TestOcrPagesHonorsMaxPages(t *testing.T) {
	runner := &stubRunner{t: t, totalPages: 50, pageText: map[int]string{1: "text"}}
	a := NewAcquirer(Config{MaxPages: 3}, nil)
	a.runner = runner

	res, err := a.ocrPages(context.Background(), "deal.pdf")
	require.NoError(t, err)
	assert.Equal(t, 3, res.PagesProcessed)
	assert.Equal(t, []int{1, 2, 3}, runner.rendered)
}

func TestAcquireReadsPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("Counterparty: Acme Holdings Ltd\n"), 0o644))

	a := NewAcquirer(Config{}, nil)
	res, err := a.Acquire(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, constants.AcquirePlain, res.Method)
	assert.Equal(t, float32(1.0), res.Confidence)
	assert.Contains(t, res.Text, "Acme Holdings")
}

func TestAcquireRejectsUnsupportedExtension(t *testing.T) {
	a := NewAcquirer(Config{}, nil)
	_, err := a.Acquire(context.Background(), "diagram.svg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrAcquisitionFailed))
}

func TestHeuristicConfidence(t *testing.T) {
	low := heuristicConfidence("short garbled output")
	rich := heuristicConfidence("Signed 2024-03-15, floor amount 1,250,000 USD, region EMEA. " +
		strings.Repeat("Additional contract language follows. ", 3))

	assert.Less(t, low, rich)
	assert.LessOrEqual(t, rich, float32(1.0))
	assert.GreaterOrEqual(t, low, float32(0.2))
}
