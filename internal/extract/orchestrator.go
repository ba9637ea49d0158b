// Package extract sequences heterogeneous extraction backends over one
// document: model adapters in priority order, then a regex fallback,
// with validation and a stopping policy in between.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dealscan/dealscan/constants"
	"github.com/dealscan/dealscan/internal/common"
	"github.com/dealscan/dealscan/internal/fields"
	"github.com/dealscan/dealscan/internal/llm"
	"github.com/dealscan/dealscan/internal/ocr"
	"github.com/dealscan/dealscan/internal/pattern"
)

// TextAcquirer is the OCR capability the orchestrator falls back to
// when a request arrives without text.
type TextAcquirer interface {
	Acquire(ctx context.Context, path string) (ocr.AcquireResult, error)
}

// Config holds orchestrator thresholds.
type Config struct {
	// MinCriticalFields is the minimum critical-field count a model
	// candidate must reach to suppress the pattern fallback.
	MinCriticalFields int
	// AdapterTimeout wraps each model call; a timeout is treated like
	// any other adapter failure.
	AdapterTimeout time.Duration
}

type Orchestrator struct {
	adapters []llm.ModelAdapter
	acquirer TextAcquirer
	cfg      Config
	logger   *slog.Logger
}

// NewOrchestrator builds an orchestrator over adapters in priority
// order (earlier adapters are tried, and win ties, first).
func NewOrchestrator(adapters []llm.ModelAdapter, acquirer TextAcquirer, cfg Config, logger *slog.Logger) *Orchestrator {
	if cfg.MinCriticalFields <= 0 {
		cfg.MinCriticalFields = 2
	}
	if cfg.AdapterTimeout <= 0 {
		cfg.AdapterTimeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{adapters: adapters, acquirer: acquirer, cfg: cfg, logger: logger}
}

// Extract runs the full cascade for one document. The returned Result
// is always complete (one entry per requested field); the error is
// non-nil only for the conditions a batch caller must see explicitly:
// an internal fault, or empty input with no document path to fall back
// to. Even then the Result is well-formed.
func (o *Orchestrator) Extract(ctx context.Context, req Request) (res Result, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("extract.panic", "file", req.FileName, "panic", r)
			res = emptyResult(req, constants.MethodError, fmt.Sprintf("internal error: %v", r))
			err = common.NewAppError("EXTRACT_PANIC", fmt.Sprintf("%v", r), common.ErrFatal)
		}
	}()

	o.logger.Info("extract.start",
		"file", req.FileName,
		"doc_type", string(req.DocType),
		"fields", len(req.Fields),
		"text_len", len(req.DocumentText),
	)

	text := req.DocumentText
	if strings.TrimSpace(text) == "" {
		text, err = o.acquireText(ctx, req)
		if err != nil {
			return emptyResult(req, constants.MethodNone, err.Error()), err
		}
		if strings.TrimSpace(text) == "" {
			return emptyResult(req, constants.MethodNone, "no text could be acquired"), nil
		}
	}

	best := o.tryModels(ctx, req, text)

	if best == nil || best.criticalFound < o.cfg.MinCriticalFields {
		if fb := o.patternFallback(req, text); fb != nil {
			if best == nil {
				best = fb
			} else {
				// The fallback never replaces a model candidate; it only
				// backfills fields the model left null.
				for name, v := range fb.data {
					if best.data[name] == nil && v != nil {
						best.data[name] = v
					}
				}
			}
		}
	}

	if best == nil {
		return emptyResult(req, constants.MethodNone, "all extraction backends failed"), nil
	}

	res = Result{
		Success:             countNonNull(best.data) > 0,
		Data:                best.data,
		Method:              best.method,
		ExtractedFieldCount: countNonNull(best.data),
		TotalFields:         len(req.Fields),
		CriticalFieldsFound: best.criticalFound,
	}
	o.logger.Info("extract.done",
		"file", req.FileName,
		"method", res.Method,
		"extracted", res.ExtractedFieldCount,
		"critical", res.CriticalFieldsFound,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (o *Orchestrator) acquireText(ctx context.Context, req Request) (string, error) {
	if req.DocumentPath == "" {
		return "", common.NewAppError("EXTRACT_NO_PATH",
			"empty document text and no document path for OCR fallback", common.ErrAcquisitionFailed)
	}
	o.logger.Info("extract.ocr_fallback", "file", req.FileName, "path", req.DocumentPath)
	acq, err := o.acquirer.Acquire(ctx, req.DocumentPath)
	if err != nil || !acq.Success {
		o.logger.Warn("extract.ocr_failed", "file", req.FileName, "error", err)
		return "", nil
	}
	return acq.Text, nil
}

// tryModels iterates the adapters in priority order, keeping the best
// candidate by critical-field count (ties keep the earlier, higher
// priority one) and stopping early once every requested critical field
// is satisfied.
func (o *Orchestrator) tryModels(ctx context.Context, req Request, text string) *candidate {
	criticalWanted := fields.CriticalRequested(req.DocType, req.Fields)
	prompt := llm.BuildPrompt(llm.PromptInput{
		DocumentText: text,
		Fields:       req.Fields,
		FileName:     req.FileName,
		DocType:      req.DocType,
	})

	var best *candidate
	for _, adapter := range o.adapters {
		cand := o.tryAdapter(ctx, adapter, req, prompt)
		if cand == nil {
			continue
		}
		if best == nil || cand.criticalFound > best.criticalFound {
			best = cand
		}
		if criticalWanted > 0 && best.criticalFound >= criticalWanted {
			o.logger.Info("extract.early_stop",
				"file", req.FileName,
				"method", best.method,
				"critical", best.criticalFound,
			)
			break
		}
	}
	return best
}

func (o *Orchestrator) tryAdapter(ctx context.Context, adapter llm.ModelAdapter, req Request, prompt string) *candidate {
	callCtx, cancel := context.WithTimeout(ctx, o.cfg.AdapterTimeout)
	defer cancel()

	raw, err := adapter.Call(callCtx, prompt)
	if err != nil {
		o.logger.Warn("extract.adapter_failed",
			"file", req.FileName, "adapter", adapter.Name(), "error", err)
		return nil
	}

	parsed, err := llm.ParseFields(raw, req.Fields)
	if err != nil {
		o.logger.Warn("extract.adapter_parse_failed",
			"file", req.FileName, "adapter", adapter.Name(), "error", err)
		return nil
	}

	data := o.validateAll(req.Fields, parsed)
	cand := &candidate{
		data:          data,
		method:        adapter.Name(),
		criticalFound: fields.CountCritical(req.DocType, req.Fields, data),
	}
	o.logger.Info("extract.adapter_candidate",
		"file", req.FileName,
		"adapter", adapter.Name(),
		"extracted", countNonNull(data),
		"critical", cand.criticalFound,
	)
	return cand
}

// validateAll runs every parsed value through the field validator.
// Rejected values become explicit nils; the map always covers every
// requested field.
func (o *Orchestrator) validateAll(specs []fields.Spec, parsed map[string]*string) map[string]*string {
	data := make(map[string]*string, len(specs))
	for _, spec := range specs {
		raw := parsed[spec.Name]
		if raw == nil {
			data[spec.Name] = nil
			continue
		}
		outcome := fields.Validate(spec.Name, *raw)
		if !outcome.Valid {
			o.logger.Debug("extract.field_rejected",
				"field", spec.Name, "reason", outcome.Reason)
			data[spec.Name] = nil
			continue
		}
		normalized := outcome.Normalized
		data[spec.Name] = &normalized
	}
	return data
}

// patternFallback runs the regex extractor over the (section-focused)
// text. Its criticalFound is always zero: it is a best-effort backstop,
// not an equally trustworthy backend.
func (o *Orchestrator) patternFallback(req Request, text string) *candidate {
	searchText, focused := pattern.FocusSection(text)
	o.logger.Info("extract.pattern_fallback",
		"file", req.FileName, "section_focused", focused)

	data := make(map[string]*string, len(req.Fields))
	for _, spec := range req.Fields {
		data[spec.Name] = nil
		match := pattern.Extract(spec, searchText)
		if match == nil {
			continue
		}
		outcome := fields.Validate(spec.Name, *match)
		if !outcome.Valid {
			continue
		}
		normalized := outcome.Normalized
		data[spec.Name] = &normalized
	}
	if countNonNull(data) == 0 {
		return nil
	}
	return &candidate{data: data, method: constants.MethodPatternFallback, criticalFound: 0}
}
