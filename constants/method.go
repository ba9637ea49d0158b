package constants

// Extraction method tags. These identify which backend produced a
// result (provenance) and are stable values reported to callers.
const (
	MethodOpenAI          = "openai"
	MethodAnthropic       = "anthropic"
	MethodGemini          = "gemini"
	MethodPatternFallback = "pattern-fallback"
	MethodNone            = "none"
	MethodError           = "error"
)

// Text acquisition method tags.
const (
	AcquirePDFText = "pdf-text"
	AcquirePDFOCR  = "pdf-ocr"
	AcquirePlain   = "plain-text"
)
