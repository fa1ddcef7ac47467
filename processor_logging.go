package jsonnode

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// logError logs a failed operation with a short, sanitized preview of the
// input.
func (p *Processor) logError(ctx context.Context, operation, input string, err error) {
	logger := p.getLogger()
	if logger == nil {
		return
	}

	errorType := classifyError(err)
	if p.metrics != nil {
		p.metrics.RecordError(errorType)
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("error", sanitizeError(err)),
		slog.String("error_type", errorType),
		slog.String("processor_id", p.getProcessorID()),
		slog.Bool("cache_enabled", p.cache.Enabled()),
	}
	var nodeErr *NodeError
	if errors.As(err, &nodeErr) && nodeErr.Offset >= 0 {
		attrs = append(attrs, slog.Int("offset", nodeErr.Offset))
	}
	if input != "" {
		attrs = append(attrs,
			slog.Int("input_size", len(input)),
			slog.String("input_preview", previewInput(input)),
		)
	}
	logger.LogAttrs(ctx, slog.LevelError, "JSON operation failed", attrs...)
}

// classifyError maps an error to the sentinel name used as a metric label
func classifyError(err error) string {
	switch {
	case errors.Is(err, ErrUnbalancedBrackets):
		return "unbalanced_brackets"
	case errors.Is(err, ErrUnterminatedString):
		return "unterminated_string"
	case errors.Is(err, ErrInvalidEscape):
		return "invalid_escape"
	case errors.Is(err, ErrCorruptStream):
		return "corrupt_stream"
	case errors.Is(err, ErrTruncatedStream):
		return "truncated_stream"
	case errors.Is(err, ErrSizeLimit):
		return "size_limit"
	case errors.Is(err, ErrDepthLimit):
		return "depth_limit"
	case errors.Is(err, ErrProcessorClosed):
		return "processor_closed"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrDecode):
		return "decode"
	default:
		return "unknown"
	}
}

// previewInput returns the start of the input with control characters
// replaced, cut at maxPreviewLength bytes on a rune boundary.
func previewInput(input string) string {
	preview := truncateString(input, maxPreviewLength)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, preview)
}

// sanitizeError bounds the length of logged error messages
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return truncateString(err.Error(), 200)
}

// truncateString truncates s to at most maxLen bytes plus an ellipsis
// without splitting a rune.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
