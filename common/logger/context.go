package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context. Fields flow through context enrichment, so business context
// (subject_id, run_id, etc.) is included in every log statement without the
// call site naming it.
type LogFields struct {
	SubjectID    *string // subject under analysis
	AnalysisType *string // "correlations", "score" or "briefing"
	RunID        *int64  // analysis run ID
	Category     *string // measurement category ("heart", "sleep", "activity", "lab")
	WindowDays   *int    // analysis window size
	Component    string  // component name (OTel semantic convention style, e.g. "pulse.analysis.alerts")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking
// precedence. Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, update LogFields) LogFields {
	result := existing

	if update.SubjectID != nil {
		result.SubjectID = update.SubjectID
	}
	if update.AnalysisType != nil {
		result.AnalysisType = update.AnalysisType
	}
	if update.RunID != nil {
		result.RunID = update.RunID
	}
	if update.Category != nil {
		result.Category = update.Category
	}
	if update.WindowDays != nil {
		result.WindowDays = update.WindowDays
	}
	if update.Component != "" {
		result.Component = update.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{SubjectID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}
