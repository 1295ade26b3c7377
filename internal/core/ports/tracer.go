package ports

import "context"

// Span represents an in-flight traced operation.
type Span interface {
	// End completes the span. A non-nil err marks the span as failed.
	End(err error)
}

// Tracer creates spans around pipeline operations (fetch, diff, scenario
// execution) so their timing and outcome can be observed.
type Tracer interface {
	// StartSpan begins a span with the given name and attributes, returning
	// a context carrying the span for child operations.
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, Span)
}
