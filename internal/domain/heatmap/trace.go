package heatmap

// Tracer observes aggregation and click-resolution steps. It is injected by
// callers that want visibility (debug builds, tests); production callers pass
// nil and pay nothing.
type Tracer interface {
	Trace(event string, detail map[string]any)
}

// TracerFunc adapts a plain function to the Tracer interface.
type TracerFunc func(event string, detail map[string]any)

func (f TracerFunc) Trace(event string, detail map[string]any) { f(event, detail) }

// trace is a nil-safe helper used throughout the package.
func trace(tr Tracer, event string, detail map[string]any) {
	if tr != nil {
		tr.Trace(event, detail)
	}
}
