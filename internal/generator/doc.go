// Package generator turns a template request into a project on disk.
//
// # Entry points
//
//   - Generate runs the full pipeline and reports progress as events
//   - Preview renders the same layout in memory, touching nothing
//   - Validate checks a request without mutating anything
//
// # Pipeline
//
// A run validates the request, opens a staging workspace next to the
// destination, then runs its steps in order:
//
//	materialize → git → environment → commands → manifest
//
// and finally moves the workspace into place. Every step is marked fatal or
// not (see Steps). A fatal failure deletes the workspace and the destination
// is left as it was; a non-fatal failure becomes a warning event and the run
// continues.
//
// # Events
//
// Progress is delivered to a Sink as (message, severity) pairs in emission
// order. The package never prints; callers decide how to show events.
//
//	outcome := generator.Generate(ctx, req, func(e generator.Event) {
//	    fmt.Println(e.Severity, e.Message)
//	}, generator.Options{})
//	if !outcome.Success {
//	    return outcome.Err
//	}
package generator
