package pipeline

import "fmt"

// ProbeError reports a failed media probe during scan or duration lookup.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string { return fmt.Sprintf("probe %s: %v", e.Path, e.Err) }
func (e *ProbeError) Unwrap() error { return e.Err }

// ValidationError reports input that cannot be rendered as configured.
type ValidationError struct {
	Subject string
	Reason  string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid %s: %s", e.Subject, e.Reason) }

// RenderError reports a failed per-clip encode.
type RenderError struct {
	PairNumber string
	Stage      string
	Err        error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render pair %s (%s): %v", e.PairNumber, e.Stage, e.Err)
}
func (e *RenderError) Unwrap() error { return e.Err }

// MergeError reports a failed assembly stage (concat, transitions,
// finalization).
type MergeError struct {
	Stage string
	Err   error
}

func (e *MergeError) Error() string { return fmt.Sprintf("merge (%s): %v", e.Stage, e.Err) }
func (e *MergeError) Unwrap() error { return e.Err }

// OverlayError reports a failed overlay pass. It is non-fatal: the
// assembler keeps the pre-overlay output and logs the error.
type OverlayError struct {
	OverlayFile string
	Err         error
}

func (e *OverlayError) Error() string {
	return fmt.Sprintf("overlay %s: %v", e.OverlayFile, e.Err)
}
func (e *OverlayError) Unwrap() error { return e.Err }
