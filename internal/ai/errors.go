package ai

import "fmt"

// rawExcerptLen bounds how much of the model's raw output is carried in errors.
const rawExcerptLen = 200

// GenerationError is returned when the story model call fails or its output
// cannot be turned into a valid plan. Raw holds a truncated excerpt of the
// model output for diagnosis; it never contains credentials.
// Transient marks transport-level failures that are safe to retry.
// Validation failures are permanent and must not be retried.
type GenerationError struct {
	Reason    string
	Raw       string
	Transient bool
	Err       error
}

func (e *GenerationError) Error() string {
	msg := "generation failed: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Raw != "" {
		msg += fmt.Sprintf(" (raw: %q)", e.Raw)
	}
	return msg
}

func (e *GenerationError) Unwrap() error { return e.Err }

func newGenerationError(reason, raw string, transient bool, err error) *GenerationError {
	return &GenerationError{
		Reason:    reason,
		Raw:       truncateRaw(raw),
		Transient: transient,
		Err:       err,
	}
}

func truncateRaw(s string) string {
	if len(s) > rawExcerptLen {
		return s[:rawExcerptLen]
	}
	return s
}
