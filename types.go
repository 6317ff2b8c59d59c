package docmerge

import (
	"fmt"
	"strings"
)

// Page number format constants.
const (
	FormatArabic = "arabic"
	FormatRoman  = "roman"
)

// Failure policy constants. PolicySkip omits a bad document and continues
// with the rest of the batch; PolicyAbort fails the whole merge.
const (
	PolicySkip  = "skip"
	PolicyAbort = "abort"
)

// DefaultRetryCap is the number of wrong password attempts allowed per
// document before the load fails.
const DefaultRetryCap = 3

// MergeOptions configures a single merge run. Immutable once passed to Merge.
type MergeOptions struct {
	GenerateTOC     bool   // prepend a generated table of contents
	AddPageNumbers  bool   // stamp a page number on every content page
	NumberFormat    string // "arabic" or "roman"
	StartPageNumber int    // displayed number of the first content page, >= 1
}

// DefaultMergeOptions returns options for a plain concatenation with
// arabic numbering starting at 1.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		GenerateTOC:     false,
		AddPageNumbers:  false,
		NumberFormat:    FormatArabic,
		StartPageNumber: 1,
	}
}

// Validate checks option values. Called by Merge before any document is
// loaded, so invalid options never cost a password prompt.
func (o MergeOptions) Validate() error {
	if o.StartPageNumber < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidStartPage, o.StartPageNumber)
	}
	if !isValidNumberFormat(o.NumberFormat) {
		return fmt.Errorf("%w: %q", ErrInvalidNumberFormat, o.NumberFormat)
	}
	return nil
}

// isValidNumberFormat checks if format is a known format (case-insensitive).
func isValidNumberFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatArabic, FormatRoman:
		return true
	}
	return false
}

// isValidPolicy checks if policy is a known failure policy (case-insensitive).
func isValidPolicy(policy string) bool {
	switch strings.ToLower(policy) {
	case PolicySkip, PolicyAbort:
		return true
	}
	return false
}

// DocumentInput is one entry of the caller-ordered merge list. Data holds the
// document already reduced to PDF bytes; Word inputs go through a
// DocxRenderer first.
type DocumentInput struct {
	Data  []byte
	Title string
}

// SkippedDocument records one input omitted under the skip policy.
type SkippedDocument struct {
	Index  int    // position in the caller-supplied input list
	Title  string // display title of the skipped input
	Reason error  // ErrMalformedDocument or ErrDecryptFailed (wrapped)
}

// MergeReport describes what a completed merge actually contained. It lets
// callers distinguish "merge failed, nothing produced" (an error from Merge)
// from "merge completed with N documents skipped".
type MergeReport struct {
	Merged  int // number of source documents that contributed pages
	Skipped []SkippedDocument
}

// MergeResult is the outcome of a successful merge.
type MergeResult struct {
	PDF    []byte     // the final well-formed PDF byte stream
	TOC    []TocEntry // populated when GenerateTOC was set
	Report MergeReport
}

// Option configures a Merger.
type Option func(*Merger)

// mergerConfig holds internal configuration for Merger.
type mergerConfig struct {
	retryCap int
	policy   string
}

// WithRetryCap sets the wrong-password retry cap per document.
// Panics if n <= 0 (programmer error, similar to time.NewTicker).
func WithRetryCap(n int) Option {
	if n <= 0 {
		panic("docmerge: WithRetryCap must be positive")
	}
	return func(m *Merger) {
		m.cfg.retryCap = n
	}
}

// WithFailurePolicy selects how per-document failures are resolved:
// PolicySkip (default) or PolicyAbort.
// Panics on an unknown policy (programmer error).
func WithFailurePolicy(policy string) Option {
	if !isValidPolicy(policy) {
		panic("docmerge: unknown failure policy " + policy)
	}
	return func(m *Merger) {
		m.cfg.policy = strings.ToLower(policy)
	}
}
