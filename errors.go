package docmerge

import "errors"

// Sentinel errors for merge operations.
var (
	// Per-document errors. Resolved locally against the failure policy.
	ErrMalformedDocument = errors.New("malformed PDF document")
	ErrWrongPassword     = errors.New("wrong password")
	ErrDecryptFailed     = errors.New("document decryption failed")

	// Whole-merge errors. Always terminal; no partial output is returned.
	ErrNoInputs      = errors.New("no input documents provided")
	ErrNoPages       = errors.New("no pages to merge")
	ErrMergeAborted  = errors.New("merge aborted")
	ErrSerialization = errors.New("output serialization failed")

	// Option validation errors. Surfaced before any document is loaded.
	ErrInvalidStartPage    = errors.New("start page number must be >= 1")
	ErrInvalidNumberFormat = errors.New("invalid page number format")
	ErrInvalidPolicy       = errors.New("invalid failure policy")

	// Roman numeral codec errors.
	ErrRomanOutOfRange  = errors.New("value out of Roman numeral range [1, 3999]")
	ErrRomanNotPositive = errors.New("Roman numeral value must be positive")
	ErrRomanParse       = errors.New("invalid Roman numeral")

	// Loader protocol errors.
	ErrStaleToken = errors.New("resume token already consumed")

	// Rendering collaborator errors.
	ErrRendererNotFound = errors.New("document renderer binary not found")
	ErrRenderFailed     = errors.New("document rendering failed")
)
