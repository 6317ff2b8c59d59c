package docmerge

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// PasswordRequest describes a suspended load waiting on credentials. Attempts
// counts passwords already tried; Remaining is how many tries are left before
// the document fails.
type PasswordRequest struct {
	Index     int
	Title     string
	Attempts  int
	Remaining int
}

// PasswordPrompt bridges the password-resolution protocol to the caller. A
// CLI may block on a terminal read; a GUI or network caller resolves the
// request on its own event loop and returns here. Returning ok=false cancels
// the load for that document.
type PasswordPrompt func(ctx context.Context, req PasswordRequest) (password string, ok bool)

// Merger runs the merge pipeline: load, compose, TOC, numbering, serialize.
// A Merger is stateless between calls; each Merge owns its full working set
// and releases it on completion or failure.
type Merger struct {
	cfg    mergerConfig
	loader documentLoader
}

// New creates a Merger with default configuration: skip-and-continue policy
// and a retry cap of DefaultRetryCap wrong passwords per document.
func New(opts ...Option) *Merger {
	m := &Merger{
		cfg: mergerConfig{
			retryCap: DefaultRetryCap,
			policy:   PolicySkip,
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	// Create loader if not injected (e.g., by tests)
	if m.loader == nil {
		m.loader = NewLoader(m.cfg.retryCap)
	}

	return m
}

// Merge concatenates the inputs, in order, into one PDF. Options are
// validated before any document is loaded. Per-document failures are resolved
// against the failure policy and reported in the result; whole-merge failures
// return an error and no bytes. The context is checked between per-document
// loads and before serialization.
func (m *Merger) Merge(ctx context.Context, inputs []DocumentInput, opts MergeOptions, prompt PasswordPrompt) (*MergeResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	// Loading. May suspend per document on PasswordRequired.
	docs := make([]*SourceDocument, 0, len(inputs))
	var loadSkips []SkippedDocument
	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := m.loadOne(ctx, i, in, prompt)
		if err != nil {
			if !isDocumentError(err) {
				return nil, err
			}
			if m.cfg.policy == PolicyAbort {
				return nil, fmt.Errorf("%w: document %d (%q): %v", ErrMergeAborted, i, in.Title, err)
			}
			if errors.Is(err, ErrDecryptFailed) {
				// Carry the failed handle; the compositor records the skip.
				docs = append(docs, failedDocument(i, in.Title, err))
			} else {
				loadSkips = append(loadSkips, SkippedDocument{Index: i, Title: in.Title, Reason: err})
			}
			continue
		}
		docs = append(docs, doc)
	}
	defer releaseAll(docs)

	// Composing.
	pages, composeSkips, err := Compose(docs, m.cfg.policy)
	if err != nil {
		return nil, err
	}
	skipped := mergeSkips(loadSkips, composeSkips)
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: all %d inputs skipped", ErrNoPages, len(inputs))
	}

	byID := docsByID(docs)

	// TOC building.
	var tocPDF []byte
	var entries []TocEntry
	tocPages := 0
	if opts.GenerateTOC {
		entries = buildEntries(pages, byID, opts.StartPageNumber)
		tocPages = tocPageCount(len(entries))
		tocPDF, err = renderTOC(entries, opts.NumberFormat)
		if err != nil {
			return nil, fmt.Errorf("building table of contents: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Serializing.
	ids := contributingIDs(pages)
	ordered := make([]*SourceDocument, len(ids))
	for i, id := range ids {
		ordered[i] = byID[id]
	}
	out, err := serialize(tocPDF, ordered)
	if err != nil {
		return nil, err
	}

	// Numbering.
	if opts.AddPageNumbers {
		numbers, numErr := numberingMap(len(pages), tocPages, opts)
		if numErr != nil {
			return nil, numErr
		}
		out, err = stampPageNumbers(out, numbers)
		if err != nil {
			return nil, err
		}
	}

	if err := validateOutput(out); err != nil {
		return nil, err
	}

	return &MergeResult{
		PDF: out,
		TOC: entries,
		Report: MergeReport{
			Merged:  len(ids),
			Skipped: skipped,
		},
	}, nil
}

// loadOne drives a single document through the load protocol, looping on
// PasswordRequired until the document unlocks, the caller cancels, or the
// retry cap trips.
func (m *Merger) loadOne(ctx context.Context, index int, in DocumentInput, prompt PasswordPrompt) (*SourceDocument, error) {
	res, err := m.loader.Load(index, in.Title, in.Data)
	if err != nil {
		return nil, err
	}

	for res.Token != nil {
		if prompt == nil {
			return nil, m.loader.Cancel(res.Token)
		}
		if err := ctx.Err(); err != nil {
			_ = m.loader.Cancel(res.Token)
			return nil, err
		}

		password, ok := prompt(ctx, PasswordRequest{
			Index:     index,
			Title:     in.Title,
			Attempts:  res.Token.Attempts(),
			Remaining: res.Token.Remaining(),
		})
		if !ok {
			return nil, m.loader.Cancel(res.Token)
		}

		res, err = m.loader.Resume(res.Token, password)
		if err != nil {
			return nil, err
		}
	}

	return res.Doc, nil
}

// isDocumentError reports whether err is terminal for one document only,
// as opposed to the whole merge (cancellation, serialization).
func isDocumentError(err error) bool {
	return errors.Is(err, ErrMalformedDocument) || errors.Is(err, ErrDecryptFailed)
}

// mergeSkips combines skip records from loading and composing into input
// order, so reports read top to bottom like the input list.
func mergeSkips(a, b []SkippedDocument) []SkippedDocument {
	out := make([]SkippedDocument, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// docsByID indexes loaded documents by their input position.
func docsByID(docs []*SourceDocument) map[int]*SourceDocument {
	byID := make(map[int]*SourceDocument, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	return byID
}

// releaseAll drops document bytes once the merge no longer needs them.
func releaseAll(docs []*SourceDocument) {
	for _, d := range docs {
		d.Release()
	}
}
