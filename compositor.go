package docmerge

import "fmt"

// Page is one output page with its provenance: which input document it came
// from and at which index. The source id is a back-reference, not an
// ownership edge; the source may be released once its pages are serialized.
type Page struct {
	SourceID    int
	SourceIndex int
}

// Compose walks the loaded documents strictly in caller order and appends one
// Page per source page, original order preserved. No reordering, no
// deduplication. Sources with zero pages contribute nothing and are skipped
// silently. Sources that failed to decrypt are resolved against the failure
// policy: PolicySkip records them and continues, PolicyAbort fails the merge.
func Compose(docs []*SourceDocument, policy string) ([]Page, []SkippedDocument, error) {
	var pages []Page
	var skipped []SkippedDocument

	for _, doc := range docs {
		if doc.State == DecryptFailed {
			reason := doc.failure
			if reason == nil {
				reason = ErrDecryptFailed
			}
			if policy == PolicyAbort {
				return nil, nil, fmt.Errorf("%w: document %d (%q): %v", ErrMergeAborted, doc.ID, doc.Title, reason)
			}
			skipped = append(skipped, SkippedDocument{
				Index:  doc.ID,
				Title:  doc.Title,
				Reason: reason,
			})
			continue
		}

		for i := 0; i < doc.PageCount; i++ {
			pages = append(pages, Page{SourceID: doc.ID, SourceIndex: i})
		}
	}

	return pages, skipped, nil
}

// contributingIDs returns the source ids that contributed at least one page,
// in output order. Used by the TOC builder and the serializer, which must
// agree on which documents made it into the output.
func contributingIDs(pages []Page) []int {
	var ids []int
	last := -1
	for _, p := range pages {
		if p.SourceID != last {
			ids = append(ids, p.SourceID)
			last = p.SourceID
		}
	}
	return ids
}
