package docmerge

import (
	"errors"
	"fmt"
	"testing"
)

// unlockedDoc builds a page-addressable document without going through the
// loader, for compositor-level tests.
func unlockedDoc(id int, title string, pages int) *SourceDocument {
	return &SourceDocument{
		ID:        id,
		Title:     title,
		PageCount: pages,
		State:     DecryptUnlocked,
		data:      []byte("stub"),
	}
}

func TestComposePreservesOrderAndProvenance(t *testing.T) {
	t.Parallel()

	docs := []*SourceDocument{
		unlockedDoc(0, "A", 3),
		unlockedDoc(1, "B", 5),
		unlockedDoc(2, "C", 2),
	}

	pages, skipped, err := Compose(docs, PolicySkip)
	if err != nil {
		t.Fatalf("Compose() unexpected error: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("Compose() skipped = %v, want none", skipped)
	}
	if len(pages) != 10 {
		t.Fatalf("Compose() page count = %d, want 10", len(pages))
	}

	// Straight concatenation: pages appear grouped by source, in input
	// order, with source-relative indexes counting up from zero.
	want := []Page{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 4},
		{2, 0}, {2, 1},
	}
	for i, p := range pages {
		if p != want[i] {
			t.Errorf("page %d = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestComposeSkipsEmptyDocumentsSilently(t *testing.T) {
	t.Parallel()

	docs := []*SourceDocument{
		unlockedDoc(0, "A", 2),
		unlockedDoc(1, "empty", 0),
		unlockedDoc(2, "C", 1),
	}

	pages, skipped, err := Compose(docs, PolicySkip)
	if err != nil {
		t.Fatalf("Compose() unexpected error: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("empty document must not appear in the skip report, got %v", skipped)
	}
	if len(pages) != 3 {
		t.Fatalf("Compose() page count = %d, want 3", len(pages))
	}
	if pages[2].SourceID != 2 {
		t.Errorf("last page source = %d, want 2", pages[2].SourceID)
	}
}

func TestComposeFailedDocumentSkipPolicy(t *testing.T) {
	t.Parallel()

	reason := fmt.Errorf("%w: cancelled for %q", ErrDecryptFailed, "locked")
	docs := []*SourceDocument{
		unlockedDoc(0, "A", 2),
		failedDocument(1, "locked", reason),
		unlockedDoc(2, "C", 3),
	}

	pages, skipped, err := Compose(docs, PolicySkip)
	if err != nil {
		t.Fatalf("Compose() unexpected error: %v", err)
	}
	if len(pages) != 5 {
		t.Fatalf("Compose() page count = %d, want 5", len(pages))
	}
	if len(skipped) != 1 {
		t.Fatalf("Compose() skipped = %v, want one entry", skipped)
	}
	if skipped[0].Index != 1 || skipped[0].Title != "locked" {
		t.Errorf("skip record = %+v, want index 1 title locked", skipped[0])
	}
	if !errors.Is(skipped[0].Reason, ErrDecryptFailed) {
		t.Errorf("skip reason = %v, want ErrDecryptFailed", skipped[0].Reason)
	}

	// The report keeps the loader's wording, not a bare sentinel.
	if skipped[0].Reason.Error() != reason.Error() {
		t.Errorf("skip reason = %q, want %q", skipped[0].Reason, reason)
	}
}

func TestComposeFailedDocumentAbortPolicy(t *testing.T) {
	t.Parallel()

	docs := []*SourceDocument{
		unlockedDoc(0, "A", 2),
		failedDocument(1, "locked", ErrDecryptFailed),
	}

	_, _, err := Compose(docs, PolicyAbort)
	if !errors.Is(err, ErrMergeAborted) {
		t.Fatalf("Compose() error = %v, want ErrMergeAborted", err)
	}
}

func TestContributingIDs(t *testing.T) {
	t.Parallel()

	pages := []Page{
		{0, 0}, {0, 1},
		{2, 0},
		{3, 0}, {3, 1}, {3, 2},
	}
	got := contributingIDs(pages)
	want := []int{0, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("contributingIDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("contributingIDs()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
