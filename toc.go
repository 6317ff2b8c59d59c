package docmerge

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// TOC layout constants. tocRowsPerPage is sized so a full page of rows plus
// the first-page heading fits inside the A4 type area.
const (
	tocRowsPerPage   = 28
	tocRowHeightMM   = 8.0
	tocTitleMaxRunes = 60
)

// TocEntry maps one contributing document's title to the displayed page
// number of its first page. Entries are ordered by input order, never
// alphabetically.
type TocEntry struct {
	Title      string
	TargetPage int
}

// buildEntries computes the table of contents for a composed page list.
// TOC pages do not consume numbering slots, so a document whose first page
// sits at content-relative index i gets target number start+i regardless of
// how many TOC pages precede the content block.
func buildEntries(pages []Page, docs map[int]*SourceDocument, start int) []TocEntry {
	var entries []TocEntry
	seen := make(map[int]bool)
	for i, p := range pages {
		if seen[p.SourceID] {
			continue
		}
		seen[p.SourceID] = true
		entries = append(entries, TocEntry{
			Title:      docs[p.SourceID].Title,
			TargetPage: start + i,
		})
	}
	return entries
}

// tocPageCount returns how many TOC pages n entries occupy.
func tocPageCount(n int) int {
	if n == 0 {
		return 0
	}
	return (n + tocRowsPerPage - 1) / tocRowsPerPage
}

// renderTOC draws the entries onto one or more A4 pages and returns the PDF
// bytes. Target numbers are printed in the same format the page number
// overlay will use, so the TOC and the stamped pages agree. The page count of
// the returned document always equals tocPageCount(len(entries)).
func renderTOC(entries []TocEntry, format string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 15, 20)
	pdf.SetAutoPageBreak(false, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 14, tr("Table of Contents"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	rows := 0
	for i, e := range entries {
		if rows == tocRowsPerPage {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 12)
			rows = 0
		}

		target, err := formatPageNumber(e.TargetPage, format)
		if err != nil {
			return nil, err
		}

		title := truncateTitle(e.Title)
		pdf.CellFormat(140, tocRowHeightMM, tr(fmt.Sprintf("%d. %s", i+1, title)), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, tocRowHeightMM, target, "", 1, "R", false, 0, "")
		rows++
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: rendering table of contents: %v", ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

// truncateTitle shortens overlong titles so a row never wraps.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= tocTitleMaxRunes {
		return title
	}
	return string(runes[:tocTitleMaxRunes-3]) + "..."
}
