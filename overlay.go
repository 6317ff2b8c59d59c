package docmerge

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// pageNumberStampDesc places a small stamp at the bottom-center margin.
const pageNumberStampDesc = "font:Helvetica, points:10, pos:bc, off:0 15, scale:1 abs, rot:0, op:1"

// formatPageNumber renders a displayed page number in the requested format.
func formatPageNumber(n int, format string) (string, error) {
	if strings.ToLower(format) == FormatRoman {
		return ToRoman(n)
	}
	return strconv.Itoa(n), nil
}

// numberingMap assigns a displayed number to every content page and maps it
// to the page's physical position in the output. A content page at
// content-relative index i is displayed as start+i and physically sits at
// tocPages+i+1 (1-based). TOC pages are excluded from numbering and are
// never stamped; the TOC builder prints the same displayed numbers, which
// keeps the two components on a single scheme.
func numberingMap(contentPages, tocPages int, opts MergeOptions) (map[int]string, error) {
	if opts.StartPageNumber < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStartPage, opts.StartPageNumber)
	}

	m := make(map[int]string, contentPages)
	for i := 0; i < contentPages; i++ {
		text, err := formatPageNumber(opts.StartPageNumber+i, opts.NumberFormat)
		if err != nil {
			return nil, err
		}
		m[tocPages+i+1] = text
	}
	return m, nil
}

// stampPageNumbers applies the numbering map to the merged document and
// returns the stamped byte stream. Pages absent from the map are left
// untouched.
func stampPageNumbers(data []byte, numbers map[int]string) ([]byte, error) {
	if len(numbers) == 0 {
		return data, nil
	}

	stamps := make(map[int]*model.Watermark, len(numbers))
	for page, text := range numbers {
		wm, err := api.TextWatermark(text, pageNumberStampDesc, true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("%w: page number stamp: %v", ErrSerialization, err)
		}
		stamps[page] = wm
	}

	var buf bytes.Buffer
	if err := api.AddWatermarksMap(bytes.NewReader(data), &buf, stamps, readConfiguration("")); err != nil {
		return nil, fmt.Errorf("%w: stamping page numbers: %v", ErrSerialization, err)
	}
	return buf.Bytes(), nil
}
