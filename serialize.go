package docmerge

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// serialize concatenates the TOC document (optional) and the contributing
// sources, in output order, into a single PDF byte stream. The input order
// was fixed by the compositor; this stage only moves bytes.
func serialize(tocPDF []byte, ordered []*SourceDocument) ([]byte, error) {
	var readers []io.ReadSeeker
	if len(tocPDF) > 0 {
		readers = append(readers, bytes.NewReader(tocPDF))
	}
	for _, doc := range ordered {
		r := doc.Reader()
		if r == nil {
			return nil, fmt.Errorf("%w: document %d released before serialization", ErrSerialization, doc.ID)
		}
		readers = append(readers, r)
	}
	if len(readers) == 0 {
		return nil, ErrNoPages
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, readConfiguration("")); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

// validateOutput checks the assembled stream parses as a well-formed PDF
// before it is handed back to the caller. A merge never returns partially
// correct bytes.
func validateOutput(data []byte) error {
	if err := api.Validate(bytes.NewReader(data), readConfiguration("")); err != nil {
		return fmt.Errorf("%w: output failed validation: %v", ErrSerialization, err)
	}
	return nil
}
