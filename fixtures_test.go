package docmerge

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// makePDF generates a small labeled PDF with the given page count, for use
// as a merge input in tests.
func makePDF(t *testing.T, pages int, label string) []byte {
	t.Helper()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 14)
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.SetXY(20, 40)
		pdf.Cell(0, 10, fmt.Sprintf("%s - page %d of %d", label, i, pages))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("generating fixture PDF: %v", err)
	}
	return buf.Bytes()
}

// encryptPDF password-protects a fixture.
func encryptPDF(t *testing.T, data []byte, password string) []byte {
	t.Helper()

	conf := readConfiguration(password)
	var buf bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(data), &buf, conf); err != nil {
		t.Fatalf("encrypting fixture PDF: %v", err)
	}
	return buf.Bytes()
}

// minimalDocx builds the smallest Word document LibreOffice will open: a zip
// with the OPC content types, the package relationship, and one paragraph.
func minimalDocx(t *testing.T) []byte {
	t.Helper()

	parts := []struct {
		name, body string
	}{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`},
		{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>fixture</w:t></w:r></w:p></w:body>
</w:document>`},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			t.Fatalf("building fixture docx: %v", err)
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			t.Fatalf("building fixture docx: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("building fixture docx: %v", err)
	}
	return buf.Bytes()
}

// outputPageCount parses a produced document and returns its page count.
func outputPageCount(t *testing.T, data []byte) int {
	t.Helper()

	n, err := api.PageCount(bytes.NewReader(data), readConfiguration(""))
	if err != nil {
		t.Fatalf("counting output pages: %v", err)
	}
	return n
}
