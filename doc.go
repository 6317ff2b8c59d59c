// Package docmerge merges ordered batches of documents into a single PDF,
// optionally prepending a generated table of contents and stamping page
// numbers.
//
// # Quick Start
//
// Create a merger and merge PDF inputs in caller order:
//
//	m := docmerge.New()
//	result, err := m.Merge(ctx, []docmerge.DocumentInput{
//	    {Data: reportPDF, Title: "Annual Report"},
//	    {Data: annexPDF, Title: "Annex"},
//	}, docmerge.MergeOptions{
//	    GenerateTOC:     true,
//	    AddPageNumbers:  true,
//	    NumberFormat:    docmerge.FormatArabic,
//	    StartPageNumber: 1,
//	}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("merged.pdf", result.PDF, 0644)
//
// The result carries the output bytes, the computed TOC entries, and a report
// listing any inputs skipped under the skip-and-continue policy.
//
// # Merge Pipeline
//
// A merge runs these stages in order:
//
//  1. Loading: each input is parsed (pdfcpu); encrypted inputs suspend on a
//     resume token until a password arrives
//  2. Composing: pages are concatenated strictly in input order, with
//     per-page provenance back to the source document
//  3. TOC building (optional): entry targets are computed under the content
//     numbering scheme and rendered onto prepended pages
//  4. Numbering (optional): every content page is stamped with its displayed
//     number, arabic or Roman
//  5. Serializing: the ordered sources become one validated PDF byte stream
//
// # Password-Protected Inputs
//
// Encrypted documents never block the pipeline. The loader hands back a
// resume token and the merge calls the caller-supplied PasswordPrompt; a CLI
// can read the terminal, a GUI can resolve the request from its event loop.
// Wrong passwords retry up to a cap (default 3) before the document fails.
// Whether a failed document skips or aborts the merge is policy:
//
//	m := docmerge.New(
//	    docmerge.WithFailurePolicy(docmerge.PolicyAbort),
//	    docmerge.WithRetryCap(5),
//	)
//
// # Word Inputs
//
// The merge engine only accepts PDF bytes. Word inputs are reduced to PDF
// first through a DocxRenderer; the LibreOffice implementation shells out to
// a headless soffice process:
//
//	r, err := docmerge.NewLibreOfficeRenderer()
//	pdfBytes, err := r.RenderPDF(ctx, docxBytes)
//
// For batches, RenderPool runs several renderer instances concurrently while
// the merge itself stays strictly caller-ordered:
//
//	pool := docmerge.NewRenderPool(4, func() (docmerge.DocxRenderer, error) {
//	    return docmerge.NewLibreOfficeRenderer()
//	})
//	defer pool.Close()
package docmerge
