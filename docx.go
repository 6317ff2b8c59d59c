package docmerge

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// DocxRenderer reduces a Word document to PDF bytes. This is the rendering
// collaborator of the merge engine: the engine itself never parses docx
// structure, it receives every input already in PDF form.
type DocxRenderer interface {
	RenderPDF(ctx context.Context, docx []byte) ([]byte, error)
}

// WordReconstructor rebuilds a Word document from PDF bytes. Independent of
// the merge pipeline; exposed here so callers wire both conversions through
// one collaborator.
type WordReconstructor interface {
	ReconstructDocx(ctx context.Context, pdf []byte) ([]byte, error)
}

// sofficeBinaries are probed in order when no explicit binary is configured.
var sofficeBinaries = []string{"soffice", "libreoffice"}

// defaultRenderTimeout bounds a single conversion; LibreOffice occasionally
// hangs on damaged documents.
const defaultRenderTimeout = 2 * time.Minute

// LibreOfficeRenderer converts documents through a headless LibreOffice
// process. Each call runs in its own temp directory with a private user
// profile, so concurrent conversions do not fight over the profile lock.
type LibreOfficeRenderer struct {
	binPath string
	timeout time.Duration
}

// NewLibreOfficeRenderer locates the LibreOffice binary on PATH.
// Returns ErrRendererNotFound when neither soffice nor libreoffice resolves.
func NewLibreOfficeRenderer() (*LibreOfficeRenderer, error) {
	for _, name := range sofficeBinaries {
		if path, err := exec.LookPath(name); err == nil {
			return &LibreOfficeRenderer{binPath: path, timeout: defaultRenderTimeout}, nil
		}
	}
	return nil, fmt.Errorf("%w: tried %v", ErrRendererNotFound, sofficeBinaries)
}

// NewLibreOfficeRendererAt uses an explicit binary path, for installs outside
// PATH. The path is verified to exist.
func NewLibreOfficeRendererAt(binPath string) (*LibreOfficeRenderer, error) {
	if _, err := os.Stat(binPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRendererNotFound, binPath)
	}
	return &LibreOfficeRenderer{binPath: binPath, timeout: defaultRenderTimeout}, nil
}

// RenderPDF converts Word bytes to PDF bytes.
func (r *LibreOfficeRenderer) RenderPDF(ctx context.Context, docx []byte) ([]byte, error) {
	return r.convert(ctx, docx, "docx", "pdf", nil)
}

// ReconstructDocx converts PDF bytes back to a Word document using
// LibreOffice's PDF import filter. Layout fidelity is best-effort; the
// reconstruction never feeds back into the merge pipeline.
func (r *LibreOfficeRenderer) ReconstructDocx(ctx context.Context, pdf []byte) ([]byte, error) {
	return r.convert(ctx, pdf, "pdf", "docx", []string{"--infilter=writer_pdf_import"})
}

// convert runs one headless conversion in an isolated temp directory.
func (r *LibreOfficeRenderer) convert(ctx context.Context, data []byte, inExt, outExt string, extraArgs []string) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	dir, err := os.MkdirTemp("", "docmerge-render-*")
	if err != nil {
		return nil, fmt.Errorf("%w: creating work dir: %v", ErrRenderFailed, err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	inPath := filepath.Join(dir, "input."+inExt)
	// #nosec G306 -- scratch file inside a private temp dir
	if err := os.WriteFile(inPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("%w: writing input: %v", ErrRenderFailed, err)
	}

	// A private profile keeps parallel soffice instances independent.
	profile := filepath.Join(dir, "profile")
	args := []string{"--headless", "-env:UserInstallation=file://" + profile}
	args = append(args, extraArgs...)
	args = append(args, "--convert-to", outExt, "--outdir", dir, inPath)

	cmd := exec.CommandContext(ctx, r.binPath, args...) // #nosec G204 -- binary resolved at construction
	if out, runErr := cmd.CombinedOutput(); runErr != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrRenderFailed, runErr, out)
	}

	outPath := filepath.Join(dir, "input."+outExt)
	result, err := os.ReadFile(outPath) // #nosec G304 -- path built above
	if err != nil {
		return nil, fmt.Errorf("%w: no output produced: %v", ErrRenderFailed, err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrRenderFailed)
	}
	return result, nil
}
