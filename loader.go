package docmerge

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// documentLoader abstracts PDF loading to allow fakes in orchestrator tests.
type documentLoader interface {
	Load(id int, title string, data []byte) (*LoadResult, error)
	Resume(token *ResumeToken, password string) (*LoadResult, error)
	Cancel(token *ResumeToken) error
}

// LoadResult is the outcome of one step of the load protocol. Exactly one of
// Doc and Token is set: Doc when the document is page-addressable, Token when
// a password is required to proceed.
type LoadResult struct {
	Doc   *SourceDocument
	Token *ResumeToken
}

// ResumeToken is the opaque handle for a suspended password-protected load.
// The caller obtains a password out of band and hands it back via
// Loader.Resume. A token is single-flight: once the load completes, fails, or
// is cancelled, further Resume calls return ErrStaleToken.
type ResumeToken struct {
	id       int
	title    string
	data     []byte
	attempts int
	cap      int
	done     bool
}

// Attempts returns how many passwords have been tried against this document.
func (t *ResumeToken) Attempts() int { return t.attempts }

// Remaining returns how many attempts are left before the load fails.
func (t *ResumeToken) Remaining() int { return t.cap - t.attempts }

// Title returns the display title of the suspended document, for prompts.
func (t *ResumeToken) Title() string { return t.title }

// Loader opens PDF byte streams and drives the password-resolution protocol.
// It never blocks waiting for a password: an encrypted document yields a
// ResumeToken and control returns to the caller.
type Loader struct {
	retryCap int
}

// NewLoader creates a Loader with the given wrong-password retry cap.
// A cap below 1 falls back to DefaultRetryCap.
func NewLoader(retryCap int) *Loader {
	if retryCap < 1 {
		retryCap = DefaultRetryCap
	}
	return &Loader{retryCap: retryCap}
}

// Load parses the PDF container structure of data. Unencrypted documents
// come back page-addressable immediately. Encrypted documents come back as a
// ResumeToken. Unparseable byte streams fail with ErrMalformedDocument and
// never enter the retry loop.
func (l *Loader) Load(id int, title string, data []byte) (*LoadResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty byte stream", ErrMalformedDocument)
	}

	count, err := pageCount(data, "")
	if err == nil {
		return &LoadResult{Doc: &SourceDocument{
			ID:        id,
			Title:     title,
			PageCount: count,
			State:     DecryptUnlocked,
			data:      data,
		}}, nil
	}

	if errors.Is(err, pdfcpu.ErrWrongPassword) {
		return &LoadResult{Token: &ResumeToken{
			id:    id,
			title: title,
			data:  data,
			cap:   l.retryCap,
		}}, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
}

// Resume continues a suspended load with a caller-supplied password. A wrong
// password yields the token again while attempts remain; the attempt that
// reaches the retry cap fails with ErrDecryptFailed.
func (l *Loader) Resume(token *ResumeToken, password string) (*LoadResult, error) {
	if token == nil || token.done {
		return nil, ErrStaleToken
	}

	token.attempts++
	count, err := pageCount(token.data, password)
	if err == nil {
		decrypted, decErr := decrypt(token.data, password)
		if decErr != nil {
			token.done = true
			return nil, fmt.Errorf("%w: %v", ErrDecryptFailed, decErr)
		}
		token.done = true
		return &LoadResult{Doc: &SourceDocument{
			ID:        token.id,
			Title:     token.title,
			PageCount: count,
			Encrypted: true,
			State:     DecryptUnlocked,
			data:      decrypted,
		}}, nil
	}

	if !errors.Is(err, pdfcpu.ErrWrongPassword) {
		token.done = true
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	if token.attempts >= token.cap {
		token.done = true
		return nil, fmt.Errorf("%w: %w %d times for %q", ErrDecryptFailed, ErrWrongPassword, token.attempts, token.title)
	}

	return &LoadResult{Token: token}, nil
}

// Cancel abandons a suspended load, e.g. when the user dismisses the prompt.
// The returned error wraps ErrDecryptFailed for the skip report.
func (l *Loader) Cancel(token *ResumeToken) error {
	if token == nil || token.done {
		return ErrStaleToken
	}
	token.done = true
	return fmt.Errorf("%w: cancelled for %q", ErrDecryptFailed, token.title)
}

// pageCount parses the container and page directory without decoding content
// streams. An encrypted document with the wrong (or no) password surfaces
// pdfcpu.ErrWrongPassword.
func pageCount(data []byte, password string) (int, error) {
	return api.PageCount(bytes.NewReader(data), readConfiguration(password))
}

// decrypt produces a plaintext copy of an encrypted document so downstream
// stages can treat every source uniformly.
func decrypt(data []byte, password string) ([]byte, error) {
	var buf bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(data), &buf, readConfiguration(password)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// readConfiguration returns a relaxed-validation pdfcpu configuration, so
// slightly out-of-spec documents from real-world producers still merge.
func readConfiguration(password string) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.UserPW = password
	conf.OwnerPW = password
	return conf
}
