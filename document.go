package docmerge

import "bytes"

// DecryptionState tracks where an encrypted source document is in the
// password-resolution protocol.
type DecryptionState int

const (
	DecryptPending DecryptionState = iota
	DecryptUnlocked
	DecryptFailed
)

// String returns the state name for reports and error messages.
func (s DecryptionState) String() string {
	switch s {
	case DecryptPending:
		return "pending"
	case DecryptUnlocked:
		return "unlocked"
	case DecryptFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SourceDocument is a loaded, page-addressable input document. Identity is
// the position in the caller-supplied input list. The loader owns it until it
// is handed to the compositor; after that it is read-only.
type SourceDocument struct {
	ID        int
	Title     string
	PageCount int
	Encrypted bool
	State     DecryptionState

	// data holds the (decrypted) PDF byte stream. Nil after Release, or for
	// a document that never unlocked.
	data []byte

	// failure records why the password protocol ended without unlocking:
	// cancelled prompt or exhausted attempts. Nil unless State is
	// DecryptFailed.
	failure error
}

// Reader returns a fresh read handle over the document bytes.
// Returns nil once the document has been released.
func (d *SourceDocument) Reader() *bytes.Reader {
	if d.data == nil {
		return nil
	}
	return bytes.NewReader(d.data)
}

// Release drops the document bytes. Safe to call once all its pages have been
// serialized into the output stream; any further Reader call returns nil.
func (d *SourceDocument) Release() {
	d.data = nil
}

// failedDocument builds the handle for a document that exhausted the password
// protocol. It carries no bytes, only the reason the protocol failed; the
// compositor resolves it against the failure policy.
func failedDocument(id int, title string, reason error) *SourceDocument {
	return &SourceDocument{
		ID:        id,
		Title:     title,
		Encrypted: true,
		State:     DecryptFailed,
		failure:   reason,
	}
}
