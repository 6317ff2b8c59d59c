package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Errorf("FileExists(%q) = false, want true", file)
	}
	if FileExists(filepath.Join(dir, "absent.txt")) {
		t.Error("FileExists() = true for a missing file")
	}
	if FileExists(dir) {
		t.Error("FileExists() = true for a directory")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"defaults", false},
		{"merge.yaml", false},
		{"./merge.yaml", true},
		{"/etc/docmerge/merge.yaml", true},
		{`C:\docs\merge.yaml`, true},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsFilePath(tt.in); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTitleFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/docs/Annual Report.docx", "Annual Report"},
		{"annex.pdf", "annex"},
		{"archive.tar.gz", "archive.tar"},
		{".hidden", ".hidden"},
		{"noext", "noext"},
		{"dir/sub/contract.PDF", "contract"},
	}

	for _, tt := range tests {
		if got := TitleFromPath(tt.in); got != tt.want {
			t.Errorf("TitleFromPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHasExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		exts []string
		want bool
	}{
		{"report.docx", []string{".docx", ".doc"}, true},
		{"report.DOCX", []string{".docx"}, true},
		{"report.pdf", []string{".docx", ".doc"}, false},
		{"report", []string{".docx"}, false},
		{"report.docx", nil, false},
	}

	for _, tt := range tests {
		if got := HasExtension(tt.path, tt.exts...); got != tt.want {
			t.Errorf("HasExtension(%q, %v) = %v, want %v", tt.path, tt.exts, got, tt.want)
		}
	}
}
