package hasher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestCalculateHash(t *testing.T) {
	tempDir := t.TempDir()
	fs := afero.NewOsFs()

	testFile := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("test content for hashing"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	hash, err := CalculateHash(fs, testFile)
	if err != nil {
		t.Fatalf("CalculateHash() error = %v", err)
	}
	if hash == 0 {
		t.Error("Expected non-zero hash")
	}

	hash2, err := CalculateHash(fs, testFile)
	if err != nil {
		t.Fatalf("CalculateHash() second call error = %v", err)
	}
	if hash != hash2 {
		t.Error("Hash should be consistent for same file")
	}
}

func TestCalculateHash_NonExistent(t *testing.T) {
	if _, err := CalculateHash(afero.NewMemMapFs(), "/non/existent/file"); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestSameContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	write := func(path, content string) {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
	write("/a.txt", "same")
	write("/b.txt", "same")
	write("/c.txt", "diff")
	write("/d.txt", "longer content")

	tests := []struct {
		a, b string
		want bool
	}{
		{"/a.txt", "/b.txt", true},
		{"/a.txt", "/c.txt", false},
		{"/a.txt", "/d.txt", false},
	}
	for _, tt := range tests {
		got, err := SameContent(fs, tt.a, tt.b)
		if err != nil {
			t.Fatalf("SameContent(%s, %s) error = %v", tt.a, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("SameContent(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}

	if _, err := SameContent(fs, "/a.txt", "/missing"); err == nil {
		t.Error("Expected error when one side is missing")
	}
}

func TestKeyString(t *testing.T) {
	if KeyString("/home/a") == KeyString("/home/b") {
		t.Error("Different inputs should produce different keys")
	}
	if KeyString("/home/a") != KeyString("/home/a") {
		t.Error("KeyString should be deterministic")
	}
}
