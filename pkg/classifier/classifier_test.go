package classifier

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/moyu-x/forganize/internal"
	"github.com/moyu-x/forganize/pkg/rules"
)

func TestClassify_Extension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.png", "images"},
		{"PHOTO.JPEG", "images"},
		{"clip.mkv", "video"},
		{"song.flac", "audio"},
		{"notes.txt", "documents"},
		{"sheet.XLSX", "documents"},
		{"backup.tar.gz", "archives"},
		{"bundle.7z", "archives"},
		{"main.go", "codes"},
		{"index.ts", "codes"},
		{"archive.xyz", "others"},
		{"Makefile", "others"},
		{".bashrc", "others"},
		{"trailing.", "others"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.name, nil).Name(); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestClassify_RulePrecedence(t *testing.T) {
	rs, err := rules.Parse([]string{"report::docs", "img::images"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := Classify("annual_report_img.txt", rs)
	if got.Name() != "docs" {
		t.Errorf("Expected first matching rule to win, got %s", got.Name())
	}
	if !got.FromRule() {
		t.Error("Expected target to come from a rule")
	}

	got = Classify("IMG_0001.txt", rs)
	if got.Name() != "images" || !got.FromRule() {
		t.Errorf("Expected rule folder images, got %+v", got)
	}
}

func TestClassify_RuleSuffix(t *testing.T) {
	rs, _ := rules.Parse([]string{".LOG::Logs"})
	if got := Classify("server.log", rs).Name(); got != "Logs" {
		t.Errorf("Expected Logs, got %s", got)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	rs, _ := rules.Parse([]string{"a::first", "b::second"})
	for _, name := range []string{"ab.png", "b.mp3", "zzz", "A.B.C"} {
		if Classify(name, rs) != Classify(name, rs) {
			t.Errorf("Classify(%q) is not deterministic", name)
		}
	}
}

func TestCategory_String(t *testing.T) {
	want := []string{"images", "documents", "audio", "video", "archives", "codes", "others"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if Category(42).String() != "others" {
		t.Error("Out of range category should render as others")
	}
}

func TestClassifier_Resolve_Sniff(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/src/noext":     "\x89PNG\r\n\x1a\n0000000000",
		"/src/song":      "ID3\x04\x00\x00\x00\x00\x00\x00",
		"/src/bundle":    "PK\x03\x04",
		"/src/plain":     "random content",
		"/src/notes.txt": "\x89PNG\r\n\x1a\n",
	}
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("写入测试文件失败: %v", err)
		}
	}

	c := New(nil, NewSniffer(fs))
	tests := map[string]string{
		"noext":     "images",
		"song":      "audio",
		"bundle":    "archives",
		"plain":     "others",
		"notes.txt": "documents",
	}
	for name, want := range tests {
		entry := internal.FileEntry{Name: name, SourcePath: "/src/" + name}
		if got := c.Resolve(entry).Name(); got != want {
			t.Errorf("Resolve(%s) = %s, want %s", name, got, want)
		}
	}
}

func TestClassifier_Resolve_MissingFile(t *testing.T) {
	c := New(nil, NewSniffer(afero.NewMemMapFs()))
	entry := internal.FileEntry{Name: "gone", SourcePath: "/nowhere/gone"}
	if got := c.Resolve(entry).Name(); got != "others" {
		t.Errorf("Expected others for unreadable file, got %s", got)
	}
}

func TestClassifier_Resolve_RuleSkipsSniff(t *testing.T) {
	rs, _ := rules.Parse([]string{"noext::raw"})
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/src/noext", []byte("\x89PNG\r\n\x1a\n"), 0644)

	c := New(rs, NewSniffer(fs))
	if got := c.Resolve(internal.FileEntry{Name: "noext", SourcePath: "/src/noext"}).Name(); got != "raw" {
		t.Errorf("Expected rule folder raw, got %s", got)
	}
}

func TestCategoryForExt(t *testing.T) {
	for ext, want := range map[string]Category{
		"PDF":  Documents,
		"Mp3":  Audio,
		"go":   Codes,
		"":     Others,
		"ÉXYZ": Others,
	} {
		if got := CategoryForExt(ext); got != want {
			t.Errorf("CategoryForExt(%q) = %s, want %s", ext, got, want)
		}
	}
}
