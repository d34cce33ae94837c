package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyu-x/forganize/internal"
)

func TestParse(t *testing.T) {
	got, err := Parse([]string{"Report::Docs", "IMG::images", ".Log::Logs"})
	require.NoError(t, err)
	assert.Equal(t, []Rule{
		{Pattern: "report", Folder: "Docs"},
		{Pattern: "img", Folder: "images"},
		{Pattern: ".log", Folder: "Logs"},
	}, got)
}

func TestParse_Empty(t *testing.T) {
	got, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParse_Invalid(t *testing.T) {
	for _, raw := range []string{
		"nofolder",
		"::folder",
		"pattern::",
		"a::b::c",
		"",
		"x::..",
		"x::.",
		"x::../outside",
		"x::finance/2024",
	} {
		_, err := Parse([]string{"ok::fine", raw})
		if !errors.Is(err, internal.ErrInvalidRuleFormat) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidRuleFormat", raw, err)
		}
	}
}

func TestRule_Matches(t *testing.T) {
	r := Rule{Pattern: "report", Folder: "docs"}
	assert.True(t, r.Matches("annual_report.txt"))
	assert.True(t, r.Matches("report"))
	assert.False(t, r.Matches("rep.txt"))

	suffix := Rule{Pattern: ".tar.gz", Folder: "tarballs"}
	assert.True(t, suffix.Matches("backup.tar.gz"))
}

func TestFolders(t *testing.T) {
	rs := []Rule{
		{Pattern: "a", Folder: "x"},
		{Pattern: "b", Folder: "y"},
		{Pattern: "c", Folder: "x"},
	}
	assert.Equal(t, []string{"x", "y"}, Folders(rs))
}

func TestLower(t *testing.T) {
	assert.Equal(t, "invoice.pdf", Lower("Invoice.PDF"))
	assert.Equal(t, "école.txt", Lower("ÉCOLE.TXT"))
}
