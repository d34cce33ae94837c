package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyu-x/forganize/internal"
	"github.com/moyu-x/forganize/pkg/organizer"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunOrganize_InvalidRule(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("a"), 0644))

	_, err := RunOrganize(context.Background(), &OrganizeOptions{
		SourceDir:  src,
		Rules:      []string{"broken-rule"},
		ConfigPath: writeConfig(t, "logging:\n  level: info\n"),
		LogOutput:  io.Discard,
	})
	require.True(t, errors.Is(err, internal.ErrInvalidRuleFormat), "got %v", err)

	_, statErr := os.Stat(filepath.Join(src, internal.DestDirName))
	assert.True(t, os.IsNotExist(statErr), "nothing may be created before rules are valid")
}

func TestRunOrganize_ConfigRulesAfterCLI(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "invoice_scan.png"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "receipt.txt"), []byte("y"), 0644))

	cfg := writeConfig(t, "rules:\n  - \"invoice::Finance\"\n  - \"receipt::Finance\"\n")
	out, err := RunOrganize(context.Background(), &OrganizeOptions{
		SourceDir:  src,
		Rules:      []string{"scan::Scans"},
		ConfigPath: cfg,
		LogOutput:  io.Discard,
	})
	require.NoError(t, err)
	assert.Equal(t, organizer.StateDone, out.State)

	_, err = os.Stat(filepath.Join(src, internal.DestDirName, "Scans", "invoice_scan.png"))
	assert.NoError(t, err, "CLI rule takes precedence over config rule")
	_, err = os.Stat(filepath.Join(src, internal.DestDirName, "Finance", "receipt.txt"))
	assert.NoError(t, err)
}

func TestRunOrganize_InvalidConfigRule(t *testing.T) {
	_, err := RunOrganize(context.Background(), &OrganizeOptions{
		SourceDir:  t.TempDir(),
		ConfigPath: writeConfig(t, "rules:\n  - \"nope\"\n"),
		LogOutput:  io.Discard,
	})
	assert.True(t, errors.Is(err, internal.ErrInvalidRuleFormat), "got %v", err)
}

func TestRunSearch(t *testing.T) {
	src := t.TempDir()
	dir := filepath.Join(src, internal.DestDirName, "documents")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Invoice.PDF"), []byte("x"), 0644))

	res, err := RunSearch(&SearchOptions{
		SourceDir:  src,
		Term:       "invoice",
		ConfigPath: writeConfig(t, "logging:\n  level: warn\n"),
		LogOutput:  io.Discard,
	})
	require.NoError(t, err)

	found, err := res.Collect()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "documents", found[0].Category)
	assert.Equal(t, filepath.Join(dir, "Invoice.PDF"), found[0].FullPath)
}

func TestAcquireLock_Exclusive(t *testing.T) {
	src := t.TempDir()

	first, err := acquireLock(src)
	require.NoError(t, err)

	_, err = acquireLock(src)
	assert.Error(t, err)

	require.NoError(t, first.Unlock())
	again, err := acquireLock(src)
	require.NoError(t, err)
	require.NoError(t, again.Unlock())
}

func TestRunOrganize_PreviewLeavesNoTrace(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.jpg"), []byte("a"), 0644))

	out, err := RunOrganize(context.Background(), &OrganizeOptions{
		SourceDir:  src,
		Rules:      []string{"a::pictures"},
		ConfigPath: writeConfig(t, "logging:\n  level: info\n"),
		Clear:      true,
		Preview:    true,
		LogOutput:  io.Discard,
	})
	require.NoError(t, err)
	assert.Equal(t, organizer.StatePreview, out.State)

	_, statErr := os.Stat(lockPath(src))
	assert.True(t, os.IsNotExist(statErr), "preview must not create a lock file")
	_, statErr = os.Stat(filepath.Join(src, internal.DestDirName))
	assert.True(t, os.IsNotExist(statErr), "preview must not create the destination tree")
}

func TestRunOrganize_PreviewIgnoresHeldLock(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.jpg"), []byte("a"), 0644))

	held, err := acquireLock(src)
	require.NoError(t, err)
	defer held.Unlock()

	_, err = RunOrganize(context.Background(), &OrganizeOptions{
		SourceDir:  src,
		ConfigPath: writeConfig(t, "logging:\n  level: info\n"),
		Preview:    true,
		LogOutput:  io.Discard,
	})
	assert.NoError(t, err)
}

func TestRunOrganize_EscapingRuleFolder(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "keep.jpg"), []byte("k"), 0644))

	_, err := RunOrganize(context.Background(), &OrganizeOptions{
		SourceDir:  src,
		Rules:      []string{"nomatch::.."},
		ConfigPath: writeConfig(t, "logging:\n  level: info\n"),
		Clear:      true,
		LogOutput:  io.Discard,
	})
	require.True(t, errors.Is(err, internal.ErrInvalidRuleFormat), "got %v", err)

	_, err = os.Stat(filepath.Join(src, "keep.jpg"))
	assert.NoError(t, err)
}
