// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/herb/internal/cli/output"
)

// SetupProject creates a temporary project holding files, keyed by
// slash-separated relative path, and changes into it for the rest of the test.
func SetupProject(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	t.Chdir(dir)
	return dir
}

// ReadFile returns the content of a project file, failing the test if it is missing.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

// CapturedRenderer is an output.Renderer whose streams are kept in memory.
type CapturedRenderer struct {
	*output.Renderer
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// NewRenderer returns a renderer for mode. tty simulates an interactive
// terminal, which turns on styling in text mode.
func NewRenderer(mode output.OutputMode, tty bool) *CapturedRenderer {
	c := &CapturedRenderer{}
	c.Renderer = output.NewRendererWithTTY(&c.stdout, &c.stderr, tty, mode)
	return c
}

// Stdout returns everything written to the output stream.
func (c *CapturedRenderer) Stdout() string { return c.stdout.String() }

// Stderr returns everything written to the error stream, such as warnings.
func (c *CapturedRenderer) Stderr() string { return c.stderr.String() }

// PlainStdout returns the output stream with styling removed.
func (c *CapturedRenderer) PlainStdout() string { return StripANSI(c.stdout.String()) }

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes SGR escape sequences.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// AssertNoANSI fails the test when s carries escape sequences.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if loc := ansiPattern.FindStringIndex(s); loc != nil {
		t.Errorf("unexpected ANSI escape at byte %d in %q", loc[0], s)
	}
}

// AssertValidMarkdown checks that fences are balanced, headers are not
// empty and every table header row is followed by a separator row.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences: %d fence markers", n)
	}

	lines := strings.Split(md, "\n")
	inTable := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("line %d: empty header", i+1)
		}

		isRow := strings.HasPrefix(trimmed, "|")
		if isRow && !inTable {
			if i+1 >= len(lines) || !strings.Contains(lines[i+1], "---") {
				t.Errorf("line %d: table header without separator row", i+1)
			}
		}
		inTable = isRow
	}
}
