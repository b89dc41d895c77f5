package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/charterreview/internal/pipeline"
	"github.com/dgallion1/charterreview/internal/testdocx"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so tests do not leak
// values into each other through the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Setenv("CHARTER_REVIEWS_DIR", "")
	os.Unsetenv("CHARTER_REVIEWS_DIR")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeReview(t *testing.T, dir, name string) string {
	t.Helper()
	body := testdocx.P("Section 1: Mission, Guiding Principles and Purpose") +
		testdocx.P("Strengths") +
		testdocx.P("Mission is clear, see page 4") +
		testdocx.P("Section 20: Budget") +
		testdocx.Table(
			testdocx.TextRow("Type", "Reference", "Comment"),
			testdocx.TextRow("Concern", "31", "Budget narrative incomplete"),
		)
	return testdocx.Write(t, dir, name, body)
}

func TestCompileCmd_WritesReport(t *testing.T) {
	dir := t.TempDir()
	writeReview(t, dir, "Sunrise_Academy_Eval_Adams.docx")
	html := filepath.Join(t.TempDir(), "report.html")
	xlsx := filepath.Join(t.TempDir(), "report.xlsx")

	out, err := execute(t, "compile", dir, "--workers", "2", "--html-output", html, "--xlsx-output", xlsx)
	require.NoError(t, err)

	report := filepath.Join(dir, "Sunrise_Academy_CompiledReviews.md")
	assert.Contains(t, out, "Report: "+report)
	assert.Contains(t, out, "1 processed, 0 failed")

	md, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(md), "## School Name: Sunrise Academy")
	assert.Contains(t, string(md), "- Adams: Mission is clear, see [p. 4]")
	assert.Contains(t, string(md), "- Adams: Budget narrative incomplete [p. 31]")

	assert.FileExists(t, html)
	assert.FileExists(t, xlsx)
}

func TestCompileCmd_OutputFlagAndJSON(t *testing.T) {
	dir := t.TempDir()
	writeReview(t, dir, "Sunrise_Academy_Eval_Adams.docx")
	writeReview(t, dir, "Sunrise_Academy_Eval_Baker.docx")
	target := filepath.Join(t.TempDir(), "compiled.md")

	out, err := execute(t, "compile", "--reviews-dir", dir, "-o", target, "--json", "--skip-duplicate-inputs")
	require.NoError(t, err)
	assert.FileExists(t, target)

	var sum pipeline.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 2, sum.Documents)
	assert.Equal(t, 1, sum.Processed)
	assert.Equal(t, 1, sum.Duplicates)
}

func TestCompileCmd_NoDocuments(t *testing.T) {
	_, err := execute(t, "compile", t.TempDir())
	assert.ErrorIs(t, err, pipeline.ErrNoDocuments)
}

func TestCompileCmd_InvalidConfig(t *testing.T) {
	_, err := execute(t, "compile", t.TempDir(), "--app-type", "hybrid")
	assert.ErrorContains(t, err, "invalid configuration")

	_, err = execute(t, "compile")
	assert.ErrorContains(t, err, "reviews_dir is required")
}

func TestExtractCmd(t *testing.T) {
	path := writeReview(t, t.TempDir(), "Sunrise_Academy_Eval_Adams.docx")

	out, err := execute(t, "extract", path, "--mark-tables")
	require.NoError(t, err)
	assert.Equal(t, "Section 1: Mission, Guiding Principles and Purpose\n"+
		"Strengths\n"+
		"Mission is clear, see page 4\n"+
		"Section 20: Budget\n"+
		"[t1] Type\tReference\tComment\n"+
		"[t1] Concern\t31\tBudget narrative incomplete\n", out)
}

func TestExtractCmd_Unsupported(t *testing.T) {
	_, err := execute(t, "extract", "notes.pdf")
	assert.ErrorContains(t, err, "unsupported file extension")
}

func TestSectionsCmd(t *testing.T) {
	out, err := execute(t, "sections", "--app-type", "virtual")
	require.NoError(t, err)
	assert.Contains(t, out, "Virtual Application (virtual)")
	assert.Contains(t, out, "16-Budget")
	assert.NotContains(t, out, "Standard Application")

	out, err = execute(t, "sections")
	require.NoError(t, err)
	assert.Contains(t, out, "Standard Application (standard)")
	assert.Contains(t, out, "High Performing System Replication (high-performing)")

	_, err = execute(t, "sections", "--app-type", "auto")
	assert.Error(t, err)
}
