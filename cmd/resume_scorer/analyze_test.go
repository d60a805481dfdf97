package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
)

const cliResume = `Alex Smith
alex@example.com
Professional Summary
Led development of python and sql services; managed a team with strong communication.
Work Experience
Education`

// executeCommand runs the CLI in-process and returns stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAnalyzeCommand_Stdin(t *testing.T) {
	stdout, _, err := executeCommand(t, cliResume, "analyze")
	require.NoError(t, err)

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, scoring.Analyze(cliResume), result)
}

func TestAnalyzeCommand_DashReadsStdin(t *testing.T) {
	stdout, _, err := executeCommand(t, "python", "analyze", "-")
	require.NoError(t, err)

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, []string{"python"}, result.SkillsAnalysis.Technical)
}

func TestAnalyzeCommand_StdinTwice(t *testing.T) {
	_, _, err := executeCommand(t, "python", "analyze", "-", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only be read once")
}

func TestAnalyzeCommand_MultipleFilesKeepOrder(t *testing.T) {
	dir := t.TempDir()
	texts := []string{cliResume, "", "docker kubernetes teamwork"}
	paths := []string{
		writeFile(t, dir, "a.txt", texts[0]),
		writeFile(t, dir, "b.txt", texts[1]),
		writeFile(t, dir, "c.txt", texts[2]),
	}

	stdout, _, err := executeCommand(t, "", append([]string{"analyze", "--concurrency", "2"}, paths...)...)
	require.NoError(t, err)

	var results []types.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, len(texts))
	for i, text := range texts {
		assert.Equal(t, scoring.Analyze(text), results[i], "file %d", i)
	}
}

func TestAnalyzeCommand_OutFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "resume.txt", cliResume)
	out := filepath.Join(dir, "reports", "score.json")

	stdout, _, err := executeCommand(t, "", "analyze", in, "--out", out, "--validate")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, scoring.Analyze(cliResume).OverallScore, result.OverallScore)
}

func TestAnalyzeCommand_TextFormat(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "resume.txt", cliResume)

	stdout, _, err := executeCommand(t, "", "analyze", "--format", "text", in)
	require.NoError(t, err)

	assert.Contains(t, stdout, "RESUME SCORE")
	assert.Contains(t, stdout, "BREAKDOWN")
	assert.Contains(t, stdout, "Source:")
}

func TestAnalyzeCommand_Verbose(t *testing.T) {
	_, stderr, err := executeCommand(t, cliResume, "analyze", "--verbose")
	require.NoError(t, err)

	assert.Contains(t, stderr, "DOCUMENT")
	assert.Contains(t, stderr, "stdin")
}

func TestAnalyzeCommand_InvalidFormat(t *testing.T) {
	_, _, err := executeCommand(t, cliResume, "analyze", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'format'")
}

func TestAnalyzeCommand_MissingFile(t *testing.T) {
	_, _, err := executeCommand(t, "", "analyze", "/nonexistent/resume.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnalyzeCommand_BinaryInput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "resume.pdf", "%PDF-1.4\x00\x01\x02")

	_, _, err := executeCommand(t, "", "analyze", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not plain UTF-8 text")
}

func TestAnalyzeCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "format: text\nmax_document_bytes: 10\n")

	_, _, err := executeCommand(t, cliResume, "analyze", "--config", cfgPath)
	require.Error(t, err, "document exceeds the configured size limit")
	assert.Contains(t, err.Error(), "exceeds size limit")

	stdout, _, err := executeCommand(t, "python", "analyze", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "RESUME SCORE", "format comes from the config file")

	stdout, _, err = executeCommand(t, "python", "analyze", "--config", cfgPath, "--format", "json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)), "flags override the config file")
}

func TestAnalyzeCommand_BadConfigFile(t *testing.T) {
	_, _, err := executeCommand(t, "", "analyze", "--config", "/nonexistent/config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
