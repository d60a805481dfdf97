package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
)

type memoryS3 map[string]string

func (m memoryS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := m[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("no such object")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func useS3(t *testing.T, client ingestion.ObjectGetter, err error) *int {
	t.Helper()
	calls := 0
	orig := newS3Client
	newS3Client = func(context.Context) (ingestion.ObjectGetter, error) {
		calls++
		return client, err
	}
	t.Cleanup(func() { newS3Client = orig })
	return &calls
}

func TestAnalyzeCommand_S3Sources(t *testing.T) {
	calls := useS3(t, memoryS3{"resumes/a.txt": cliResume, "resumes/b.txt": "docker"}, nil)
	dir := t.TempDir()
	local := writeFile(t, dir, "c.txt", "python")

	stdout, _, err := executeCommand(t, "", "analyze", "s3://resumes/a.txt", local, "s3://resumes/b.txt")
	require.NoError(t, err)

	var results []types.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 3)
	assert.Equal(t, scoring.Analyze(cliResume), results[0])
	assert.Equal(t, scoring.Analyze("python"), results[1])
	assert.Equal(t, scoring.Analyze("docker"), results[2])
	assert.Equal(t, 1, *calls, "one client serves every S3 source")
}

func TestAnalyzeCommand_S3ClientError(t *testing.T) {
	useS3(t, nil, errors.New("no credentials"))

	_, _, err := executeCommand(t, "", "analyze", "s3://resumes/a.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no credentials")
}

func TestAnalyzeCommand_LocalFilesSkipS3Client(t *testing.T) {
	calls := useS3(t, nil, errors.New("should not be called"))
	dir := t.TempDir()

	_, _, err := executeCommand(t, "", "analyze", writeFile(t, dir, "a.txt", "python"))
	require.NoError(t, err)
	assert.Zero(t, *calls)
}

func TestAnalyzeCommand_WatchRejectsStdinAndS3(t *testing.T) {
	_, _, err := executeCommand(t, "python", "analyze", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "standard input")

	_, _, err = executeCommand(t, "", "analyze", "--watch", "s3://resumes/a.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3")
}

func TestAnalyzeCommand_WatchRescoresOnChange(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "resume.txt", "plain text")
	out := filepath.Join(dir, "score.json")

	root := newRootCmd()
	root.SetIn(strings.NewReader(""))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"analyze", "--watch", "--out", out, in})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()
	defer func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("analyze --watch did not stop after cancel")
		}
	}()

	readScore := func() (types.AnalysisResult, bool) {
		data, err := os.ReadFile(out)
		if err != nil {
			return types.AnalysisResult{}, false
		}
		var result types.AnalysisResult
		if json.Unmarshal(data, &result) != nil {
			return types.AnalysisResult{}, false
		}
		return result, true
	}

	require.Eventually(t, func() bool {
		result, ok := readScore()
		return ok && result.WordCount == 2
	}, 5*time.Second, 20*time.Millisecond, "initial report")

	want := scoring.Analyze(cliResume)
	// keep rewriting until the watcher is registered; the poll interval
	// exceeds the debounce so each write gets its own window
	require.Eventually(t, func() bool {
		_ = os.WriteFile(in, []byte(cliResume), 0644)
		result, ok := readScore()
		return ok && result.WordCount == want.WordCount && result.OverallScore == want.OverallScore
	}, 10*time.Second, 500*time.Millisecond, "report rewritten after change")
}
