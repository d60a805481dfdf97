package ingestion

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves objects from memory.
type fakeS3 struct {
	objects map[string]string // "bucket/key" -> body
	err     error
	lastReq *s3.GetObjectInput
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.lastReq = params
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := ParseS3URI("s3://resumes/2026/jane.txt")
	require.NoError(t, err)
	assert.Equal(t, "resumes", bucket)
	assert.Equal(t, "2026/jane.txt", key)

	for _, bad := range []string{"resumes/jane.txt", "s3://", "s3://bucket", "s3://bucket/", "s3:///key"} {
		_, _, err := ParseS3URI(bad)
		assert.Error(t, err, bad)
	}
}

func TestIsS3URI(t *testing.T) {
	assert.True(t, IsS3URI("s3://b/k"))
	assert.False(t, IsS3URI("/tmp/s3://b/k"))
	assert.False(t, IsS3URI("-"))
}

func TestReadS3(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"resumes/jane.txt": "python sql"}}

	doc, err := ReadS3(context.Background(), client, "s3://resumes/jane.txt", DefaultMaxBytes)
	require.NoError(t, err)
	assert.Equal(t, "python sql", doc.Text)
	assert.Equal(t, "s3://resumes/jane.txt", doc.Metadata.Source)
	assert.Equal(t, "resumes", aws.ToString(client.lastReq.Bucket))
	assert.Equal(t, "jane.txt", aws.ToString(client.lastReq.Key))
}

func TestReadS3_NotFound(t *testing.T) {
	client := &fakeS3{objects: map[string]string{}}

	_, err := ReadS3(context.Background(), client, "s3://resumes/missing.txt", DefaultMaxBytes)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadS3_ClientError(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}

	_, err := ReadS3(context.Background(), client, "s3://resumes/jane.txt", DefaultMaxBytes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestReadS3_AppliesTextChecks(t *testing.T) {
	client := &fakeS3{objects: map[string]string{
		"b/binary.pdf": "%PDF\x00",
		"b/big.txt":    strings.Repeat("a", 100),
	}}

	_, err := ReadS3(context.Background(), client, "s3://b/binary.pdf", DefaultMaxBytes)
	assert.ErrorIs(t, err, ErrNotText)

	_, err = ReadS3(context.Background(), client, "s3://b/big.txt", 10)
	assert.ErrorIs(t, err, ErrTooLarge)
}
