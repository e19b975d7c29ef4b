package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Archiver_Archive(t *testing.T) {
	client := &fakeS3{}
	archiver := newS3Archiver(client, S3Config{Bucket: "exports", Prefix: "exports/"})

	key, err := archiver.Archive(context.Background(), "Data_Pasien.xlsx", "application/octet-stream", []byte("xlsx"))
	require.NoError(t, err)

	assert.Equal(t, "exports/Data_Pasien.xlsx", key)
	assert.Equal(t, "exports", aws.ToString(client.input.Bucket))
	assert.Equal(t, "exports/Data_Pasien.xlsx", aws.ToString(client.input.Key))
	assert.Equal(t, []byte("xlsx"), client.body)
}

func TestS3Archiver_ArchiveError(t *testing.T) {
	archiver := newS3Archiver(&fakeS3{err: errors.New("denied")}, S3Config{Bucket: "exports"})

	_, err := archiver.Archive(context.Background(), "a.xlsx", "application/octet-stream", nil)
	assert.ErrorContains(t, err, "denied")
}

func TestMemoryArchiver(t *testing.T) {
	archiver := NewMemoryArchiver()
	key, err := archiver.Archive(context.Background(), "a.xlsx", "", []byte{1, 2})
	require.NoError(t, err)

	data, ok := archiver.Get(key)
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2}, data)
}
