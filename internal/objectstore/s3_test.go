package objectstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.inputs = append(f.inputs, in)
	b, _ := io.ReadAll(in.Body)
	f.bodies = append(f.bodies, b)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func withFakeClient(t *testing.T, fake *fakePutter) *s3.Options {
	t.Helper()
	origClient := newS3Client
	t.Cleanup(func() { newS3Client = origClient })

	applied := &s3.Options{}
	newS3Client = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		for _, fn := range optFns {
			fn(applied)
		}
		return fake
	}
	return applied
}

func testOptions() S3Options {
	return S3Options{
		RootUser:     "minioadmin",
		RootPassword: "minioadmin",
		Bucket:       "resources",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000/",
	}
}

func TestNewS3Store_ErrorFromConfigLoader(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err := NewS3Store(context.Background(), testOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load-fail")
}

func TestS3Store_Upload(t *testing.T) {
	fake := &fakePutter{}
	applied := withFakeClient(t, fake)

	store, err := NewS3Store(context.Background(), testOptions())
	require.NoError(t, err)
	require.NotNil(t, applied.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000/", *applied.BaseEndpoint)
	assert.True(t, applied.UsePathStyle)

	err = store.Upload(context.Background(), "u1/1700000000000-notes.pdf", []byte("%PDF"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/resources/u1/1700000000000-notes.pdf", store.PublicURL("u1/1700000000000-notes.pdf"))

	require.Len(t, fake.inputs, 1)
	in := fake.inputs[0]
	assert.Equal(t, "resources", *in.Bucket)
	assert.Equal(t, "u1/1700000000000-notes.pdf", *in.Key)
	assert.Equal(t, "application/pdf", *in.ContentType)
	assert.Equal(t, int64(4), *in.ContentLength)
	assert.Equal(t, []byte("%PDF"), fake.bodies[0])
}

func TestS3Store_UploadFailureIsStorageError(t *testing.T) {
	fake := &fakePutter{err: errors.New("denied")}
	withFakeClient(t, fake)

	store, err := NewS3Store(context.Background(), testOptions())
	require.NoError(t, err)

	err = store.Upload(context.Background(), "u1/x.pdf", []byte("x"), "")
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Nil(t, fake.inputs[0].ContentType)
}

func TestS3Store_PublicURL(t *testing.T) {
	withFakeClient(t, &fakePutter{})

	opts := testOptions()
	opts.PublicURL = "https://cdn.example/files/"
	store, err := NewS3Store(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example/files/u1/thumbnails/my%20cover.png", store.PublicURL("u1/thumbnails/my cover.png"))
}
