package backup

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passkeeper/internal/client/config"
)

type stubAPI struct {
	objects map[string][]byte
	putErr  error
	getErr  error
}

func (s *stubAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if s.putErr != nil {
		return nil, s.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	s.objects[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (s *stubAPI) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	data, ok := s.objects[*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func withStub(t *testing.T, stub *stubAPI) {
	t.Helper()
	orig := newObjectAPI
	newObjectAPI = func(context.Context, *config.Config) (api, error) { return stub, nil }
	t.Cleanup(func() { newObjectAPI = orig })
}

func testClient(t *testing.T) (*Client, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vault.json")
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.VaultPath = path
	return NewClient(cfg), path
}

func TestUploadDownloadRoundTrip(t *testing.T) {
	stub := &stubAPI{objects: map[string][]byte{}}
	withStub(t, stub)

	c, path := testClient(t)
	content := []byte(`{"version":1,"salt":"c2FsdA==","entries":{}}`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	require.NoError(t, c.Upload(context.Background()))
	assert.Equal(t, content, stub.objects["vault.json"])

	require.NoError(t, os.Remove(path))
	require.NoError(t, c.Download(context.Background()))

	restored, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, restored)
}

func TestUploadMissingVault(t *testing.T) {
	stub := &stubAPI{objects: map[string][]byte{}}
	withStub(t, stub)

	c, _ := testClient(t)
	assert.Error(t, c.Upload(context.Background()))
}

func TestDownloadMissingObjectLeavesVaultIntact(t *testing.T) {
	stub := &stubAPI{objects: map[string][]byte{}}
	withStub(t, stub)

	c, path := testClient(t)
	content := []byte("local vault")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	assert.Error(t, c.Download(context.Background()))

	local, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, local)
}

func TestUploadPutError(t *testing.T) {
	stub := &stubAPI{objects: map[string][]byte{}, putErr: errors.New("boom")}
	withStub(t, stub)

	c, path := testClient(t)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	assert.Error(t, c.Upload(context.Background()))
}
