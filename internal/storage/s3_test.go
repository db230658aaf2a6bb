package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"
)

// mockS3Client records calls and serves objects from an in-memory map.
// With pageSize set, ListObjectsV2 truncates and hands out continuation
// tokens like the real API.
type mockS3Client struct {
	objects  map[string][]byte
	puts     int
	gets     int
	lists    int
	putErr   error
	getErr   error
	listErr  error
	pageSize int

	lastContentType string
}

func newMockS3Client() *mockS3Client {
	return &mockS3Client{objects: map[string][]byte{}}
}

func (m *mockS3Client) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.puts++
	if m.putErr != nil {
		return nil, m.putErr
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	m.objects[aws.ToString(params.Key)] = body
	m.lastContentType = aws.ToString(params.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	body, ok := m.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, fmt.Errorf("no such key: %s", aws.ToString(params.Key))
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(body)))}, nil
}

func (m *mockS3Client) ListObjectsV2(_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.lists++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var keys []string
	for key := range m.objects {
		if strings.HasPrefix(key, aws.ToString(params.Prefix)) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	if params.ContinuationToken != nil {
		after := aws.ToString(params.ContinuationToken)
		i := sort.SearchStrings(keys, after)
		if i < len(keys) && keys[i] == after {
			i++
		}
		keys = keys[i:]
	}

	out := &s3.ListObjectsV2Output{}
	if m.pageSize > 0 && len(keys) > m.pageSize {
		keys = keys[:m.pageSize]
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(keys[len(keys)-1])
	}
	for _, key := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	return out, nil
}

func validS3Config() S3Config {
	return S3Config{
		Region:    "us-east-1",
		Bucket:    "fastopp",
		AccessKey: "test-access",
		SecretKey: "test-secret",
		Endpoint:  "https://objstorage.example.com",
	}
}

func TestS3Storage_PutUploadsUnderPhotosPrefix(t *testing.T) {
	client := newMockS3Client()
	store := &S3Storage{client: client, cfg: validS3Config()}

	url, err := store.Put(context.Background(), pngBytes, "headshot.png")
	require.NoError(t, err)
	require.Equal(t, 1, client.puts)

	require.Len(t, client.objects, 1)
	for key, body := range client.objects {
		require.True(t, strings.HasPrefix(key, "photos/"), "key %s must be namespaced", key)
		require.True(t, strings.HasSuffix(key, ".png"))
		require.Equal(t, pngBytes, body)
		require.Equal(t, "https://objstorage.example.com/fastopp/"+key, url)
	}
	require.Equal(t, "image/png", client.lastContentType)
}

func TestS3Storage_PutUsesCDNBaseWhenConfigured(t *testing.T) {
	client := newMockS3Client()
	cfg := validS3Config()
	cfg.CDNBaseURL = "https://acct.cdn.example.com/fastopp/"
	store := &S3Storage{client: client, cfg: cfg}

	url, err := store.Put(context.Background(), pngBytes, "a.png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://acct.cdn.example.com/fastopp/photos/"), "got %s", url)
	require.NotContains(t, url, "//photos", "trailing slash on the CDN base must be trimmed")
}

func TestS3Storage_PutMissingCredentialsFailsBeforeNetwork(t *testing.T) {
	client := newMockS3Client()
	store := &S3Storage{client: client, cfg: S3Config{Region: "us-east-1"}}

	_, err := store.Put(context.Background(), pngBytes, "a.png")
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.ElementsMatch(t, []string{"S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET"}, cfgErr.Missing)
	require.Zero(t, client.puts, "no network call may happen with missing credentials")
}

func TestS3Storage_PutProviderErrorCarriesCode(t *testing.T) {
	client := newMockS3Client()
	client.putErr = &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "bucket does not exist"}
	store := &S3Storage{client: client, cfg: validS3Config()}

	_, err := store.Put(context.Background(), pngBytes, "a.png")
	require.Error(t, err)

	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "NoSuchBucket", serr.Code)
	require.Equal(t, "put", serr.Op)
}

func TestS3Storage_UniqueKeys(t *testing.T) {
	client := newMockS3Client()
	store := &S3Storage{client: client, cfg: validS3Config()}

	first, err := store.Put(context.Background(), pngBytes, "same.png")
	require.NoError(t, err)
	second, err := store.Put(context.Background(), pngBytes, "same.png")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.Len(t, client.objects, 2)
}

func TestS3Storage_DeleteRetainsObject(t *testing.T) {
	client := newMockS3Client()
	store := &S3Storage{client: client, cfg: validS3Config()}

	url, err := store.Put(context.Background(), pngBytes, "a.png")
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), url))
	require.Len(t, client.objects, 1, "remote objects are append-mostly, delete keeps the bytes")
}

func TestNewS3Storage_MissingCredentials(t *testing.T) {
	_, err := NewS3Storage(context.Background(), S3Config{Region: "us-east-1", Bucket: "b"})
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestS3Config_ValidateComplete(t *testing.T) {
	require.NoError(t, validS3Config().validate())
}

func TestWrapS3Error_NonAPIError(t *testing.T) {
	err := wrapS3Error("put", "photos/x.jpg", errors.New("connection reset"))

	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	require.Empty(t, serr.Code)
	require.Contains(t, serr.Error(), "photos/x.jpg")
}
