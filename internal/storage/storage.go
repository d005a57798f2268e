package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

// Storage persists generated exports and returns where they can be fetched.
type Storage interface {
	SaveObject(ctx context.Context, name string, body io.ReadSeeker) (string, error)
}

// LocalStorage writes exports under dir, which the server mounts at PublicPrefix.
type LocalStorage struct {
	dir string
	now func() time.Time
}

// PublicPrefix is the route local exports are served from.
const PublicPrefix = "/exports"

type SpacesStorage struct {
	client   *s3.S3
	bucket   string
	cdnURL   string
	endpoint string
	now      func() time.Time
}

func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir, now: time.Now}
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		client:   s3.New(sess),
		bucket:   bucket,
		cdnURL:   cdnURL,
		endpoint: endpoint,
		now:      time.Now,
	}, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// normalizeFilename strips unsafe characters and stamps the name so repeated
// exports never overwrite each other: "prayer history.csv" -> "prayer_history_20240320_101500.csv".
func normalizeFilename(original string, now time.Time) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)
	base = strings.ReplaceAll(base, " ", "_")
	base = unsafeChars.ReplaceAllString(base, "")
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s_%s%s", base, now.Format("20060102_150405"), ext)
}

func (ls *LocalStorage) SaveObject(_ context.Context, name string, body io.ReadSeeker) (string, error) {
	normalized := normalizeFilename(name, ls.now())
	log.Debug().Str("original", name).Str("normalized", normalized).Msg("export filename normalized")

	if err := os.MkdirAll(ls.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(ls.dir, normalized)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, body); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return PublicPrefix + "/" + normalized, nil
}

func (ss *SpacesStorage) SaveObject(ctx context.Context, name string, body io.ReadSeeker) (string, error) {
	normalized := normalizeFilename(name, ss.now())
	key := fmt.Sprintf("exports/%s", normalized)

	_, err := ss.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(getContentType(normalized)),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload export to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(ss.cdnURL, "/"), key), nil
}

func getContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
