package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/local/pdftools/internal/errs"
)

// Resolver turns an input reference into a local file path.
// Supported forms:
// - file://path or absolute/relative filesystem paths
// - http(s):// URLs (downloaded to temp)
// - s3://bucket/key (downloaded to temp via AWS SDK v2)
type Resolver struct {
	HTTPTimeout time.Duration
}

// IsRemote reports whether ref points outside the local filesystem.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "s3://") ||
		strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://")
}

// Resolve returns a local path for ref plus a cleanup func removing any
// temp file it created. Cleanup is never nil. A missing local file is
// reported as NotFound.
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, func(), error) {
	// Strip optional #page fragment if present
	if i := strings.Index(ref, "#"); i >= 0 {
		ref = ref[:i]
	}

	noop := func() {}

	switch {
	case strings.HasPrefix(ref, "s3://"):
		localPath, err := downloadS3ToTemp(ctx, ref)
		if err != nil {
			return "", noop, err
		}
		return localPath, func() { os.Remove(localPath) }, nil
	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		localPath, err := r.downloadHTTPToTemp(ctx, ref)
		if err != nil {
			return "", noop, err
		}
		return localPath, func() { os.Remove(localPath) }, nil
	case strings.HasPrefix(ref, "file://"):
		ref = strings.TrimPrefix(ref, "file://")
	}

	if _, err := os.Stat(ref); err != nil {
		return "", noop, &errs.NotFoundError{Path: ref}
	}
	return ref, noop, nil
}

// Store publishes localPath to an s3:// destination ref. Non-s3 refs are the
// caller's concern; passing one is an error.
func Store(ctx context.Context, localPath, ref string) error {
	bucket, key, err := splitS3URL(ref)
	if err != nil {
		return err
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	cli := s3.NewFromConfig(cfg)
	uploader := manager.NewUploader(cli)

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open upload source: %w", err)
	}
	defer f.Close()

	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("s3 upload failed: %w", err)
	}
	log.Info().Str("bucket", bucket).Str("key", key).Msg("uploaded result to s3")
	return nil
}

func (r *Resolver) downloadHTTPToTemp(ctx context.Context, url string) (string, error) {
	timeout := r.HTTPTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", &errs.NotFoundError{Path: url}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http %d fetching %s", resp.StatusCode, url)
	}
	f, err := os.CreateTemp("", fmt.Sprintf("pdfdl-%s-*.pdf", uuid.New().String()[:8]))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func downloadS3ToTemp(ctx context.Context, s3url string) (string, error) {
	bucket, key, err := splitS3URL(s3url)
	if err != nil {
		return "", err
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return "", err
	}
	cli := s3.NewFromConfig(cfg)

	// Ensure .pdf extension for pdfcpu expectations
	f, err := os.CreateTemp("", "s3pdf-*.pdf")
	if err != nil {
		return "", err
	}
	defer f.Close()

	downloader := manager.NewDownloader(cli)
	if _, err := downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("s3 download failed: %w", err)
	}
	log.Info().Str("bucket", bucket).Str("key", key).Str("file", filepath.Base(f.Name())).Msg("downloaded s3 pdf to temp")
	return f.Name(), nil
}

func splitS3URL(s3url string) (bucket, key string, err error) {
	path := strings.TrimPrefix(s3url, "s3://")
	slash := strings.Index(path, "/")
	if slash <= 0 || slash == len(path)-1 {
		return "", "", errs.InvalidArgumentf("invalid s3 url: %s", s3url)
	}
	return path[:slash], path[slash+1:], nil
}
