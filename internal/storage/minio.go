package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DefaultSubmitter is the sentinel used in object names when the record
// carries no submitter. It is applied only at this boundary; rows keep
// whatever the model extracted.
const DefaultSubmitter = "unknown"

// objectPrefix groups all exported workbooks under one key prefix.
const objectPrefix = "excel/"

type Config struct {
	Host      string // host[:port]; an http:// or https:// prefix is stripped
	AccessKey string
	SecretKey string
	Bucket    string        // default "expense-reports"
	Secure    bool          // TLS toward the object store
	URLExpiry time.Duration // presigned GET lifetime, default 7 days
}

// Manager wraps the MinIO client behind the narrow save contract the
// processor needs: workbook bytes plus naming hints in, time-limited
// download URL out.
type Manager struct {
	client *minio.Client
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

func NewManager(cfg Config, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Bucket == "" {
		cfg.Bucket = "expense-reports"
	}
	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = 7 * 24 * time.Hour
	}
	host := strings.TrimPrefix(strings.TrimPrefix(cfg.Host, "https://"), "http://")

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &Manager{client: client, cfg: cfg, logger: logger, now: time.Now}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (m *Manager) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("bucket exists check: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket %s: %w", m.cfg.Bucket, err)
	}
	m.logger.Info("storage.bucket.created", "bucket", m.cfg.Bucket)
	return nil
}

// ObjectName builds a timestamped object key so repeated uploads for the
// same form never collide.
func ObjectName(submitter, documentID string, ts time.Time) string {
	if strings.TrimSpace(submitter) == "" {
		submitter = DefaultSubmitter
	}
	return fmt.Sprintf("%s%s_%s_%s.xlsx", objectPrefix, submitter, documentID, ts.Format("20060102_150405"))
}

// SaveWorkbook uploads workbook bytes and returns a presigned download URL.
func (m *Manager) SaveWorkbook(ctx context.Context, data []byte, submitter, documentID string) (string, error) {
	name := ObjectName(submitter, documentID, m.now())

	_, err := m.client.PutObject(ctx, m.cfg.Bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: xlsxContentType})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", name, err)
	}

	u, err := m.client.PresignedGetObject(ctx, m.cfg.Bucket, name, m.cfg.URLExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", name, err)
	}

	m.logger.Info("storage.save.ok",
		"object", name,
		"bytes", len(data),
		"expiry", m.cfg.URLExpiry.String(),
	)
	return u.String(), nil
}

// ListWorkbooks returns the object names of all stored workbooks.
func (m *Manager) ListWorkbooks(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range m.client.ListObjects(ctx, m.cfg.Bucket, minio.ListObjectsOptions{
		Prefix:    objectPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		names = append(names, obj.Key)
	}
	return names, nil
}
