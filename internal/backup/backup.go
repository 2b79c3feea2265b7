// Package backup exports every daily record into a bundle folder and restores
// records from one. A bundle folder is named "<uuid>.fitdb" and holds
// records.json. Bundles can also be mirrored to an S3 bucket.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/fittrack/internal/error_values"
	"github.com/limbo/fittrack/pkg/dayutil"
	"github.com/limbo/fittrack/pkg/entity"
	"go.uber.org/zap"
)

const (
	BundleVersion   = 1
	BundleExtension = ".fitdb"
	RecordsFile     = "records.json"
)

type Bundle struct {
	Version    int                   `json:"version"`
	ExportedAt time.Time             `json:"exported_at"`
	Records    []*entity.DailyRecord `json:"records"`
}

type RecordsStoreI interface {
	FetchAll(ctx context.Context) ([]*entity.DailyRecord, error)
	Replace(ctx context.Context, records []*entity.DailyRecord) error
}

// ObjectStoreI is the part of *s3.Client used for off-device copies.
type ObjectStoreI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type ExportResult struct {
	Path    string `json:"path"`
	Key     string `json:"key,omitempty"`
	Records int    `json:"records"`
}

type Service struct {
	store   RecordsStoreI
	dir     string
	objects ObjectStoreI
	bucket  string
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(store RecordsStoreI, dir string, logger *zap.Logger) *Service {
	if store == nil {
		log.Fatal("provided nil records store")
	}
	if dir == "" {
		dir = "."
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}
}

// WithObjectStore enables uploading exports to bucket.
func (s *Service) WithObjectStore(objects ObjectStoreI, bucket string) *Service {
	s.objects = objects
	s.bucket = bucket
	return s
}

// Export writes every record into a new bundle folder and uploads it when an
// object store is configured.
func (s *Service) Export(ctx context.Context) (*ExportResult, error) {
	records, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, &errorvalues.StorageError{Op: "fetch all", Err: err}
	}
	data, err := sonic.Marshal(&Bundle{
		Version:    BundleVersion,
		ExportedAt: s.now(),
		Records:    records,
	})
	if err != nil {
		return nil, errors.New("encoding bundle error: " + err.Error())
	}
	name := uuid.New().String() + BundleExtension
	folder := filepath.Join(s.dir, name)
	if err = os.MkdirAll(folder, 0o755); err != nil {
		return nil, errors.New("creating bundle folder error: " + err.Error())
	}
	if err = os.WriteFile(filepath.Join(folder, RecordsFile), data, 0o644); err != nil {
		return nil, errors.New("writing bundle error: " + err.Error())
	}
	result := &ExportResult{Path: folder, Records: len(records)}
	if s.objects != nil {
		key := path.Join(name, RecordsFile)
		_, err = s.objects.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return result, errors.New("uploading bundle error: " + err.Error())
		}
		result.Key = key
	}
	s.logger.Info("records exported", zap.String("path", folder), zap.String("key", result.Key), zap.Int("records", len(records)))
	return result, nil
}

// Import replaces every record with the bundle at p, a bundle folder or its
// records file.
func (s *Service) Import(ctx context.Context, p string) (int, error) {
	info, err := os.Stat(p)
	if err != nil {
		return 0, errors.New("opening bundle error: " + err.Error())
	}
	if info.IsDir() {
		p = filepath.Join(p, RecordsFile)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return 0, errors.New("reading bundle error: " + err.Error())
	}
	return s.restore(ctx, data)
}

// ImportObject restores from a bundle uploaded by Export. key is either the
// records file key or the bundle folder name.
func (s *Service) ImportObject(ctx context.Context, key string) (int, error) {
	if s.objects == nil {
		return 0, errors.New("object store is not configured")
	}
	if path.Ext(key) == BundleExtension {
		key = path.Join(key, RecordsFile)
	}
	out, err := s.objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, errors.New("downloading bundle error: " + err.Error())
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return 0, errors.New("reading bundle error: " + err.Error())
	}
	return s.restore(ctx, data)
}

func (s *Service) restore(ctx context.Context, data []byte) (int, error) {
	var bundle Bundle
	if err := sonic.Unmarshal(data, &bundle); err != nil {
		return 0, errors.New("decoding bundle error: " + err.Error())
	}
	records := make([]*entity.DailyRecord, 0, len(bundle.Records))
	seen := make(map[string]struct{}, len(bundle.Records))
	for _, r := range bundle.Records {
		if r == nil {
			continue
		}
		day := dayutil.FormatDay(r.Day)
		if _, ok := seen[day]; ok {
			return 0, fmt.Errorf("%w: bundle has more than one record for %s", errorvalues.ErrValidation, day)
		}
		seen[day] = struct{}{}
		records = append(records, normalize(r))
	}
	if len(records) == 0 {
		return 0, errorvalues.ErrEmptyBackup
	}
	if err := s.store.Replace(ctx, records); err != nil {
		return 0, &errorvalues.StorageError{Op: "replace", Err: err}
	}
	s.logger.Info("records imported", zap.Int("records", len(records)))
	return len(records), nil
}

// normalize fills identifiers missing from hand edited bundles and points
// owned rows at their record.
func normalize(r *entity.DailyRecord) *entity.DailyRecord {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.Metrics.RecordID = r.ID
	for i := range r.Meals {
		if r.Meals[i].ID == uuid.Nil {
			r.Meals[i].ID = uuid.New()
		}
		r.Meals[i].RecordID = r.ID
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = r.Day
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = r.CreatedAt
	}
	return r
}
