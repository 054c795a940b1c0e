package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
	"github.com/findlocalfirewood/firewood-api/internal/config"
	"github.com/findlocalfirewood/firewood-api/internal/metrics"
	"github.com/findlocalfirewood/firewood-api/internal/pkg/imaging"
)

var ErrUnknownPhotoPurpose = errors.New(`purpose must be "checkin" or "stand"`)

// PhotoPurpose selects the size ceiling and the object-key prefix.
type PhotoPurpose string

const (
	PhotoForCheckIn PhotoPurpose = "checkin"
	PhotoForStand   PhotoPurpose = "stand"
)

type PhotoStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// PhotoInput is one uploaded file as received.
type PhotoInput struct {
	Name string
	Size int64
	Body io.Reader
}

type StoredPhoto struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type RejectedPhoto struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type PhotoBatch struct {
	Stored   []StoredPhoto   `json:"stored"`
	Rejected []RejectedPhoto `json:"rejected"`
}

type PhotoService struct {
	store PhotoStore
	conf  *config.PhotosConfig
	now   func() time.Time
}

func NewPhotoService(store PhotoStore, conf *config.PhotosConfig) *PhotoService {
	return &PhotoService{
		store: store,
		conf:  conf,
		now:   time.Now,
	}
}

// Upload downscales and stores a batch of photos. alreadyStaged counts
// photos the caller attached earlier, towards the per-submission limit.
// Files that are too large, over the limit or unreadable are left out of
// the batch with a reason; the rest are stored. When the store fails the
// batch so far is returned with the error, so its stored paths stay known.
func (s *PhotoService) Upload(ctx context.Context, purpose PhotoPurpose, alreadyStaged int, inputs []PhotoInput) (PhotoBatch, error) {
	const op = "service.PhotoService.Upload"

	maxBytes, err := s.maxBytes(purpose)
	if err != nil {
		return PhotoBatch{}, apperr.ValidationFields(op, err, map[string]string{"purpose": err.Error()})
	}

	batch := PhotoBatch{Stored: []StoredPhoto{}, Rejected: []RejectedPhoto{}}
	staged := alreadyStaged

	for _, in := range inputs {
		if in.Size > maxBytes {
			batch.reject(in.Name, fmt.Sprintf("%s is too large (max %s)", in.Name, humanBytes(maxBytes)), "too_large")
			continue
		}
		if staged >= s.conf.MaxCount {
			batch.reject(in.Name, fmt.Sprintf("maximum %d photos", s.conf.MaxCount), "over_count")
			continue
		}

		res, err := imaging.Process(io.LimitReader(in.Body, maxBytes+1), imaging.Options{
			MaxEdge:   s.conf.MaxEdge,
			Quality:   s.conf.JPEGQuality,
			MaxPixels: s.conf.MaxPixels,
		})
		if err != nil {
			zap.L().Info("rejected unreadable photo", zap.String("name", in.Name), zap.Error(err))
			batch.reject(in.Name, fmt.Sprintf("%s is not a supported image", in.Name), "unsupported")
			continue
		}

		key := fmt.Sprintf("%ss/%s/%s.jpg", purpose, s.now().UTC().Format("2006/01/02"), uuid.NewString())
		path, err := s.store.Put(ctx, key, res.Data, "image/jpeg")
		if err != nil {
			return batch, apperr.Transient(op, fmt.Errorf("s.store.Put -> %w", err))
		}

		metrics.PhotosProcessed.WithLabelValues("stored").Inc()
		batch.Stored = append(batch.Stored, StoredPhoto{
			Name:   in.Name,
			Path:   path,
			Width:  res.Width,
			Height: res.Height,
		})
		staged++
	}

	return batch, nil
}

func (s *PhotoService) maxBytes(purpose PhotoPurpose) (int64, error) {
	switch purpose {
	case PhotoForCheckIn:
		return s.conf.CheckInMaxBytes, nil
	case PhotoForStand:
		return s.conf.SubmissionMaxBytes, nil
	}

	return 0, ErrUnknownPhotoPurpose
}

func (b *PhotoBatch) reject(name, reason, outcome string) {
	metrics.PhotosProcessed.WithLabelValues(outcome).Inc()
	b.Rejected = append(b.Rejected, RejectedPhoto{Name: name, Reason: reason})
}

func humanBytes(n int64) string {
	const mb = 1 << 20
	if n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}

	return fmt.Sprintf("%.1fMB", float64(n)/mb)
}
