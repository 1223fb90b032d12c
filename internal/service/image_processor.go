package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/media"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/ports"
)

type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

// ImageConfig controls where and how catalog images are stored.
type ImageConfig struct {
	Bucket       string
	MaxBytes     int64
	MaxDimension int
}

type imageStore struct {
	storage   ports.ObjectStorage
	processor media.Processor
	cfg       ImageConfig
	log       logrus.FieldLogger
}

func newImageStore(storage ports.ObjectStorage, processor media.Processor, cfg ImageConfig, log logrus.FieldLogger) imageStore {
	return imageStore{storage: storage, processor: processor, cfg: cfg, log: log}
}

// put validates, optionally resizes, and uploads an image under prefix, returning its URL.
func (s imageStore) put(ctx context.Context, prefix string, upload ImageUpload) (string, error) {
	if upload.Reader == nil || upload.Size <= 0 {
		return "", ErrImageRequired
	}
	if s.cfg.MaxBytes > 0 && upload.Size > s.cfg.MaxBytes {
		return "", ErrImageTooLarge
	}
	if s.storage == nil {
		return "", ErrStorageUnavailable
	}

	result, err := s.prepare(ctx, upload)
	switch {
	case errors.Is(err, media.ErrEmptyImage):
		return "", ErrImageRequired
	case errors.Is(err, media.ErrUnsupportedImage):
		return "", fmt.Errorf("%w: %v", ErrImageUnsupportedType, err)
	case err != nil:
		return "", err
	}

	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), result.Extension())
	return s.storage.Upload(ctx, s.cfg.Bucket, objectName, result.ContentType, bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
}

func (s imageStore) prepare(ctx context.Context, upload ImageUpload) (*media.Result, error) {
	in := media.Upload{
		Reader:      upload.Reader,
		Size:        upload.Size,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
	}
	if s.processor != nil {
		return s.processor.Process(ctx, in, s.cfg.MaxDimension)
	}
	data, contentType, width, height, err := media.Inspect(in)
	if err != nil {
		return nil, err
	}
	return &media.Result{Bytes: data, ContentType: contentType, Width: width, Height: height}, nil
}

// discard removes objects that no row points at any more. Failures only leave
// an orphaned object behind, so they are logged and swallowed.
func (s imageStore) discard(ctx context.Context, urls ...string) {
	if s.storage == nil {
		return
	}
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := s.storage.Remove(ctx, s.cfg.Bucket, url); err != nil {
			s.log.WithError(err).WithField("url", url).Warn("remove stored image")
		}
	}
}
