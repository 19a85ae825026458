package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"super-control/internal/storage"
)

// ErrStorageNotConfigured is returned when no object storage bucket is set.
var ErrStorageNotConfigured = errors.New("storage not configured")

const imageURLExpiry = 15 * time.Minute

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageUpload describes an uploaded receipt image.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// StoredImage is a receipt image kept in object storage.
type StoredImage struct {
	Filename     string
	ContentType  string
	Key          string
	Size         int64
	URL          string
	LastModified *time.Time
}

// ImageService stores receipt images per user.
type ImageService interface {
	Upload(ctx context.Context, owner string, upload ImageUpload) (*StoredImage, error)
	List(ctx context.Context, owner string) ([]StoredImage, error)
	Delete(ctx context.Context, owner, name string) error
}

type imageService struct {
	store     storage.Service
	bucket    string
	keyPrefix string
}

// NewImageService returns an ImageService; a nil store or empty bucket makes
// every call fail with ErrStorageNotConfigured.
func NewImageService(store storage.Service, bucket, keyPrefix string) ImageService {
	return &imageService{
		store:     store,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}
}

func (s *imageService) configured() bool {
	return s.store != nil && s.bucket != ""
}

func (s *imageService) userPrefix(owner string) string {
	if s.keyPrefix == "" {
		return owner + "/"
	}
	return s.keyPrefix + "/" + owner + "/"
}

func (s *imageService) Upload(ctx context.Context, owner string, upload ImageUpload) (*StoredImage, error) {
	if !s.configured() {
		return nil, ErrStorageNotConfigured
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(upload.ContentType, ";", 2)[0]))
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image type %q", ErrInvalidInput, upload.ContentType)
	}
	if upload.Body == nil {
		return nil, fmt.Errorf("%w: image is empty", ErrInvalidInput)
	}

	key := s.userPrefix(owner) + uuid.NewString() + ext
	if err := s.store.PutObject(ctx, s.bucket, key, upload.Body, storage.PutOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, err
	}

	url, err := s.store.GetObjectURL(ctx, s.bucket, key, imageURLExpiry)
	if err != nil {
		return nil, err
	}
	return &StoredImage{
		Filename:    upload.Filename,
		ContentType: contentType,
		Key:         key,
		Size:        upload.Size,
		URL:         url,
	}, nil
}

func (s *imageService) List(ctx context.Context, owner string) ([]StoredImage, error) {
	if !s.configured() {
		return nil, ErrStorageNotConfigured
	}
	objects, err := s.store.ListObjects(ctx, s.bucket, s.userPrefix(owner))
	if err != nil {
		return nil, err
	}

	images := make([]StoredImage, 0, len(objects))
	for _, obj := range objects {
		url, err := s.store.GetObjectURL(ctx, s.bucket, obj.Key, imageURLExpiry)
		if err != nil {
			return nil, err
		}
		images = append(images, StoredImage{
			Filename:     path.Base(obj.Key),
			Key:          obj.Key,
			Size:         obj.Size,
			URL:          url,
			LastModified: obj.LastModified,
		})
	}
	sort.Slice(images, func(i, j int) bool { return images[i].Key < images[j].Key })
	return images, nil
}

func (s *imageService) Delete(ctx context.Context, owner, name string) error {
	if !s.configured() {
		return ErrStorageNotConfigured
	}
	name = strings.TrimSpace(name)
	if name == "" || name != path.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("%w: invalid image name", ErrInvalidInput)
	}
	return s.store.DeleteObject(ctx, s.bucket, s.userPrefix(owner)+name)
}
