package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/imgpipe/internal/adapter/messaging"
	"github.com/marcos-nsantos/imgpipe/internal/adapter/repository"
	"github.com/marcos-nsantos/imgpipe/internal/adapter/storage"
	"github.com/marcos-nsantos/imgpipe/internal/domain"
	"github.com/marcos-nsantos/imgpipe/internal/domain/entity"
	"github.com/marcos-nsantos/imgpipe/internal/domain/valueobject"
	"github.com/marcos-nsantos/imgpipe/internal/pkg/pagination"
)

const outputContentType = "image/jpeg"

type Options struct {
	TempDir       string
	KeyPrefix     string
	DefaultWidth  int
	DefaultHeight int
	Quality       int
	SignedURLTTL  time.Duration
}

type Service struct {
	imageRepo   repository.ImageRepository
	storage     storage.ObjectStorage
	transformer storage.ImageTransformer
	publisher   messaging.EventPublisher
	opts        Options
	logger      *zap.Logger
}

func NewService(
	imageRepo repository.ImageRepository,
	objectStorage storage.ObjectStorage,
	transformer storage.ImageTransformer,
	publisher messaging.EventPublisher,
	opts Options,
	logger *zap.Logger,
) *Service {
	return &Service{
		imageRepo:   imageRepo,
		storage:     objectStorage,
		transformer: transformer,
		publisher:   publisher,
		opts:        opts,
		logger:      logger,
	}
}

type UploadInput struct {
	UploaderID uuid.UUID
	SourcePath string
	// Key is the object key to store under. Generated when empty.
	Key string
	// OldKey is removed from the bucket once the new object is stored.
	OldKey string
	Width  int
	Height int
	// DeclaredFormat is the client's claimed format. When set, the file
	// content must match it.
	DeclaredFormat valueobject.Format
}

func (in UploadInput) Validate() error {
	if strings.TrimSpace(in.SourcePath) == "" {
		return domain.ErrSourceRequired
	}
	if in.Width < 0 || in.Height < 0 {
		return fmt.Errorf("%w: %dx%d", domain.ErrInvalidDimensions, in.Width, in.Height)
	}
	if in.Width > valueobject.MaxDimension || in.Height > valueobject.MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", domain.ErrInvalidDimensions, in.Width, in.Height, valueobject.MaxDimension)
	}
	if in.Key != "" && !validKey(in.Key) {
		return fmt.Errorf("%w: key %q", domain.ErrInvalidKey, in.Key)
	}
	if in.OldKey != "" && !validKey(in.OldKey) {
		return fmt.Errorf("%w: old key %q", domain.ErrInvalidKey, in.OldKey)
	}
	return nil
}

type UploadResult struct {
	Image           *entity.Image
	URL             string
	SignedURL       string
	PreviousDeleted bool
}

// Upload runs convert to JPEG, aspect preserving resize and compression on the
// source file, then stores the result. Intermediate files are always removed.
func (s *Service) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	width, height := input.Width, input.Height
	if width == 0 && height == 0 {
		width, height = s.opts.DefaultWidth, s.opts.DefaultHeight
	}

	var existing, previous *entity.Image
	if input.Key != "" {
		img, err := s.ownedRecord(ctx, input.UploaderID, input.Key)
		if err != nil {
			return nil, err
		}
		existing = img
	}
	replacing := input.OldKey != "" && input.OldKey != input.Key
	if replacing {
		img, err := s.ownedRecord(ctx, input.UploaderID, input.OldKey)
		if err != nil {
			return nil, err
		}
		previous = img
	}

	source, err := s.transformer.Inspect(input.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("inspecting source: %w", err)
	}
	if input.DeclaredFormat != valueobject.FormatUnknown && source.Format != input.DeclaredFormat {
		return nil, fmt.Errorf("%w: declared %s, content is %s",
			domain.ErrUnsupportedFormat, input.DeclaredFormat, source.Format)
	}
	s.logger.Debug("processing upload",
		zap.String("format", source.Format.String()),
		zap.Int("width", source.Dimensions.Width),
		zap.Int("height", source.Dimensions.Height),
	)

	workDir, err := os.MkdirTemp(s.opts.TempDir, "upload-*")
	if err != nil {
		return nil, fmt.Errorf("creating work dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			s.logger.Warn("failed to remove work dir", zap.String("dir", workDir), zap.Error(err))
		}
	}()

	converted := filepath.Join(workDir, "converted.jpg")
	if _, err := s.transformer.ConvertToJPEG(input.SourcePath, converted); err != nil {
		return nil, fmt.Errorf("converting image: %w", err)
	}

	resized := filepath.Join(workDir, "resized.jpg")
	if _, err := s.transformer.ResizeMaintainAspectRatio(converted, resized, width, height); err != nil {
		return nil, fmt.Errorf("resizing image: %w", err)
	}

	compressed := filepath.Join(workDir, "compressed.jpg")
	asset, err := s.transformer.Compress(resized, compressed, s.opts.Quality)
	if err != nil {
		return nil, fmt.Errorf("compressing image: %w", err)
	}

	info, err := os.Stat(compressed)
	if err != nil {
		return nil, fmt.Errorf("reading compressed image: %w", err)
	}

	key := input.Key
	if key == "" {
		key = s.newKey()
	}

	url, err := s.storage.Upload(ctx, key, compressed, outputContentType)
	if err != nil {
		return nil, fmt.Errorf("uploading to storage: %w", err)
	}

	signedURL, err := s.storage.GetSignedURL(key, s.opts.SignedURLTTL)
	if err != nil {
		s.logger.Warn("failed to presign url", zap.String("key", key), zap.Error(err))
	}

	image := entity.NewImage(
		input.UploaderID, key, url, outputContentType, info.Size(),
		asset.Dimensions.Width, asset.Dimensions.Height,
	)

	if err := s.imageRepo.Save(ctx, image); err != nil {
		s.rollbackUpload(ctx, input.Key == "", existing, key)
		return nil, fmt.Errorf("saving image record: %w", err)
	}

	result := &UploadResult{
		Image:     image,
		URL:       url,
		SignedURL: signedURL,
	}

	if replacing {
		result.PreviousDeleted = s.removePrevious(ctx, input.OldKey, previous != nil)
	}

	s.publish(ctx, messaging.ImageEvent{
		Type:       messaging.EventImageUploaded,
		Key:        key,
		URL:        url,
		UploaderID: input.UploaderID,
		Width:      image.Width,
		Height:     image.Height,
		Size:       image.Size,
		OccurredAt: image.CreatedAt,
	})

	return result, nil
}

// rollbackUpload removes an object whose record could not be saved. Only
// generated keys are removed: an explicit key may have held bytes that are
// already overwritten, and deleting it would strand their record.
func (s *Service) rollbackUpload(ctx context.Context, generated bool, existing *entity.Image, key string) {
	if !generated {
		s.logger.Warn("object stored without catalog update",
			zap.String("key", key),
			zap.Bool("had_record", existing != nil),
		)
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Error("failed to remove orphaned object", zap.String("key", key), zap.Error(err))
	}
}

// removePrevious deletes a replaced object. The new upload is already stored,
// so failures are logged rather than returned.
func (s *Service) removePrevious(ctx context.Context, key string, recorded bool) bool {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete previous object", zap.String("key", key), zap.Error(err))
		return false
	}

	if !recorded {
		return true
	}
	if err := s.imageRepo.DeleteByKey(ctx, key); err != nil && !errors.Is(err, domain.ErrImageNotFound) {
		s.logger.Warn("failed to delete previous image record", zap.String("key", key), zap.Error(err))
	}

	return true
}

// ownedRecord loads the catalog record for key. A missing record yields nil;
// a record held by another uploader is ErrForbidden.
func (s *Service) ownedRecord(ctx context.Context, uploaderID uuid.UUID, key string) (*entity.Image, error) {
	img, err := s.imageRepo.GetByKey(ctx, key)
	if errors.Is(err, domain.ErrImageNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading image %s: %w", key, err)
	}
	if !img.IsOwnedBy(uploaderID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, key)
	}
	return img, nil
}

// Delete removes an object and its record. Objects without a record are
// removed from the bucket directly.
func (s *Service) Delete(ctx context.Context, uploaderID uuid.UUID, key string) error {
	if !validKey(key) {
		return fmt.Errorf("%w: key %q", domain.ErrInvalidKey, key)
	}

	image, err := s.ownedRecord(ctx, uploaderID, key)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("deleting from storage: %w", err)
	}

	if image != nil {
		if err := s.imageRepo.DeleteByKey(ctx, key); err != nil && !errors.Is(err, domain.ErrImageNotFound) {
			return fmt.Errorf("deleting image record: %w", err)
		}
	}

	s.publish(ctx, messaging.ImageEvent{
		Type:       messaging.EventImageDeleted,
		Key:        key,
		UploaderID: uploaderID,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}

func (s *Service) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	objects, err := s.storage.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing storage: %w", err)
	}
	return objects, nil
}

func (s *Service) ListMine(ctx context.Context, uploaderID uuid.UUID, params pagination.Params) ([]entity.Image, *pagination.Info, error) {
	images, total, err := s.imageRepo.ListByUploader(ctx, uploaderID, params)
	if err != nil {
		return nil, nil, err
	}
	return images, pagination.NewInfo(params, total), nil
}

func (s *Service) publish(ctx context.Context, event messaging.ImageEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("type", event.Type),
			zap.String("key", event.Key),
			zap.Error(err),
		)
	}
}

func (s *Service) newKey() string {
	name := uuid.New().String() + valueobject.FormatJPEG.Extension()
	if s.opts.KeyPrefix == "" {
		return name
	}
	return path.Join(s.opts.KeyPrefix, name)
}

func validKey(key string) bool {
	if key == "" || len(key) > 1024 || strings.HasPrefix(key, "/") {
		return false
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return false
		}
	}
	return true
}
