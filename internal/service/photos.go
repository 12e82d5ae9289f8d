package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/magscene/magsav/internal/entity"
)

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadEquipmentPhoto stores the photo under a fresh key and records the key
// on the equipment. The previous object is left in the bucket.
func (s *Service) UploadEquipmentPhoto(
	ctx context.Context, id int64, body io.Reader, size int64, contentType string,
) (entity.Equipment, error) {
	if s.photos == nil {
		return entity.Equipment{}, entity.ErrPhotoStorageDisabled
	}

	ext, ok := photoExtensions[strings.ToLower(contentType)]
	if !ok {
		return entity.Equipment{}, (&entity.ValidationError{}).Add("photo", "format d'image non supporté")
	}

	// fail before uploading an orphan object
	_, err := s.Equipment.Get(ctx, id)
	if err != nil {
		return entity.Equipment{}, err
	}

	key := path.Join("equipment", fmt.Sprint(id), uuid.Must(uuid.NewV4()).String()+ext)

	err = s.photos.Upload(ctx, key, body, size, contentType)
	if err != nil {
		return entity.Equipment{}, fmt.Errorf("upload photo: %w", err)
	}

	return s.Equipment.Update(ctx, id, map[string]any{"photoPath": key})
}

// EquipmentPhoto opens the stored photo of an equipment.
func (s *Service) EquipmentPhoto(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	if s.photos == nil {
		return nil, "", entity.ErrPhotoStorageDisabled
	}

	equipment, err := s.Equipment.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if equipment.PhotoPath == nil || *equipment.PhotoPath == "" {
		return nil, "", fmt.Errorf("%w: equipment %d has no photo", entity.ErrNotFound, id)
	}

	return s.photos.Download(ctx, *equipment.PhotoPath)
}
