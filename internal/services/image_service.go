package services

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"vzdrzevanje/internal/models"
	"vzdrzevanje/internal/repositories"
)

// ImageService stores uploaded task photos on disk and records them in the DB.
type ImageService interface {
	SaveUploads(ctx context.Context, taskID int64, files []*multipart.FileHeader) ([]models.Image, error)
	GetByTaskID(ctx context.Context, taskID int64) ([]models.Image, error)
}

type imageService struct {
	repo       repositories.ImageRepository
	uploadsDir string
}

func NewImageService(repo repositories.ImageRepository, uploadsDir string) ImageService {
	return &imageService{repo: repo, uploadsDir: uploadsDir}
}

// uniqueFileName follows the original upload naming: field name, timestamp,
// random suffix, original extension.
func uniqueFileName(original string) string {
	suffix := fmt.Sprintf("%d-%d", time.Now().UnixMilli(), rand.Intn(1_000_000_000))
	return "slike-" + suffix + filepath.Ext(original)
}

func (s *imageService) SaveUploads(ctx context.Context, taskID int64, files []*multipart.FileHeader) ([]models.Image, error) {
	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}

	var saved []models.Image
	for _, fh := range files {
		name := uniqueFileName(fh.Filename)
		if err := s.writeFile(fh, filepath.Join(s.uploadsDir, name)); err != nil {
			return saved, err
		}

		img := models.Image{
			TaskID:   taskID,
			FileName: fh.Filename,
			Path:     name,
		}
		if err := s.repo.Store(ctx, &img); err != nil {
			return saved, fmt.Errorf("store image record: %w", err)
		}
		saved = append(saved, img)
	}
	return saved, nil
}

func (s *imageService) writeFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *imageService) GetByTaskID(ctx context.Context, taskID int64) ([]models.Image, error) {
	return s.repo.FindByTaskID(ctx, taskID)
}
