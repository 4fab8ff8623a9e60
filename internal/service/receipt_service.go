package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/repository/storage"
)

const (
	MaxReceiptSize      = 5 * 1024 * 1024 // 5MB
	ReceiptThumbWidth   = 200
	ReceiptDisplayWidth = 800
	ReceiptJPEGQuality  = 85
	receiptURLExpiry    = 15 * time.Minute
)

var (
	ErrReceiptTooLarge       = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidReceiptFormat  = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrInvalidReceiptData    = errors.New("invalid image data")
	ErrReceiptsNotConfigured = errors.New("receipt storage not configured")
)

// allowedReceiptExtensions maps extensions to content types
var allowedReceiptExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ReceiptURLs carries presigned URLs for the stored receipt variants
type ReceiptURLs struct {
	ThumbnailURL string `json:"thumbnailUrl"`
	DisplayURL   string `json:"displayUrl"`
}

// ReceiptService attaches receipt images to expenses: it validates and
// resizes the upload, stores thumbnail and display variants, and records
// the object path on the expense. Receipt mutations never touch budgets,
// activities, or notifications.
type ReceiptService struct {
	storage     storage.ReceiptRepository
	expenseRepo domain.ExpenseRepository
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(storage storage.ReceiptRepository, expenseRepo domain.ExpenseRepository) *ReceiptService {
	return &ReceiptService{
		storage:     storage,
		expenseRepo: expenseRepo,
	}
}

// IsEnabled indicates whether uploads/deletes are supported (storage configured).
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// Attach validates the uploaded image, stores resized variants, and records
// the base object path on the expense
func (s *ReceiptService) Attach(ctx context.Context, expenseID uuid.UUID, data []byte, filename string) (*domain.Expense, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptsNotConfigured
	}

	expense, err := s.expenseRepo.GetByID(expenseID)
	if err != nil {
		return nil, err
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	basePath := fmt.Sprintf("receipts/%s/%s", expenseID, uuid.New().String())

	variants := []struct {
		name     string
		maxWidth int
	}{
		{"thumb", ReceiptThumbWidth},
		{"display", ReceiptDisplayWidth},
	}

	uploaded := make([]string, 0, len(variants))
	for _, variant := range variants {
		var processed image.Image
		if img.Bounds().Dx() > variant.maxWidth {
			// Resize maintaining aspect ratio
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		} else {
			processed = img
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: ReceiptJPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		objectPath := fmt.Sprintf("%s_%s.jpg", basePath, variant.name)
		if _, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
			// Clean up any already uploaded variants
			for _, path := range uploaded {
				_ = s.storage.Delete(ctx, path)
			}
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}
		uploaded = append(uploaded, objectPath)
	}

	// Replace any previous receipt after the new one is safely stored
	if expense.ReceiptPath != nil {
		s.deleteVariants(ctx, *expense.ReceiptPath)
	}

	return s.expenseRepo.SetReceiptPath(expenseID, &basePath)
}

// Remove deletes the stored receipt variants and clears the expense's path
func (s *ReceiptService) Remove(ctx context.Context, expenseID uuid.UUID) (*domain.Expense, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptsNotConfigured
	}

	expense, err := s.expenseRepo.GetByID(expenseID)
	if err != nil {
		return nil, err
	}

	if expense.ReceiptPath != nil {
		s.deleteVariants(ctx, *expense.ReceiptPath)
	}

	return s.expenseRepo.SetReceiptPath(expenseID, nil)
}

// URLs generates presigned GET URLs for the receipt variants
func (s *ReceiptService) URLs(ctx context.Context, basePath string) (*ReceiptURLs, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptsNotConfigured
	}

	thumbURL, err := s.storage.GeneratePresignedURL(ctx, basePath+"_thumb.jpg", receiptURLExpiry)
	if err != nil {
		return nil, err
	}
	displayURL, err := s.storage.GeneratePresignedURL(ctx, basePath+"_display.jpg", receiptURLExpiry)
	if err != nil {
		return nil, err
	}

	return &ReceiptURLs{
		ThumbnailURL: thumbURL,
		DisplayURL:   displayURL,
	}, nil
}

func (s *ReceiptService) deleteVariants(ctx context.Context, basePath string) {
	for _, variant := range []string{"thumb", "display"} {
		// Best effort cleanup
		_ = s.storage.Delete(ctx, fmt.Sprintf("%s_%s.jpg", basePath, variant))
	}
}

func (s *ReceiptService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxReceiptSize {
		return nil, ErrReceiptTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedReceiptExtensions[ext]; !ok {
		return nil, ErrInvalidReceiptFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidReceiptData
	}

	return img, nil
}
