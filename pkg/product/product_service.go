package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"FreshTrack/domain"
	"FreshTrack/entities"
	"FreshTrack/internal/utils/storage"
	"FreshTrack/pkg/notification"
	"FreshTrack/pkg/vision"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ProductService interface {
		AddProduct(ctx context.Context, req domain.AddProductRequest, userID string) (domain.ProductResponse, error)
		UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest, userID string) error
		DeleteProduct(ctx context.Context, id string, userID string) error
		GetProducts(ctx context.Context, userID string, status string) ([]domain.ProductResponse, error)
		GetProductByID(ctx context.Context, id string, userID string) (domain.ProductResponse, error)
		UploadProductImage(ctx context.Context, req domain.UploadProductImageRequest, userID string) error
		GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error)

		ScanLabel(ctx context.Context, imageFile *multipart.FileHeader) (domain.ExtractionResult, error)
	}

	productService struct {
		productRepository ProductRepository
		scheduler         *notification.Scheduler
		visionClient      vision.Client
		s3                storage.AwsS3
	}
)

func NewProductService(productRepository ProductRepository, scheduler *notification.Scheduler, visionClient vision.Client, s3 storage.AwsS3) ProductService {
	return &productService{
		productRepository: productRepository,
		scheduler:         scheduler,
		visionClient:      visionClient,
		s3:                s3,
	}
}

func (s *productService) AddProduct(ctx context.Context, req domain.AddProductRequest, userID string) (domain.ProductResponse, error) {
	expiresAt, err := time.Parse("2006-01-02", req.ExpirationDate)
	if err != nil {
		return domain.ProductResponse{}, domain.ErrInvalidExpirationDate
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ProductResponse{}, domain.ErrParseUUID
	}

	product := &entities.Product{
		ID:             uuid.New(),
		UserID:         userUUID,
		Name:           req.Name,
		ExpirationDate: expiresAt,
		AddedDate:      time.Now(),
	}

	if err := s.productRepository.Create(ctx, product); err != nil {
		return domain.ProductResponse{}, err
	}

	// Best effort: a reminder failure never rolls back the save.
	go s.scheduleReminder(product.ID, product.Name, product.ExpirationDate)

	return toProductResponse(product, time.Now()), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest, userID string) error {
	product, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	var expiresAt time.Time
	dateChanged := false
	if req.ExpirationDate != "" {
		expiresAt, err = time.Parse("2006-01-02", req.ExpirationDate)
		if err != nil {
			return domain.ErrInvalidExpirationDate
		}
		dateChanged = !expiresAt.Equal(product.ExpirationDate)
	}

	name := product.Name
	if req.Name != "" {
		name = req.Name
	}

	if err := s.productRepository.Update(ctx, id, func(p *entities.Product) {
		p.Name = name
		if dateChanged {
			p.ExpirationDate = expiresAt
		}
	}); err != nil {
		return err
	}

	if dateChanged {
		go s.scheduleReminder(product.ID, name, expiresAt)
	}

	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string, userID string) error {
	product, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	// Cancel the reminder before the record goes away.
	if product.NotificationID != nil {
		if err := s.scheduler.CancelFor(ctx, *product.NotificationID); err != nil {
			log.Printf("Error cancelling reminder %s: %v", *product.NotificationID, err)
		}
	}

	if product.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(product.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.productRepository.Delete(ctx, id)
}

func (s *productService) GetProducts(ctx context.Context, userID string, status string) ([]domain.ProductResponse, error) {
	if status != "" && status != "all" &&
		status != domain.StatusFresh && status != domain.StatusWarning && status != domain.StatusSpoiled {
		return nil, domain.ErrInvalidStatusFilter
	}

	products, err := s.productRepository.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var response []domain.ProductResponse
	for _, item := range products {
		res := toProductResponse(item, now)
		if status != "" && status != "all" && res.Status != status {
			continue
		}
		response = append(response, res)
	}

	return response, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string, userID string) (domain.ProductResponse, error) {
	product, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return domain.ProductResponse{}, err
	}
	return toProductResponse(product, time.Now()), nil
}

func (s *productService) UploadProductImage(ctx context.Context, req domain.UploadProductImageRequest, userID string) error {
	product, err := s.findOwned(ctx, req.ProductID, userID)
	if err != nil {
		return err
	}

	fileName := fmt.Sprintf("product-%s", product.ID.String())
	var objectKey string
	var uploadErr error

	if product.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(product.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "products", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "products", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	imageURL := s.s3.GetPublicLinkKey(objectKey)
	return s.productRepository.Update(ctx, req.ProductID, func(p *entities.Product) {
		p.ImageURL = imageURL
	})
}

func (s *productService) GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error) {
	products, err := s.productRepository.List(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	now := time.Now()
	stats := domain.DashboardStatsResponse{TotalItems: len(products)}
	for _, item := range products {
		switch Classify(item.ExpirationDate, now) {
		case domain.StatusFresh:
			stats.FreshItems++
		case domain.StatusWarning:
			stats.WarningItems++
		case domain.StatusSpoiled:
			stats.SpoiledItems++
		}
	}

	return stats, nil
}

func (s *productService) ScanLabel(ctx context.Context, imageFile *multipart.FileHeader) (domain.ExtractionResult, error) {
	file, err := imageFile.Open()
	if err != nil {
		return domain.ExtractionResult{}, domain.ErrInvalidImage
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		return domain.ExtractionResult{}, domain.ErrInvalidImage
	}

	return s.visionClient.Extract(ctx, imageData, imageMimeType(imageFile))
}

func (s *productService) findOwned(ctx context.Context, id string, userID string) (*entities.Product, error) {
	product, err := s.productRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	if product.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return product, nil
}

func (s *productService) scheduleReminder(productID uuid.UUID, name string, expiresAt time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.scheduler.Schedule(ctx, productID, name, expiresAt); err != nil {
		log.Printf("Error scheduling reminder for product %s: %v", productID, err)
	}
}

func toProductResponse(product *entities.Product, now time.Time) domain.ProductResponse {
	notificationID := ""
	if product.NotificationID != nil {
		notificationID = *product.NotificationID
	}
	return domain.ProductResponse{
		ID:             product.ID.String(),
		Name:           product.Name,
		ExpirationDate: product.ExpirationDate,
		AddedDate:      product.AddedDate,
		Status:         Classify(product.ExpirationDate, now),
		ImageURL:       product.ImageURL,
		NotificationID: notificationID,
	}
}

func imageMimeType(imageFile *multipart.FileHeader) string {
	mimeType := imageFile.Header.Get("Content-Type")
	if mimeType != "" {
		return mimeType
	}

	switch strings.ToLower(filepath.Ext(imageFile.Filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
