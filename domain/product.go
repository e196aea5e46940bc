package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	StatusFresh   = "Fresh"
	StatusWarning = "Warning"
	StatusSpoiled = "Spoiled"
)

var (
	MessageSuccessAddProduct        = "product added successfully"
	MessageSuccessUpdateProduct     = "product updated successfully"
	MessageSuccessDeleteProduct     = "product deleted successfully"
	MessageSuccessGetProducts       = "products retrieved successfully"
	MessageSuccessUploadImage       = "product image uploaded successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"

	MessageFailedAddProduct        = "failed to add product"
	MessageFailedUpdateProduct     = "failed to update product"
	MessageFailedDeleteProduct     = "failed to delete product"
	MessageFailedGetProducts       = "failed to retrieve products"
	MessageFailedUploadImage       = "failed to upload product image"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"

	ErrProductNotFound       = errors.New("product not found")
	ErrInvalidExpirationDate = errors.New("invalid expiration date")
	ErrInvalidStatusFilter   = errors.New("invalid status filter")
	ErrUnauthorizedAccess    = errors.New("unauthorized access to product")
)

type (
	AddProductRequest struct {
		Name           string `json:"name" validate:"required"`
		ExpirationDate string `json:"expiration_date" validate:"required"`
	}

	UpdateProductRequest struct {
		Name           string `json:"name" validate:"omitempty"`
		ExpirationDate string `json:"expiration_date" validate:"omitempty"`
	}

	UploadProductImageRequest struct {
		ProductID string                `json:"product_id" form:"product_id" validate:"required,uuid"`
		Image     *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	ProductResponse struct {
		ID             string    `json:"id"`
		Name           string    `json:"name"`
		ExpirationDate time.Time `json:"expiration_date"`
		AddedDate      time.Time `json:"added_date"`
		Status         string    `json:"status"`
		ImageURL       string    `json:"image_url,omitempty"`
		NotificationID string    `json:"notification_id,omitempty"`
	}

	DashboardStatsResponse struct {
		TotalItems   int `json:"total_items"`
		FreshItems   int `json:"fresh_items"`
		WarningItems int `json:"warning_items"`
		SpoiledItems int `json:"spoiled_items"`
	}
)
