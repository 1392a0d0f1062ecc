package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddItem         = "item added successfully"
	MessageSuccessUpdateItem      = "item updated successfully"
	MessageSuccessDeleteItem      = "item deleted successfully"
	MessageSuccessGetItems        = "items retrieved successfully"
	MessageSuccessGetExpiring     = "expiring items retrieved successfully"
	MessageSuccessMarkConsumed    = "item marked as consumed"
	MessageSuccessMarkWasted      = "item marked as wasted"
	MessageSuccessUploadPhoto     = "item photo uploaded successfully"
	MessageSuccessGetDashboard    = "dashboard retrieved successfully"

	MessageFailedAddItem      = "failed to add item"
	MessageFailedUpdateItem   = "failed to update item"
	MessageFailedDeleteItem   = "failed to delete item"
	MessageFailedGetItems     = "failed to retrieve items"
	MessageFailedGetExpiring  = "failed to retrieve expiring items"
	MessageFailedMarkConsumed = "failed to mark item as consumed"
	MessageFailedMarkWasted   = "failed to mark item as wasted"
	MessageFailedUploadPhoto  = "failed to upload item photo"
	MessageFailedGetDashboard = "failed to retrieve dashboard"

	ErrItemNotFound            = errors.New("item not found")
	ErrInvalidExpiryDate       = errors.New("invalid expiry date")
	ErrInvalidPurchaseDate     = errors.New("invalid purchase date")
	ErrInvalidQuantity         = errors.New("quantity must be positive")
	ErrInvalidUnit             = errors.New("invalid unit")
	ErrInvalidStorageCondition = errors.New("invalid storage condition")
	ErrInvalidItemCondition    = errors.New("invalid item condition")
)

const (
	DefaultCategory         = "Uncategorized"
	DefaultUnit             = "item"
	DefaultStorageCondition = "fridge"
	DefaultItemCondition    = "fresh"

	DateLayout = "2006-01-02"
)

var (
	ValidUnits = map[string]bool{
		"item":   true,
		"g":      true,
		"kg":     true,
		"pcs":    true,
		"box":    true,
		"bottle": true,
	}

	ValidStorageConditions = map[string]bool{
		"fridge":           true,
		"room temperature": true,
		"freezer":          true,
	}

	ValidItemConditions = map[string]bool{
		"fresh":            true,
		"slightly bruised": true,
		"damaged pack":     true,
		"spoiled":          true,
		"near expiry":      true,
		"sealed & intact":  true,
		"minor defect":     true,
		"overripe":         true,
		"leaky pack":       true,
		"discolored":       true,
	}
)

type (
	AddItemRequest struct {
		Name             string  `json:"name" validate:"required"`
		Category         string  `json:"category" validate:"omitempty"`
		PurchaseDate     string  `json:"purchase_date" validate:"omitempty"`
		ExpiryDate       string  `json:"expiry_date" validate:"omitempty"`
		Quantity         float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit             string  `json:"unit" validate:"omitempty"`
		StorageCondition string  `json:"storage_condition" validate:"omitempty"`
		ItemCondition    string  `json:"item_condition_on_purchase" validate:"omitempty"`
		Notes            string  `json:"notes" validate:"omitempty"`
	}

	UpdateItemRequest struct {
		Name             string  `json:"name" validate:"omitempty"`
		Category         string  `json:"category" validate:"omitempty"`
		PurchaseDate     string  `json:"purchase_date" validate:"omitempty"`
		ExpiryDate       string  `json:"expiry_date" validate:"omitempty"`
		Quantity         float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit             string  `json:"unit" validate:"omitempty"`
		StorageCondition string  `json:"storage_condition" validate:"omitempty"`
		ItemCondition    string  `json:"item_condition_on_purchase" validate:"omitempty"`
		Notes            string  `json:"notes" validate:"omitempty"`
	}

	UploadItemPhotoRequest struct {
		ItemID string                `json:"item_id" form:"item_id" validate:"required,uuid"`
		Photo  *multipart.FileHeader `json:"photo" form:"photo" validate:"required"`
	}

	ItemResponse struct {
		ID               string    `json:"id"`
		Name             string    `json:"name"`
		Category         string    `json:"category"`
		PurchaseDate     time.Time `json:"purchase_date"`
		ExpiryDate       time.Time `json:"expiry_date"`
		Quantity         float64   `json:"quantity"`
		Unit             string    `json:"unit"`
		StorageCondition string    `json:"storage_condition"`
		ItemCondition    string    `json:"item_condition_on_purchase"`
		Notes            string    `json:"notes,omitempty"`
		IsConsumed       bool      `json:"is_consumed"`
		IsWasted         bool      `json:"is_wasted"`
		PhotoURL         string    `json:"photo_url,omitempty"`
		ExpirySource     string    `json:"expiry_source"`
		DaysRemaining    int       `json:"days_remaining"`
		Status           string    `json:"status"`
		CreatedAt        time.Time `json:"created_at"`
	}

	DashboardResponse struct {
		TotalItems       int            `json:"total_items"`
		GoodItems        int            `json:"good_items"`
		ExpiringSoon     []ItemResponse `json:"expiring_soon"`
		ExpiredItems     []ItemResponse `json:"expired_items"`
		ConsumedItems    int            `json:"consumed_items"`
		WastedItems      int            `json:"wasted_items"`
		CategoryCounts   map[string]int `json:"category_counts"`
		DominantCategory string         `json:"dominant_category,omitempty"`
		LowStock         *ItemResponse  `json:"low_stock,omitempty"`
		ThresholdDays    int            `json:"threshold_days"`
	}
)
