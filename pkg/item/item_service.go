package item

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"FoodWise-Backend/domain"
	"FoodWise-Backend/entities"
	"FoodWise-Backend/internal/utils/storage"
	"FoodWise-Backend/pkg/expiry"
	"FoodWise-Backend/pkg/prediction"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ItemService interface {
		AddItem(ctx context.Context, req domain.AddItemRequest, userID string) (domain.ItemResponse, error)
		UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest, userID string) (domain.ItemResponse, error)
		DeleteItem(ctx context.Context, id string, userID string) error
		GetItems(ctx context.Context, userID string, status string, page, limit int) ([]domain.ItemResponse, int64, error)
		GetItemByID(ctx context.Context, id string, userID string) (domain.ItemResponse, error)
		GetExpiringItems(ctx context.Context, userID string, windowDays int) ([]domain.ItemResponse, error)
		MarkConsumed(ctx context.Context, id string, userID string) error
		MarkWasted(ctx context.Context, id string, userID string) error
		UploadItemPhoto(ctx context.Context, req domain.UploadItemPhotoRequest, userID string) (string, error)
		GetDashboard(ctx context.Context, userID string, thresholdDays int) (domain.DashboardResponse, error)
	}

	itemService struct {
		itemRepository ItemRepository
		predictor      prediction.Predictor
		s3             storage.AwsS3
		clock          func() time.Time
	}
)

func NewItemService(itemRepository ItemRepository, predictor prediction.Predictor, s3 storage.AwsS3) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		predictor:      predictor,
		s3:             s3,
		clock:          time.Now,
	}
}

func (s *itemService) AddItem(ctx context.Context, req domain.AddItemRequest, userID string) (domain.ItemResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ItemResponse{}, domain.ErrParseUUID
	}

	now := s.clock()

	if req.Quantity < 0 {
		return domain.ItemResponse{}, domain.ErrInvalidQuantity
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	category := req.Category
	if category == "" {
		category = domain.DefaultCategory
	}

	unit, err := normalizeEnum(req.Unit, domain.DefaultUnit, domain.ValidUnits, domain.ErrInvalidUnit)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	storageCondition, err := normalizeEnum(req.StorageCondition, domain.DefaultStorageCondition, domain.ValidStorageConditions, domain.ErrInvalidStorageCondition)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	itemCondition, err := normalizeEnum(req.ItemCondition, domain.DefaultItemCondition, domain.ValidItemConditions, domain.ErrInvalidItemCondition)
	if err != nil {
		return domain.ItemResponse{}, err
	}

	purchaseDate := now
	if req.PurchaseDate != "" {
		purchaseDate, err = time.Parse(domain.DateLayout, req.PurchaseDate)
		if err != nil {
			return domain.ItemResponse{}, domain.ErrInvalidPurchaseDate
		}
	}

	var expiryDate time.Time
	expirySource := "manual"
	if req.ExpiryDate != "" {
		expiryDate, err = time.Parse(domain.DateLayout, req.ExpiryDate)
		if err != nil {
			return domain.ItemResponse{}, domain.ErrInvalidExpiryDate
		}
	} else {
		predicted := s.predictor.Predict(ctx, prediction.Request{
			ProductName:      req.Name,
			StorageCondition: storageCondition,
			ItemCondition:    itemCondition,
			PurchaseDate:     purchaseDate,
		}, now)
		expiryDate = predicted.ExpiryDate
		expirySource = predicted.Source
	}

	item := &entities.Item{
		ID:               uuid.New(),
		UserID:           userUUID,
		Name:             req.Name,
		Category:         category,
		PurchaseDate:     purchaseDate,
		ExpiryDate:       expiryDate,
		Quantity:         quantity,
		Unit:             unit,
		StorageCondition: storageCondition,
		ItemCondition:    itemCondition,
		Notes:            req.Notes,
		ExpirySource:     expirySource,
	}

	if err := s.itemRepository.AddItem(ctx, item); err != nil {
		return domain.ItemResponse{}, err
	}

	return s.toResponse(item, now), nil
}

func (s *itemService) UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest, userID string) (domain.ItemResponse, error) {
	item, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return domain.ItemResponse{}, err
	}

	now := s.clock()
	nameChanged := req.Name != "" && req.Name != item.Name

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Quantity > 0 {
		item.Quantity = req.Quantity
	}
	if req.Unit != "" {
		unit, err := normalizeEnum(req.Unit, "", domain.ValidUnits, domain.ErrInvalidUnit)
		if err != nil {
			return domain.ItemResponse{}, err
		}
		item.Unit = unit
	}
	if req.StorageCondition != "" {
		storageCondition, err := normalizeEnum(req.StorageCondition, "", domain.ValidStorageConditions, domain.ErrInvalidStorageCondition)
		if err != nil {
			return domain.ItemResponse{}, err
		}
		item.StorageCondition = storageCondition
	}
	if req.ItemCondition != "" {
		itemCondition, err := normalizeEnum(req.ItemCondition, "", domain.ValidItemConditions, domain.ErrInvalidItemCondition)
		if err != nil {
			return domain.ItemResponse{}, err
		}
		item.ItemCondition = itemCondition
	}
	if req.PurchaseDate != "" {
		purchaseDate, err := time.Parse(domain.DateLayout, req.PurchaseDate)
		if err != nil {
			return domain.ItemResponse{}, domain.ErrInvalidPurchaseDate
		}
		item.PurchaseDate = purchaseDate
	}
	if req.Notes != "" {
		item.Notes = req.Notes
	}

	switch {
	case req.ExpiryDate != "":
		expiryDate, err := time.Parse(domain.DateLayout, req.ExpiryDate)
		if err != nil {
			return domain.ItemResponse{}, domain.ErrInvalidExpiryDate
		}
		item.ExpiryDate = expiryDate
		item.ExpirySource = "manual"
	case nameChanged:
		// Re-predict only when the name changed and no explicit date was
		// supplied. A failed re-prediction keeps the previous expiry date,
		// unlike the add path which falls back to now+7.
		predicted := s.predictor.Predict(ctx, prediction.Request{
			ProductName:      item.Name,
			StorageCondition: item.StorageCondition,
			ItemCondition:    item.ItemCondition,
			PurchaseDate:     item.PurchaseDate,
		}, now)
		if predicted.Source == prediction.SourcePrediction {
			item.ExpiryDate = predicted.ExpiryDate
			item.ExpirySource = predicted.Source
		}
	}

	if err := s.itemRepository.UpdateItem(ctx, item); err != nil {
		return domain.ItemResponse{}, err
	}

	return s.toResponse(item, now), nil
}

func (s *itemService) DeleteItem(ctx context.Context, id string, userID string) error {
	item, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return err
	}

	if item.PhotoURL != "" {
		if objectKey := s.s3.GetObjectKeyFromLink(item.PhotoURL); objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.itemRepository.DeleteItem(ctx, id)
}

func (s *itemService) GetItems(ctx context.Context, userID string, status string, page, limit int) ([]domain.ItemResponse, int64, error) {
	items, err := s.itemRepository.GetItemsByOwner(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	now := s.clock()

	filtered := make([]domain.ItemResponse, 0, len(items))
	for _, item := range items {
		response := s.toResponse(item, now)
		if status != "all" && status != "" && response.Status != status {
			continue
		}
		filtered = append(filtered, response)
	}

	count := int64(len(filtered))

	start := (page - 1) * limit
	if start >= len(filtered) {
		return []domain.ItemResponse{}, count, nil
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], count, nil
}

func (s *itemService) GetItemByID(ctx context.Context, id string, userID string) (domain.ItemResponse, error) {
	item, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	return s.toResponse(item, s.clock()), nil
}

func (s *itemService) GetExpiringItems(ctx context.Context, userID string, windowDays int) ([]domain.ItemResponse, error) {
	items, err := s.itemRepository.GetActiveItemsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock()

	expiring := make([]domain.ItemResponse, 0)
	for _, item := range items {
		c := expiry.Classify(item.ExpiryDate, now, windowDays)
		if c.Status == expiry.StatusExpiringSoon {
			expiring = append(expiring, s.toResponse(item, now))
		}
	}

	return expiring, nil
}

func (s *itemService) MarkConsumed(ctx context.Context, id string, userID string) error {
	item, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return err
	}
	item.IsConsumed = true
	return s.itemRepository.UpdateItem(ctx, item)
}

func (s *itemService) MarkWasted(ctx context.Context, id string, userID string) error {
	item, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return err
	}
	item.IsWasted = true
	return s.itemRepository.UpdateItem(ctx, item)
}

func (s *itemService) UploadItemPhoto(ctx context.Context, req domain.UploadItemPhotoRequest, userID string) (string, error) {
	item, err := s.ownedItem(ctx, req.ItemID, userID)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("item-%s", item.ID.String())

	var objectKey string
	var uploadErr error
	if existingKey := s.s3.GetObjectKeyFromLink(item.PhotoURL); existingKey != "" {
		objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Photo, storage.AllowImage...)
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Photo, "items", storage.AllowImage...)
	}
	if uploadErr != nil {
		return "", uploadErr
	}

	item.PhotoURL = s.s3.GetPublicLinkKey(objectKey)

	if err := s.itemRepository.UpdateItem(ctx, item); err != nil {
		return "", err
	}

	return item.PhotoURL, nil
}

func (s *itemService) GetDashboard(ctx context.Context, userID string, thresholdDays int) (domain.DashboardResponse, error) {
	items, err := s.itemRepository.GetItemsByOwner(ctx, userID)
	if err != nil {
		return domain.DashboardResponse{}, err
	}

	now := s.clock()

	var consumed, wasted int
	active := make([]*entities.Item, 0, len(items))
	view := make([]expiry.Item, 0, len(items))
	for _, item := range items {
		if item.IsConsumed {
			consumed++
			continue
		}
		if item.IsWasted {
			wasted++
			continue
		}
		active = append(active, item)
		view = append(view, expiry.Item{
			Name:       item.Name,
			Category:   item.Category,
			Quantity:   quantityDisplay(item),
			ExpiryDate: item.ExpiryDate,
		})
	}

	summary := expiry.Summarize(view, now, thresholdDays)

	response := domain.DashboardResponse{
		TotalItems:       summary.TotalCount,
		GoodItems:        len(summary.Good),
		ExpiringSoon:     []domain.ItemResponse{},
		ExpiredItems:     []domain.ItemResponse{},
		ConsumedItems:    consumed,
		WastedItems:      wasted,
		CategoryCounts:   summary.CategoryCounts,
		DominantCategory: summary.DominantCategory,
		ThresholdDays:    thresholdDays,
	}

	// Active items arrive ordered by expiry date, so appending in order keeps
	// the expiring list ascending by days remaining.
	for _, item := range active {
		c := expiry.Classify(item.ExpiryDate, now, thresholdDays)
		switch c.Status {
		case expiry.StatusExpiringSoon:
			response.ExpiringSoon = append(response.ExpiringSoon, s.toResponse(item, now))
		case expiry.StatusExpired:
			response.ExpiredItems = append(response.ExpiredItems, s.toResponse(item, now))
		}
	}

	if summary.LowStock != nil {
		for _, item := range active {
			if item.Name == summary.LowStock.Name && item.ExpiryDate.Equal(summary.LowStock.ExpiryDate) {
				lowStock := s.toResponse(item, now)
				response.LowStock = &lowStock
				break
			}
		}
	}

	return response, nil
}

func (s *itemService) ownedItem(ctx context.Context, id string, userID string) (*entities.Item, error) {
	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}

	// Cross-owner access reports not-found so record existence never leaks.
	if item.UserID.String() != userID {
		return nil, domain.ErrItemNotFound
	}

	return item, nil
}

func (s *itemService) toResponse(item *entities.Item, now time.Time) domain.ItemResponse {
	c := expiry.Classify(item.ExpiryDate, now, expiry.DefaultDashboardThreshold)

	return domain.ItemResponse{
		ID:               item.ID.String(),
		Name:             item.Name,
		Category:         item.Category,
		PurchaseDate:     item.PurchaseDate,
		ExpiryDate:       item.ExpiryDate,
		Quantity:         item.Quantity,
		Unit:             item.Unit,
		StorageCondition: item.StorageCondition,
		ItemCondition:    item.ItemCondition,
		Notes:            item.Notes,
		IsConsumed:       item.IsConsumed,
		IsWasted:         item.IsWasted,
		PhotoURL:         item.PhotoURL,
		ExpirySource:     item.ExpirySource,
		DaysRemaining:    c.DaysRemaining,
		Status:           string(c.Status),
		CreatedAt:        item.CreatedAt,
	}
}

func quantityDisplay(item *entities.Item) string {
	return fmt.Sprintf("%g %s", item.Quantity, item.Unit)
}

func normalizeEnum(value, fallback string, valid map[string]bool, invalidErr error) (string, error) {
	if value == "" {
		return fallback, nil
	}
	normalized := strings.ToLower(strings.TrimSpace(value))
	if !valid[normalized] {
		return "", invalidErr
	}
	return normalized, nil
}
