package insight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"FoodWise-Backend/domain"
	"FoodWise-Backend/entities"
	"FoodWise-Backend/pkg/expiry"
	"FoodWise-Backend/pkg/item"
)

type (
	InsightService interface {
		SuggestMeals(ctx context.Context, userID string) (domain.MealSuggestionResponse, error)
		SuggestGroceries(ctx context.Context, userID string) (domain.GrocerySuggestionResponse, error)
		BuildReport(ctx context.Context, userID string, thresholdDays int) (domain.InventoryReportResponse, error)
	}

	insightService struct {
		itemRepository item.ItemRepository
		clock          func() time.Time
	}
)

func NewInsightService(itemRepository item.ItemRepository) InsightService {
	return &insightService{
		itemRepository: itemRepository,
		clock:          time.Now,
	}
}

func (s *insightService) SuggestMeals(ctx context.Context, userID string) (domain.MealSuggestionResponse, error) {
	items, err := s.itemRepository.GetActiveItemsByOwner(ctx, userID)
	if err != nil {
		return domain.MealSuggestionResponse{}, err
	}

	now := s.clock()

	available := map[string]bool{}
	usable := 0
	for _, it := range items {
		c := expiry.Classify(it.ExpiryDate, now, expiry.DefaultDashboardThreshold)
		if c.Status == expiry.StatusExpired || it.Quantity <= 0 {
			continue
		}
		available[strings.ToLower(it.Name)] = true
		usable++
	}

	suggestions := []domain.MealSuggestion{}
	for _, meal := range meals {
		if hasAllIngredients(meal, available) {
			suggestions = append(suggestions, meal)
		}
	}

	return domain.MealSuggestionResponse{
		Suggestions: suggestions,
		UsableItems: usable,
	}, nil
}

func (s *insightService) SuggestGroceries(ctx context.Context, userID string) (domain.GrocerySuggestionResponse, error) {
	items, err := s.itemRepository.GetActiveItemsByOwner(ctx, userID)
	if err != nil {
		return domain.GrocerySuggestionResponse{}, err
	}

	now := s.clock()
	summary := expiry.Summarize(itemViews(items), now, expiry.DefaultReportThreshold)

	suggestions := []domain.GrocerySuggestion{}
	seen := map[string]bool{}

	add := func(name, reason string) {
		key := strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true
		suggestions = append(suggestions, domain.GrocerySuggestion{Name: name, Reason: reason})
	}

	for _, expired := range summary.Expired {
		add(expired.Name, "expired")
	}
	if summary.LowStock != nil {
		add(summary.LowStock.Name, "low stock")
	}
	for _, expiring := range summary.ExpiringSoon {
		add(expiring.Name, "expiring soon")
	}

	return domain.GrocerySuggestionResponse{Suggestions: suggestions}, nil
}

func (s *insightService) BuildReport(ctx context.Context, userID string, thresholdDays int) (domain.InventoryReportResponse, error) {
	items, err := s.itemRepository.GetItemsByOwner(ctx, userID)
	if err != nil {
		return domain.InventoryReportResponse{}, err
	}

	now := s.clock()
	summary := expiry.Summarize(itemViews(items), now, thresholdDays)

	rows := make([]domain.ReportRow, 0, len(items))
	for _, it := range items {
		c := expiry.Classify(it.ExpiryDate, now, thresholdDays)
		rows = append(rows, domain.ReportRow{
			Name:          it.Name,
			Category:      it.Category,
			Quantity:      quantityDisplay(it),
			ExpiryDate:    it.ExpiryDate.Format(domain.DateLayout),
			DaysRemaining: c.DaysRemaining,
			Status:        string(c.Status),
		})
	}

	insights := []string{}
	if summary.LowStock != nil {
		insights = append(insights, fmt.Sprintf(
			"Low Stock Alert: %s (%s) is running low.",
			summary.LowStock.Name, summary.LowStock.Quantity,
		))
	}
	if len(summary.ExpiringSoon) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Expiring Soon: %d item(s) will expire soon. Priority use recommended.",
			len(summary.ExpiringSoon),
		))
	}
	if len(summary.Expired) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Expired Items: %d item(s) have expired and should be removed.",
			len(summary.Expired),
		))
	}
	if summary.DominantCategory != "" {
		insights = append(insights, fmt.Sprintf(
			"Category Distribution: %s items make up the largest portion of your inventory (%d items).",
			summary.DominantCategory, summary.DominantCount,
		))
	}

	return domain.InventoryReportResponse{
		Rows:          rows,
		TotalItems:    summary.TotalCount,
		Insights:      insights,
		ThresholdDays: thresholdDays,
	}, nil
}

func hasAllIngredients(meal domain.MealSuggestion, available map[string]bool) bool {
	for _, ingredient := range meal.Ingredients {
		if !available[ingredient] {
			return false
		}
	}
	return true
}

func itemViews(items []*entities.Item) []expiry.Item {
	views := make([]expiry.Item, 0, len(items))
	for _, it := range items {
		views = append(views, expiry.Item{
			Name:       it.Name,
			Category:   it.Category,
			Quantity:   quantityDisplay(it),
			ExpiryDate: it.ExpiryDate,
		})
	}
	return views
}

func quantityDisplay(it *entities.Item) string {
	return fmt.Sprintf("%g %s", it.Quantity, it.Unit)
}
