package domain

import (
	"errors"
)

var (
	MessageSuccessGetMeals     = "meal suggestions retrieved successfully"
	MessageSuccessGetGroceries = "grocery suggestions retrieved successfully"
	MessageSuccessGetReport    = "inventory report retrieved successfully"

	MessageFailedGetMeals     = "failed to retrieve meal suggestions"
	MessageFailedGetGroceries = "failed to retrieve grocery suggestions"
	MessageFailedGetReport    = "failed to retrieve inventory report"

	ErrNoUsableIngredients = errors.New("no usable ingredients in inventory")
)

type (
	MealSuggestion struct {
		Name        string   `json:"name"`
		Ingredients []string `json:"ingredients"`
		Duration    string   `json:"duration"`
	}

	MealSuggestionResponse struct {
		Suggestions []MealSuggestion `json:"suggestions"`
		UsableItems int              `json:"usable_items"`
	}

	GrocerySuggestion struct {
		Name   string `json:"name"`
		Reason string `json:"reason"` // "expired", "expiring soon", "low stock"
	}

	GrocerySuggestionResponse struct {
		Suggestions []GrocerySuggestion `json:"suggestions"`
	}

	ReportRow struct {
		Name          string `json:"name"`
		Category      string `json:"category"`
		Quantity      string `json:"quantity"`
		ExpiryDate    string `json:"expiry_date"`
		DaysRemaining int    `json:"days_remaining"`
		Status        string `json:"status"`
	}

	InventoryReportResponse struct {
		Rows          []ReportRow `json:"rows"`
		TotalItems    int         `json:"total_items"`
		Insights      []string    `json:"insights"`
		ThresholdDays int         `json:"threshold_days"`
	}
)
