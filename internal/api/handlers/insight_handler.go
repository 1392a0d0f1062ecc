package handlers

import (
	"strconv"

	"FoodWise-Backend/domain"
	"FoodWise-Backend/internal/api/presenters"
	"FoodWise-Backend/pkg/expiry"
	"FoodWise-Backend/pkg/insight"

	"github.com/gofiber/fiber/v2"
)

type (
	InsightHandler interface {
		GetMealSuggestions(c *fiber.Ctx) error
		GetGrocerySuggestions(c *fiber.Ctx) error
		GetInventoryReport(c *fiber.Ctx) error
	}

	insightHandler struct {
		insightService insight.InsightService
	}
)

func NewInsightHandler(insightService insight.InsightService) InsightHandler {
	return &insightHandler{
		insightService: insightService,
	}
}

func (h *insightHandler) GetMealSuggestions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.insightService.SuggestMeals(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMeals, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMeals)
}

func (h *insightHandler) GetGrocerySuggestions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.insightService.SuggestGroceries(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetGroceries, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetGroceries)
}

func (h *insightHandler) GetInventoryReport(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	thresholdDays, err := strconv.Atoi(c.Query("threshold", strconv.Itoa(expiry.DefaultReportThreshold)))
	if err != nil || thresholdDays < 0 {
		thresholdDays = expiry.DefaultReportThreshold
	}

	res, err := h.insightService.BuildReport(c.Context(), userID, thresholdDays)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReport)
}
