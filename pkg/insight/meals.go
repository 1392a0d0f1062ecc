package insight

import (
	"FoodWise-Backend/domain"
)

// The suggestion table is static; meals match when every ingredient is
// present among the owner's usable (non-expired, quantity > 0) items.
var meals = []domain.MealSuggestion{
	{
		Name:        "Vegetable Stir Fry",
		Ingredients: []string{"carrot", "capsicum", "onion", "garlic"},
		Duration:    "15 mins",
	},
	{
		Name:        "Masala Omelette",
		Ingredients: []string{"egg", "onion", "tomato", "chilli"},
		Duration:    "10 mins",
	},
	{
		Name:        "Fruit Salad",
		Ingredients: []string{"apple", "banana", "orange", "grapes"},
		Duration:    "5 mins",
	},
	{
		Name:        "Rice and Dal",
		Ingredients: []string{"rice", "dal", "turmeric", "salt"},
		Duration:    "30 mins",
	},
	{
		Name:        "Sandwich",
		Ingredients: []string{"bread", "butter", "tomato", "lettuce"},
		Duration:    "10 mins",
	},
}
