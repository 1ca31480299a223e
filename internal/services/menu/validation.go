package menu

import (
	"regexp"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"restaurant-orders/internal/models"
	"restaurant-orders/internal/validation"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)

var (
	minPrice = decimal.New(100, -2)   // 1.00
	maxPrice = decimal.New(10000, -2) // 100.00
)

// ValidateFoodItem checks a candidate menu item against the full rule
// set and reports every failing rule. The rules are independent
// conjunctions, so they may be evaluated and tested in any order.
func ValidateFoodItem(item *models.FoodItem) error {
	rules := []validation.Rule{
		{
			Field: "name", Name: "name_format",
			Message: "name must contain only letters and spaces",
			Ok:      func() bool { return namePattern.MatchString(item.Name) },
		},
		{
			Field: "name", Name: "name_length",
			Message: "name must be between 3 and 100 characters",
			Ok: func() bool {
				n := utf8.RuneCountInString(item.Name)
				return n >= 3 && n <= 100
			},
		},
		{
			Field: "description", Name: "description_length",
			Message: "description must be between 10 and 500 characters",
			Ok: func() bool {
				n := utf8.RuneCountInString(item.Description)
				return n >= 10 && n <= 500
			},
		},
		{
			Field: "category", Name: "category_known",
			Message: "category must be one of: appetizer, main_course, dessert, beverage, salad",
			Ok:      func() bool { return item.Category.IsValid() },
		},
		{
			Field: "price", Name: "price_precision",
			Message: "price must have at most 2 decimal places",
			Ok:      func() bool { return item.Price.HasMaxPlaces(2) },
		},
		{
			Field: "price", Name: "price_range",
			Message: "price must be between 1.00 and 100.00",
			Ok: func() bool {
				return item.Price.GreaterThanOrEqual(minPrice) && item.Price.LessThanOrEqual(maxPrice)
			},
		},
		{
			Field: "is_spicy", Name: "spicy_category",
			Message: "desserts and beverages cannot be spicy",
			Ok: func() bool {
				if !item.IsSpicy {
					return true
				}
				return item.Category != models.CategoryDessert && item.Category != models.CategoryBeverage
			},
		},
		{
			Field: "calories", Name: "calories_vegetarian",
			Message: "vegetarian items must have calories below 800",
			Ok: func() bool {
				if item.Calories == nil || !item.IsVegetarian {
					return true
				}
				return *item.Calories < 800
			},
		},
		{
			Field: "calories", Name: "calories_positive",
			Message: "calories must be greater than 0",
			Ok:      func() bool { return item.Calories == nil || *item.Calories > 0 },
		},
		{
			Field: "preparation_time", Name: "preparation_time_range",
			Message: "preparation time must be between 1 and 120 minutes",
			Ok:      func() bool { return item.PreparationTime >= 1 && item.PreparationTime <= 120 },
		},
		{
			Field: "preparation_time", Name: "preparation_time_beverage",
			Message: "beverages must have preparation time of at most 10 minutes",
			Ok: func() bool {
				if item.Category != models.CategoryBeverage {
					return true
				}
				return item.PreparationTime <= 10
			},
		},
		{
			Field: "ingredients", Name: "ingredients_required",
			Message: "at least one ingredient is required",
			Ok:      func() bool { return len(item.Ingredients) >= 1 },
		},
	}

	return validation.Check(rules)
}
