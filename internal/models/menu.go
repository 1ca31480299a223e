package models

// FoodCategory represents the category of a menu item
type FoodCategory string

const (
	CategoryAppetizer  FoodCategory = "appetizer"
	CategoryMainCourse FoodCategory = "main_course"
	CategoryDessert    FoodCategory = "dessert"
	CategoryBeverage   FoodCategory = "beverage"
	CategorySalad      FoodCategory = "salad"
)

// IsValid reports whether the category is a known one
func (c FoodCategory) IsValid() bool {
	switch c {
	case CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage, CategorySalad:
		return true
	}
	return false
}

// Price tiers derived from the item price
const (
	PriceTierBudget   = "Budget"
	PriceTierMidRange = "Mid-range"
	PriceTierPremium  = "Premium"
)

// FoodItem represents an item on the menu
type FoodItem struct {
	ID              int          `json:"id,omitempty"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Category        FoodCategory `json:"category"`
	Price           Money        `json:"price"`
	IsAvailable     bool         `json:"is_available"`
	PreparationTime int          `json:"preparation_time"`
	Ingredients     []string     `json:"ingredients"`
	Calories        *int         `json:"calories,omitempty"`
	IsVegetarian    bool         `json:"is_vegetarian"`
	IsSpicy         bool         `json:"is_spicy"`
}

// PriceCategory derives the price tier from the item price. Items under
// 10 are Budget, items from 10 through 25 inclusive are Mid-range, and
// everything above is Premium.
func (f *FoodItem) PriceCategory() string {
	switch {
	case f.Price.LessThan(tierBudgetCeiling.Decimal):
		return PriceTierBudget
	case f.Price.LessThanOrEqual(tierMidRangeCeiling.Decimal):
		return PriceTierMidRange
	default:
		return PriceTierPremium
	}
}

var (
	tierBudgetCeiling, _   = MoneyFromString("10.00")
	tierMidRangeCeiling, _ = MoneyFromString("25.00")
)

// DietaryInfo derives the dietary tags from the vegetarian and spicy flags.
func (f *FoodItem) DietaryInfo() []string {
	info := []string{}
	if f.IsVegetarian {
		info = append(info, "Vegetarian")
	}
	if f.IsSpicy {
		info = append(info, "Spicy")
	}
	return info
}

// CreateFoodItemRequest represents the request body for creating or
// replacing a menu item
type CreateFoodItemRequest struct {
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Category        FoodCategory `json:"category"`
	Price           Money        `json:"price"`
	IsAvailable     *bool        `json:"is_available,omitempty"`
	PreparationTime int          `json:"preparation_time"`
	Ingredients     []string     `json:"ingredients"`
	Calories        *int         `json:"calories,omitempty"`
	IsVegetarian    bool         `json:"is_vegetarian"`
	IsSpicy         bool         `json:"is_spicy"`
}

// FoodItem converts the request into a candidate item. Availability
// defaults to true when the field is omitted.
func (r *CreateFoodItemRequest) FoodItem() FoodItem {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return FoodItem{
		Name:            r.Name,
		Description:     r.Description,
		Category:        r.Category,
		Price:           r.Price,
		IsAvailable:     available,
		PreparationTime: r.PreparationTime,
		Ingredients:     r.Ingredients,
		Calories:        r.Calories,
		IsVegetarian:    r.IsVegetarian,
		IsSpicy:         r.IsSpicy,
	}
}

// FoodItemResponse is a menu item together with its derived attributes
type FoodItemResponse struct {
	FoodItem
	PriceCategory string   `json:"price_category"`
	DietaryInfo   []string `json:"dietary_info"`
}

// NewFoodItemResponse builds the response view of a stored item.
func NewFoodItemResponse(item FoodItem) FoodItemResponse {
	return FoodItemResponse{
		FoodItem:      item,
		PriceCategory: item.PriceCategory(),
		DietaryInfo:   item.DietaryInfo(),
	}
}
