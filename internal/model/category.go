package model

// Category is a spending category label from the fixed closed set.
type Category string

const (
	CategoryFoodDining     Category = "Food & Dining"
	CategoryTransportation Category = "Transportation"
	CategoryShopping       Category = "Shopping"
	CategoryEntertainment  Category = "Entertainment"
	CategoryUtilities      Category = "Utilities"
	CategoryHealthcare     Category = "Healthcare"
	CategoryGroceries      Category = "Groceries"
	CategoryEducation      Category = "Education"
	CategoryInvestment     Category = "Investment"
	CategoryTransfer       Category = "Transfer"
	CategoryOthers         Category = "Others"
)

// Categories lists every valid category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryFoodDining,
		CategoryTransportation,
		CategoryShopping,
		CategoryEntertainment,
		CategoryUtilities,
		CategoryHealthcare,
		CategoryGroceries,
		CategoryEducation,
		CategoryInvestment,
		CategoryTransfer,
		CategoryOthers,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
