package category

import "github.com/budgetwise-dev/budgetwise/internal/model"

// DefaultRules returns the built-in keyword table, tuned for Indian
// bank and UPI exports. Declaration order is the match order;
// reordering changes classification results (e.g. "book" belongs to
// Entertainment because it is declared before Education).
func DefaultRules() []Rule {
	return []Rule{
		{Category: model.CategoryFoodDining, Keywords: []string{
			"swiggy", "zomato", "restaurant", "cafe", "food",
			"dining", "lunch", "dinner", "breakfast", "snacks",
			"pizza", "burger", "coffee", "tea", "dominos", "mcdonalds",
		}},
		{Category: model.CategoryTransportation, Keywords: []string{
			"uber", "ola", "rapido", "metro", "bus", "fuel",
			"petrol", "diesel", "parking", "toll", "cab", "auto",
			"train", "irctc", "flight", "indigo", "spicejet",
		}},
		{Category: model.CategoryShopping, Keywords: []string{
			"amazon", "flipkart", "myntra", "ajio", "shopping",
			"mall", "store", "market", "clothes", "shoes", "fashion",
			"electronics", "gadget", "decathlon", "ikea",
		}},
		{Category: model.CategoryEntertainment, Keywords: []string{
			"movie", "netflix", "hotstar", "prime", "spotify",
			"book", "game", "pvr", "inox", "cinema", "concert",
			"event", "amusement", "park", "museum",
		}},
		{Category: model.CategoryUtilities, Keywords: []string{
			"electricity", "water", "gas", "internet", "broadband",
			"mobile", "recharge", "bill", "airtel", "jio", "vodafone",
			"wifi", "dth", "tatasky", "maintenance",
		}},
		{Category: model.CategoryHealthcare, Keywords: []string{
			"medical", "doctor", "hospital", "pharmacy", "medicine",
			"clinic", "health", "gym", "fitness", "yoga", "insurance",
			"apollo", "fortis", "medplus", "1mg", "pharmeasy",
		}},
		{Category: model.CategoryGroceries, Keywords: []string{
			"grocery", "supermarket", "bigbasket", "grofers", "blinkit",
			"zepto", "dunzo", "vegetable", "fruit", "milk", "bread",
			"reliance fresh", "more", "dmart", "spencer",
		}},
		{Category: model.CategoryEducation, Keywords: []string{
			"school", "college", "university", "course", "tuition",
			"book", "udemy", "coursera", "upgrad", "byju", "unacademy",
			"fees", "exam", "certification",
		}},
		{Category: model.CategoryInvestment, Keywords: []string{
			"mutual fund", "sip", "stock", "trading", "zerodha",
			"groww", "upstox", "investment", "fd", "rd", "ppf",
			"nps", "gold", "crypto", "bitcoin",
		}},
		{Category: model.CategoryTransfer, Keywords: []string{
			"upi", "transfer", "neft", "imps", "rtgs", "paytm",
			"phonepe", "gpay", "bhim", "send", "received",
		}},
	}
}
