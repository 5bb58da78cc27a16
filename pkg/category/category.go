package category

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Category is reference data: seeded at startup, immutable, not user-editable.
// Transactions and budgets hold only the category id, with no ownership.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  Type   `json:"type"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// DefaultCategories returns the seeded category set.
func DefaultCategories() []Category {
	return []Category{
		// Income
		{ID: "cat_salary", Name: "Salário", Type: TypeIncome, Color: "#16a34a", Icon: "Banknote"},
		{ID: "cat_freelance", Name: "Freelance", Type: TypeIncome, Color: "#059669", Icon: "Laptop"},
		{ID: "cat_investment", Name: "Investimentos", Type: TypeIncome, Color: "#0d9488", Icon: "TrendingUp"},

		// Expense
		{ID: "cat_food", Name: "Alimentação", Type: TypeExpense, Color: "#dc2626", Icon: "UtensilsCrossed"},
		{ID: "cat_transport", Name: "Transporte", Type: TypeExpense, Color: "#ea580c", Icon: "Car"},
		{ID: "cat_housing", Name: "Moradia", Type: TypeExpense, Color: "#d97706", Icon: "Home"},
		{ID: "cat_health", Name: "Saúde", Type: TypeExpense, Color: "#c026d3", Icon: "Heart"},
		{ID: "cat_entertainment", Name: "Entretenimento", Type: TypeExpense, Color: "#7c3aed", Icon: "Gamepad2"},
		{ID: "cat_education", Name: "Educação", Type: TypeExpense, Color: "#2563eb", Icon: "GraduationCap"},
		{ID: "cat_shopping", Name: "Compras", Type: TypeExpense, Color: "#0891b2", Icon: "ShoppingBag"},
	}
}
