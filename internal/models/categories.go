package models

import "slices"

// IncomeCategories: закрытый список категорий дохода.
var IncomeCategories = []string{
	"Boda",
	"Evento Privado",
	"Evento Corporativo",
	"Discoteca/Club",
	"Festival",
	"Otro",
}

// ExpenseCategories: закрытый список категорий расходов.
var ExpenseCategories = []string{
	"Transporte",
	"Alquiler de Equipo",
	"Marketing",
	"Música",
	"Comida y Bebida",
	"Alojamiento",
	"Asistentes",
	"Otro",
}

// SubscriptionTiers: тарифные планы подписки.
var SubscriptionTiers = []string{
	"Mensual",
	"Trimestral",
	"Anual",
	"Vitalicio",
}

// Catalog объединяет справочники для клиентских приложений.
type Catalog struct {
	IncomeCategories  []string `json:"income_categories"`
	ExpenseCategories []string `json:"expense_categories"`
	SubscriptionTiers []string `json:"subscription_tiers"`
}

// NewCatalog возвращает копию всех справочников.
func NewCatalog() Catalog {
	return Catalog{
		IncomeCategories:  slices.Clone(IncomeCategories),
		ExpenseCategories: slices.Clone(ExpenseCategories),
		SubscriptionTiers: slices.Clone(SubscriptionTiers),
	}
}

func IsIncomeCategory(s string) bool   { return slices.Contains(IncomeCategories, s) }
func IsExpenseCategory(s string) bool  { return slices.Contains(ExpenseCategories, s) }
func IsSubscriptionTier(s string) bool { return slices.Contains(SubscriptionTiers, s) }
