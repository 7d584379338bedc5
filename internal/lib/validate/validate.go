// Package validate настраивает валидатор запросов с тегами справочников.
package validate

import (
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/djmanager/internal/models"
)

// New возвращает валидатор с зарегистрированными тегами
// income_category, expense_category и subscription_tier.
func New() *validator.Validate {
	v := validator.New()
	mustRegister(v, "income_category", models.IsIncomeCategory)
	mustRegister(v, "expense_category", models.IsExpenseCategory)
	mustRegister(v, "subscription_tier", models.IsSubscriptionTier)
	return v
}

func mustRegister(v *validator.Validate, tag string, allowed func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return allowed(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}
