package validator

import (
	"log"

	"feedback_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		// emptiness is the 'required' tag's concern
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleUser, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}
