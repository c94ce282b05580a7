package dto

import (
	"github.com/SscSPs/demerit_registry/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// Custom binding tags used on the request DTOs.
const (
	TagPersonID   = "person_id"
	TagVicAddress = "vic_address"
	TagDMYDate    = "dmy_date"
)

// RegisterValidators installs the custom tags on v. Call it once on gin's validator engine.
func RegisterValidators(v *validator.Validate) error {
	rules := []struct {
		tag   string
		check func(string) bool
	}{
		{TagPersonID, domain.ValidatePersonID},
		{TagVicAddress, domain.ValidateAddress},
		{TagDMYDate, domain.ValidateDate},
	}
	for _, r := range rules {
		if err := v.RegisterValidation(r.tag, stringRule(r.check)); err != nil {
			return err
		}
	}
	return nil
}

func stringRule(check func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return check(fl.Field().String())
	}
}
