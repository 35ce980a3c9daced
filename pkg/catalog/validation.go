package catalog

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationTag is the struct tag rule checking membership in a catalog option set,
// e.g. `validate:"required,catalog=specialties"`.
const ValidationTag = "catalog"

// NewValidator returns a validator with the catalog rule bound to cat.
func NewValidator(cat *Catalog) (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match the form and API.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	err := validate.RegisterValidation(ValidationTag, func(fl validator.FieldLevel) bool {
		return cat.Contains(fl.Param(), fl.Field().String())
	})
	if err != nil {
		return nil, err
	}

	return validate, nil
}
