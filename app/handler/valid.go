package handler

import (
	m "bondcurve/internal/model"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("side", func(fl validator.FieldLevel) bool {
		return m.IsValidSide(fl.Field().String())
	})
}

func validCheck(param interface{}) error {
	return validate.Struct(param)
}
