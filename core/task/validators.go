package task

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/taskistry/collabo/core"
)

var (
	statusTag  = "status"
	statusText = "invalid status"
)

// InitValidators registers the task package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}

func statusValidation(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).Valid()
}
