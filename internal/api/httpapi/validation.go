package httpapi

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	notBlankTag  = "notblank"
	yearMonthTag = "yearmonth"
)

type requestValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newRequestValidator() *requestValidator {
	v := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, translator)

	// Report JSON names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, notBlankValidation)
	_ = v.RegisterValidation(yearMonthTag, yearMonthValidation)
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{notBlankTag, yearMonthTag} {
		_ = v.RegisterTranslation(tag, translator, registerFn, translateCustom)
	}
	return &requestValidator{validate: v, translator: translator}
}

func (r *requestValidator) Struct(s any) error {
	return r.validate.Struct(s)
}

func (r *requestValidator) Var(field any, tag string) error {
	return r.validate.Var(field, tag)
}

// fields maps each failed field to a readable message.
func (r *requestValidator) fields(errs validator.ValidationErrors, fallback string) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		name := fe.Field()
		if name == "" {
			name = fallback
		}
		out[name] = fe.Translate(r.translator)
	}
	return out
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return "this field cannot be blank"
	case yearMonthTag:
		return "must be a month in YYYY-MM form"
	default:
		return ""
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func yearMonthValidation(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse("2006-01", str)
	return err == nil
}
