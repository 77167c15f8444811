package orders

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

// priceScale matches the NUMERIC(12,2) order price column.
const priceScale = 2

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterStructValidation(validatePriceScale, CreateOrderRequest{})
	return v
}

func validatePriceScale(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateOrderRequest)
	if req.Price == nil {
		return
	}
	if !req.Price.Equal(req.Price.Round(priceScale)) {
		sl.ReportError(req.Price, "price", "Price", "decimals", fmt.Sprint(priceScale))
	}
}

// validateRequest runs struct tag validation and folds the result into
// verr using field level messages.
func validateRequest(v *validator.Validate, req CreateOrderRequest, verr *shared.ValidationError) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate order request: %w", err)
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if verr.Has(field) {
			continue
		}
		verr.Add(field, fieldMessage(field, fe))
	}
	return nil
}

func fieldMessage(field string, fe validator.FieldError) string {
	label := strings.ReplaceAll(field, "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "min", "gte":
		return fmt.Sprintf("The %s field must be at least %s.", label, fe.Param())
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s.", label, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("The %s field must not be greater than %s.", label, fe.Param())
	case "decimals":
		return fmt.Sprintf("The %s field must have at most %s decimal places.", label, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", label)
	}
}
