package utils

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate         *validator.Validate
	phoneNumberRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("money", validateMoney)
	validate.RegisterValidation("positive_money", validatePositiveMoney)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// decimalValue lets string-based tags run against decimal.Decimal fields.
func decimalValue(field reflect.Value) interface{} {
	if value, ok := field.Interface().(decimal.Decimal); ok {
		return value.String()
	}
	return nil
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return phoneNumberRegex.MatchString(fl.Field().String())
}

func validateMoney(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !amount.IsNegative() && HasMoneyScale(amount)
}

func validatePositiveMoney(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return amount.IsPositive() && HasMoneyScale(amount)
}
